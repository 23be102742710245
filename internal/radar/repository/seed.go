package repository

import "market-risk-radar/internal/entity"

var seedArticles = [...]entity.Article{
	{
		ID:            1,
		Title:         "某科技公司业绩预警，预计季度亏损超5亿元",
		Content:       "公告称受需求下滑和成本上升影响，主要产品线销售大幅下降，或有减值风险。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 09:30:00",
		StockCode:     "300001.SZ",
		StockName:     "示例科技",
		StockIndustry: "科技",
	},
	{
		ID:            2,
		Title:         "监管机构对某银行开展专项检查，涉及违规放贷问题",
		Content:       "本次检查重点针对房地产相关贷款业务，市场担忧或触发罚款与拨备压力。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 10:15:00",
		StockCode:     "601398.SH",
		StockName:     "示例银行",
		StockIndustry: "金融",
	},
	{
		ID:            3,
		Title:         "龙头白酒销量恢复，渠道库存回归正常区间",
		Content:       "节后动销表现优于预期，经销商反馈补货节奏平稳，行业景气度边际改善。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 11:00:00",
		StockCode:     "600519.SH",
		StockName:     "贵州茅台",
		StockIndustry: "消费",
	},
	{
		ID:            4,
		Title:         "新能源车企发布销量快报，单月交付创新高",
		Content:       "公司推出新款车型并加大促销力度，单月交付同比增长超80%，盈利能力有望提升。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 11:30:00",
		StockCode:     "300750.SZ",
		StockName:     "宁德时代",
		StockIndustry: "新能源",
	},
	{
		ID:            5,
		Title:         "地产企业爆出债务违约，或触发交叉违约条款",
		Content:       "资金链紧张导致美元债未能按期兑付，市场担忧后续项目停工与资产处置风险。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 13:00:00",
		StockCode:     "000002.SZ",
		StockName:     "万科A",
		StockIndustry: "房地产",
	},
	{
		ID:            6,
		Title:         "芯片厂商获大订单，管理层上调全年指引",
		Content:       "海外大客户新增采购，订单能见度提升；公司计划扩大产能，资本开支略有上调。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 14:20:00",
		StockCode:     "688981.SH",
		StockName:     "中芯国际",
		StockIndustry: "半导体",
	},
	{
		ID:            7,
		Title:         "化工园区发生安全事故，相关企业停产自查",
		Content:       "初步调查显示存在安全管理缺陷，监管部门已进驻，市场担忧产能恢复时间。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 15:10:00",
		StockCode:     "600309.SH",
		StockName:     "万华化学",
		StockIndustry: "化工",
	},
	{
		ID:            8,
		Title:         "某券商发布策略：短期市场情绪回暖，关注高股息板块",
		Content:       "宏观流动性保持宽松，资金偏好防御与高分红标的，建议均衡配置。",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 16:00:00",
		StockCode:     "600030.SH",
		StockName:     "中信证券",
		StockIndustry: "金融",
	},
}

// SeedArticles returns a fresh copy of the built-in fallback corpus.
func SeedArticles() []entity.Article {
	out := make([]entity.Article, len(seedArticles))
	copy(out, seedArticles[:])
	return out
}
