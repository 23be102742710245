package service

import "strings"

// Lexicon holds the three keyword lists the scorer matches against.
type Lexicon struct {
	Risk     []string
	Positive []string
	Neutral  []string
}

// DefaultLexicon returns the keyword lists tuned for A-share market news.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Risk: []string{
			"下跌", "暴跌", "亏损", "下滑", "下降", "预警", "风险", "违规",
			"调查", "诉讼", "处罚", "警告", "退市", "ST", "*ST", "问询",
			"监管", "爆雷", "债务", "违约", "破产", "重组", "裁员", "危机",
			"利空", "跌停", "破发", "破净", "减持", "质押", "冻结", "查封",
			"降价", "松动", "洗牌", "困境", "降价潮", "压力", "回调", "垃圾",
			"割肉", "被套", "跌停板", "一泻千里", "崩盘", "腰斩", "凉凉",
			"完蛋", "危险", "套牢", "割韭菜", "暴雷", "踩雷", "黑天鹅",
		},
		Positive: []string{
			"上涨", "大涨", "增长", "盈利", "利好", "突破", "创新", "新高",
			"合作", "签约", "中标", "扩产", "增产", "获奖", "表彰", "优秀",
			"领先", "升级", "转型", "复苏", "反弹", "回暖", "改善", "提升",
			"优化", "机会", "涨停", "翻倍", "增持", "回购", "分红", "送转",
			"业绩", "预增", "政策", "支持", "牛市", "上板", "发财", "空间",
		},
		Neutral: []string{
			"维持", "平稳", "稳定", "观望", "调整", "整理", "横盘", "持平",
			"中性", "一般", "普通", "正常", "常规", "预计", "预期", "可能",
			"或许", "大概", "估计", "猜测", "推测",
		},
	}
}

func (l Lexicon) folded() Lexicon {
	return Lexicon{
		Risk:     foldTerms(l.Risk),
		Positive: foldTerms(l.Positive),
		Neutral:  foldTerms(l.Neutral),
	}
}

func foldTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// countPresent counts the terms that occur in text at least once.
func countPresent(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}
