package entity

import "time"

// DashboardMetrics summarizes one batch of scored articles.
type DashboardMetrics struct {
	TotalNews     int     `json:"total_news"`
	RiskNewsCount int     `json:"risk_news_count"`
	RiskRatio     float64 `json:"risk_ratio"`
	AvgConfidence float64 `json:"avg_confidence"`
	AlertCount    int     `json:"alert_count"`
	HighRisk      int     `json:"high_risk"`
	MediumRisk    int     `json:"medium_risk"`
	KeywordHits   int     `json:"keyword_hits"`
	UpdateTime    string  `json:"update_time"`
}

// BriefResult is a rendered narrative. When Failed is set, Content holds the
// failure notice and Reason the cause.
type BriefResult struct {
	Content     string    `json:"content"`
	Failed      bool      `json:"failed"`
	Reason      string    `json:"reason,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PipelineResult is everything one pipeline run produces.
type PipelineResult struct {
	RunID        string           `json:"run_id"`
	News         []ScoredArticle  `json:"news"`
	Alerts       []Alert          `json:"alerts"`
	Dashboard    DashboardMetrics `json:"dashboard"`
	RiskBrief    string           `json:"risk_brief"`
	MarketReport string           `json:"market_report"`
}
