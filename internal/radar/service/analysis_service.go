package service

import (
	"market-risk-radar/internal/entity"
	"market-risk-radar/pkg/utils"
)

// AnalysisService enriches articles with sentiment and reduces them to
// dashboard figures.
type AnalysisService interface {
	Analyze(articles []entity.Article) []entity.ScoredArticle
	Aggregate(scored []entity.ScoredArticle) entity.DashboardMetrics
	Alerts(scored []entity.ScoredArticle) []entity.Alert
}

// NewAnalysisService creates an analysis stage backed by the given scorer.
func NewAnalysisService(scorer SentimentService) AnalysisService {
	return &analysisService{scorer: scorer}
}

type analysisService struct {
	scorer SentimentService
}

// Analyze scores every article in order. The input slice is left untouched.
func (s *analysisService) Analyze(articles []entity.Article) []entity.ScoredArticle {
	scored := make([]entity.ScoredArticle, 0, len(articles))
	for _, a := range articles {
		res := s.scorer.Score(a.Title, a.Content)
		isRisk := res.SentimentLabel == entity.LabelRisk
		scored = append(scored, entity.ScoredArticle{
			Article:        a,
			SentimentScore: res.SentimentScore,
			SentimentLabel: res.SentimentLabel,
			Confidence:     res.Confidence,
			KeywordCounts:  res.KeywordCounts,
			IsRisk:         isRisk,
			Alert:          isRisk && res.Confidence >= entity.AlertConfidence,
			ScoreBucket:    entity.BucketFor(res.SentimentScore),
		})
	}
	return scored
}

// Aggregate computes dashboard metrics. high_risk and medium_risk count raw
// score windows over every article, so they can disagree with the label count.
func (s *analysisService) Aggregate(scored []entity.ScoredArticle) entity.DashboardMetrics {
	m := entity.DashboardMetrics{
		TotalNews:  len(scored),
		UpdateTime: utils.FormatDateTime(utils.TimeNow()),
	}

	var confidenceSum float64
	for _, a := range scored {
		if a.IsRisk {
			m.RiskNewsCount++
			confidenceSum += a.Confidence
		}
		if a.Alert {
			m.AlertCount++
		}
		switch {
		case entity.IsHighRisk(a.SentimentScore):
			m.HighRisk++
		case entity.IsMediumRisk(a.SentimentScore):
			m.MediumRisk++
		}
		m.KeywordHits += a.KeywordCounts.Risk
	}

	if m.TotalNews > 0 {
		m.RiskRatio = utils.Round(100*float64(m.RiskNewsCount)/float64(m.TotalNews), 1)
	}
	if m.RiskNewsCount > 0 {
		m.AvgConfidence = utils.Round(confidenceSum/float64(m.RiskNewsCount), 3)
	}
	return m
}

// Alerts projects alerting articles in source order. The result is never nil.
func (s *analysisService) Alerts(scored []entity.ScoredArticle) []entity.Alert {
	alerts := make([]entity.Alert, 0)
	for _, a := range scored {
		if !a.Alert {
			continue
		}
		alerts = append(alerts, entity.Alert{
			ID:             a.ID,
			Title:          a.Title,
			StockCode:      a.StockCode,
			Confidence:     a.Confidence,
			SentimentScore: a.SentimentScore,
			PublishTime:    a.PublishTime,
		})
	}
	return alerts
}

