package service

import (
	"testing"

	"market-risk-radar/internal/entity"
	"market-risk-radar/internal/radar/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalysis() AnalysisService {
	return NewAnalysisService(newTestScorer())
}

func articlesFromBodies(bodies ...string) []entity.Article {
	out := make([]entity.Article, 0, len(bodies))
	for i, b := range bodies {
		out = append(out, entity.Article{ID: i + 1, Content: b, StockCode: "000000", PublishTime: "2026-01-15 09:30:00"})
	}
	return out
}

func TestAnalyze_SeedCorpus(t *testing.T) {
	expected := []struct {
		score      float64
		label      entity.SentimentLabel
		confidence float64
		counts     entity.KeywordCounts
		bucket     entity.ScoreBucket
		alert      bool
	}{
		{-0.929, entity.LabelRisk, 0.95, entity.KeywordCounts{Risk: 5, Positive: 1, Neutral: 1, Total: 7}, entity.BucketHighRisk, true},
		{-1.0, entity.LabelRisk, 0.84, entity.KeywordCounts{Risk: 3, Total: 3}, entity.BucketHighRisk, true},
		{0.25, entity.LabelNeutral, 0.92, entity.KeywordCounts{Positive: 1, Neutral: 3, Total: 4}, entity.BucketNeutral, false},
		{1.0, entity.LabelPositive, 0.95, entity.KeywordCounts{Positive: 5, Total: 5}, entity.BucketPositive, false},
		{-1.0, entity.LabelRisk, 0.84, entity.KeywordCounts{Risk: 3, Total: 3}, entity.BucketHighRisk, true},
		{1.0, entity.LabelPositive, 0.68, entity.KeywordCounts{Positive: 1, Total: 1}, entity.BucketPositive, false},
		{-1.0, entity.LabelRisk, 0.76, entity.KeywordCounts{Risk: 2, Total: 2}, entity.BucketHighRisk, true},
		{1.0, entity.LabelPositive, 0.76, entity.KeywordCounts{Positive: 2, Total: 2}, entity.BucketPositive, false},
	}

	seed := repository.SeedArticles()
	scored := newTestAnalysis().Analyze(seed)
	require.Len(t, scored, len(expected))

	for i, want := range expected {
		got := scored[i]
		assert.Equal(t, seed[i], got.Article, "article %d", i+1)
		assert.InDelta(t, want.score, got.SentimentScore, 1e-9, "article %d", i+1)
		assert.Equal(t, want.label, got.SentimentLabel, "article %d", i+1)
		assert.InDelta(t, want.confidence, got.Confidence, 1e-9, "article %d", i+1)
		assert.Equal(t, want.counts, got.KeywordCounts, "article %d", i+1)
		assert.Equal(t, want.bucket, got.ScoreBucket, "article %d", i+1)
		assert.Equal(t, want.label == entity.LabelRisk, got.IsRisk, "article %d", i+1)
		assert.Equal(t, want.alert, got.Alert, "article %d", i+1)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	seed := repository.SeedArticles()
	before := repository.SeedArticles()

	_ = newTestAnalysis().Analyze(seed)

	assert.Equal(t, before, seed)
}

func TestAnalyze_AlertImpliesRisk(t *testing.T) {
	scored := newTestAnalysis().Analyze(articlesFromBodies(
		"诉讼", "回购", "业绩下滑", "横盘", "", "监管处罚", "暴跌 违约 破产", "公司大涨，业绩预增",
	))
	for _, a := range scored {
		if a.Alert {
			assert.True(t, a.IsRisk, "article %d", a.ID)
		}
		assert.Equal(t, a.SentimentLabel == entity.LabelRisk, a.IsRisk)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	scored := newTestAnalysis().Analyze(nil)
	assert.NotNil(t, scored)
	assert.Empty(t, scored)
}

func TestAggregate_SeedCorpus(t *testing.T) {
	svc := newTestAnalysis()
	m := svc.Aggregate(svc.Analyze(repository.SeedArticles()))

	assert.Equal(t, 8, m.TotalNews)
	assert.Equal(t, 4, m.RiskNewsCount)
	assert.Equal(t, 50.0, m.RiskRatio)
	assert.Equal(t, 0.847, m.AvgConfidence)
	assert.Equal(t, 4, m.AlertCount)
	assert.Equal(t, 4, m.HighRisk)
	assert.Equal(t, 0, m.MediumRisk)
	assert.Equal(t, 13, m.KeywordHits)
	assert.NotEmpty(t, m.UpdateTime)
}

func TestAggregate_HalfRiskScenario(t *testing.T) {
	svc := newTestAnalysis()
	scored := svc.Analyze(articlesFromBodies("诉讼", "出现违约", "风险", "回购", "横盘", "股价大涨"))

	m := svc.Aggregate(scored)
	assert.Equal(t, 6, m.TotalNews)
	assert.Equal(t, 3, m.RiskNewsCount)
	assert.Equal(t, 3, m.AlertCount)
	assert.Equal(t, 50.0, m.RiskRatio)
	assert.Equal(t, 0.68, m.AvgConfidence)
	assert.Equal(t, 3, m.KeywordHits)
}

func TestAggregate_EmptySet(t *testing.T) {
	m := newTestAnalysis().Aggregate(nil)

	assert.Equal(t, 0, m.TotalNews)
	assert.Equal(t, 0.0, m.RiskRatio)
	assert.Equal(t, 0.0, m.AvgConfidence)
	assert.Equal(t, 0, m.AlertCount)
}

func TestAggregate_RawScoreWindowsIgnoreLabels(t *testing.T) {
	svc := newTestAnalysis()
	// -0.25 is a neutral label but sits in the medium-risk window.
	scored := svc.Analyze(articlesFromBodies("业绩下滑"))
	require.Equal(t, entity.LabelNeutral, scored[0].SentimentLabel)

	m := svc.Aggregate(scored)
	assert.Equal(t, 0, m.RiskNewsCount)
	assert.Equal(t, 1, m.MediumRisk)
	assert.Equal(t, 0, m.HighRisk)
	assert.Equal(t, 1, m.KeywordHits)
}

func TestAggregate_RiskRatioRounding(t *testing.T) {
	svc := newTestAnalysis()
	m := svc.Aggregate(svc.Analyze(articlesFromBodies("诉讼", "回购", "横盘")))
	assert.Equal(t, 33.3, m.RiskRatio)
}

func TestAlerts(t *testing.T) {
	svc := newTestAnalysis()

	t.Run("seed corpus keeps source order", func(t *testing.T) {
		alerts := svc.Alerts(svc.Analyze(repository.SeedArticles()))
		require.Len(t, alerts, 4)

		ids := make([]int, 0, len(alerts))
		for _, a := range alerts {
			ids = append(ids, a.ID)
		}
		assert.Equal(t, []int{1, 2, 5, 7}, ids)
		assert.Equal(t, entity.Alert{
			ID:             2,
			Title:          "监管机构对某银行开展专项检查，涉及违规放贷问题",
			StockCode:      "601398.SH",
			Confidence:     0.84,
			SentimentScore: -1.0,
			PublishTime:    "2026-01-15 10:15:00",
		}, alerts[1])
	})

	t.Run("no alerts is an empty list", func(t *testing.T) {
		alerts := svc.Alerts(svc.Analyze(articlesFromBodies("回购")))
		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
	})

	t.Run("duplicates are not collapsed", func(t *testing.T) {
		alerts := svc.Alerts(svc.Analyze(articlesFromBodies("诉讼", "诉讼")))
		assert.Len(t, alerts, 2)
	})
}
