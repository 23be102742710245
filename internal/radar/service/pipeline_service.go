package service

import (
	"context"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/internal/radar/dto"
	"market-risk-radar/internal/radar/repository"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/metrics"

	"github.com/google/uuid"
)

// PipelineService runs loader, analysis, aggregation and narrative
// generation in that order. Nothing is cached between calls.
type PipelineService interface {
	Run(ctx context.Context) entity.PipelineResult
	ScoredNews(ctx context.Context) []entity.ScoredArticle
	Dashboard(ctx context.Context) entity.DashboardMetrics
	Alerts(ctx context.Context) []entity.Alert
	DescribeSource(ctx context.Context) dto.SourceInfo
	ScoreText(title, content string) entity.SentimentResult
	BriefArticle(req dto.GenerateBriefRequest) dto.GenerateBriefResponse
	Status(ctx context.Context) dto.StatusResponse
}

// NewPipelineService wires the pipeline stages. portfolio is the subject of
// the run-level risk briefing.
func NewPipelineService(
	source repository.SourceRepository,
	scorer SentimentService,
	analysis AnalysisService,
	briefs BriefService,
	portfolio Subject,
	log *logger.Logger,
) PipelineService {
	return &pipelineService{
		source:    source,
		scorer:    scorer,
		analysis:  analysis,
		briefs:    briefs,
		portfolio: portfolio,
		logger:    log,
	}
}

type pipelineService struct {
	source    repository.SourceRepository
	scorer    SentimentService
	analysis  AnalysisService
	briefs    BriefService
	portfolio Subject
	logger    *logger.Logger
}

func (s *pipelineService) Run(ctx context.Context) entity.PipelineResult {
	start := time.Now()
	runID := uuid.NewString()

	loaded := s.source.LoadArticles(ctx)
	scored := s.analysis.Analyze(loaded.Articles)
	alerts := s.analysis.Alerts(scored)
	dashboard := s.analysis.Aggregate(scored)

	riskTitles := make([]string, 0)
	for _, a := range scored {
		if a.IsRisk {
			riskTitles = append(riskTitles, a.Title)
		}
	}
	brief := s.briefs.RiskBriefing(s.portfolio.Code, s.portfolio.Name, riskTitles)
	report := s.briefs.MarketReport(scored)

	sourceLabel := "external"
	if loaded.UsedSeed {
		sourceLabel = "seed"
	}
	elapsed := time.Since(start)
	metrics.PipelineRuns.WithLabelValues(sourceLabel).Inc()
	metrics.PipelineDuration.Observe(elapsed.Seconds())
	metrics.AlertsRaised.Add(float64(len(alerts)))

	s.logger.Info("Pipeline run completed",
		logger.StringField("run_id", runID),
		logger.StringField("source", sourceLabel),
		logger.StringField("path", loaded.Path),
		logger.IntField("articles", len(scored)),
		logger.IntField("alerts", len(alerts)),
		logger.DurationField("duration", elapsed),
	)

	return entity.PipelineResult{
		RunID:        runID,
		News:         scored,
		Alerts:       alerts,
		Dashboard:    dashboard,
		RiskBrief:    brief.Content,
		MarketReport: report.Content,
	}
}

func (s *pipelineService) ScoredNews(ctx context.Context) []entity.ScoredArticle {
	return s.analysis.Analyze(s.source.LoadArticles(ctx).Articles)
}

func (s *pipelineService) Dashboard(ctx context.Context) entity.DashboardMetrics {
	return s.analysis.Aggregate(s.ScoredNews(ctx))
}

func (s *pipelineService) Alerts(ctx context.Context) []entity.Alert {
	return s.analysis.Alerts(s.ScoredNews(ctx))
}

func (s *pipelineService) DescribeSource(ctx context.Context) dto.SourceInfo {
	return s.source.DescribeSource(ctx)
}

func (s *pipelineService) ScoreText(title, content string) entity.SentimentResult {
	return s.scorer.Score(title, content)
}

func (s *pipelineService) BriefArticle(req dto.GenerateBriefRequest) dto.GenerateBriefResponse {
	return s.briefs.ArticleBrief(req)
}

func (s *pipelineService) Status(ctx context.Context) dto.StatusResponse {
	return dto.StatusResponse{
		Analyzer:  s.scorer.Status(),
		Generator: s.briefs.Status(),
		Source:    s.source.DescribeSource(ctx),
	}
}
