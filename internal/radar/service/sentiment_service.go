package service

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/internal/radar/dto"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/metrics"
	"market-risk-radar/pkg/utils"
)

const (
	MethodKeywordMatching = "keyword_matching"
	MethodNone            = "none"

	riskWeight     = -1.5
	positiveWeight = 1.0
	neutralWeight  = 0.0

	labelRiskBelow     = -0.3
	labelPositiveAbove = 0.3

	baseConfidence  = 0.6
	confidenceStep  = 0.08
	confidenceTerms = 5
	maxConfidence   = 0.95
	noHitConfidence = 0.5

	displayTextRunes = 100
)

// SentimentService scores text with the keyword heuristic.
type SentimentService interface {
	Score(title, body string) entity.SentimentResult
	ScoreBatch(texts []string) []entity.SentimentResult
	Status() dto.AnalyzerStatus
}

// NewSentimentService creates a scorer over the given lexicon. Terms are
// case-folded once here.
func NewSentimentService(lexicon Lexicon, log *logger.Logger) SentimentService {
	return &sentimentService{
		lexicon: lexicon.folded(),
		logger:  log,
	}
}

type sentimentService struct {
	lexicon       Lexicon
	logger        *logger.Logger
	analyzedCount atomic.Int64
}

// Score combines title and body and scores the result. Empty input yields a
// neutral result with Success unset.
func (s *sentimentService) Score(title, body string) entity.SentimentResult {
	now := utils.TimeNow().Format(time.RFC3339)

	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		s.logger.Debug("Empty text passed to scorer")
		metrics.SentimentAnalyses.WithLabelValues(MethodNone).Inc()
		return entity.SentimentResult{
			Success:        false,
			SentimentScore: 0,
			SentimentLabel: entity.LabelNeutral,
			Confidence:     noHitConfidence,
			Method:         MethodNone,
			Error:          "input text is empty",
			AnalysisTime:   now,
		}
	}

	text := strings.ToLower(strings.TrimSpace(title + " " + body))
	counts := entity.KeywordCounts{
		Risk:     countPresent(text, s.lexicon.Risk),
		Positive: countPresent(text, s.lexicon.Positive),
		Neutral:  countPresent(text, s.lexicon.Neutral),
	}
	counts.Total = counts.Risk + counts.Positive + counts.Neutral

	score, confidence := 0.0, noHitConfidence
	if counts.Total > 0 {
		weighted := float64(counts.Positive)*positiveWeight +
			float64(counts.Neutral)*neutralWeight +
			float64(counts.Risk)*riskWeight
		score = utils.Clamp(weighted/float64(counts.Total), -1, 1)
		confidence = math.Min(maxConfidence, baseConfidence+float64(min(counts.Total, confidenceTerms))*confidenceStep)
	}

	s.analyzedCount.Add(1)
	metrics.SentimentAnalyses.WithLabelValues(MethodKeywordMatching).Inc()

	return entity.SentimentResult{
		Success:        true,
		Text:           utils.TruncateRunes(text, displayTextRunes),
		SentimentScore: utils.Round(score, 3),
		SentimentLabel: labelFor(score),
		Confidence:     utils.Round(confidence, 3),
		KeywordCounts:  counts,
		Method:         MethodKeywordMatching,
		AnalysisTime:   now,
	}
}

// ScoreBatch scores each text as a body with no title.
func (s *sentimentService) ScoreBatch(texts []string) []entity.SentimentResult {
	results := make([]entity.SentimentResult, 0, len(texts))
	for _, t := range texts {
		results = append(results, s.Score("", t))
	}
	return results
}

func (s *sentimentService) Status() dto.AnalyzerStatus {
	return dto.AnalyzerStatus{
		Method:        MethodKeywordMatching,
		AnalyzedCount: s.analyzedCount.Load(),
	}
}

func labelFor(score float64) entity.SentimentLabel {
	switch {
	case score < labelRiskBelow:
		return entity.LabelRisk
	case score > labelPositiveAbove:
		return entity.LabelPositive
	default:
		return entity.LabelNeutral
	}
}
