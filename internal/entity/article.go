package entity

// SentimentLabel is the scorer's classification of a text.
type SentimentLabel string

const (
	LabelRisk     SentimentLabel = "risk"
	LabelPositive SentimentLabel = "positive"
	LabelNeutral  SentimentLabel = "neutral"
)

// ScoreBucket groups a sentiment score for the dashboard. The cut points are
// not the label thresholds.
type ScoreBucket string

const (
	BucketHighRisk   ScoreBucket = "high-risk"
	BucketMediumRisk ScoreBucket = "medium-risk"
	BucketNeutral    ScoreBucket = "neutral"
	BucketPositive   ScoreBucket = "positive"
)

const (
	HighRiskScore   = -0.5
	MediumRiskScore = -0.2
	PositiveScore   = 0.3

	// AlertConfidence is the minimum confidence for a risk article to alert.
	AlertConfidence = 0.6
)

// IsHighRisk reports whether score falls in the high-risk window.
func IsHighRisk(score float64) bool {
	return score < HighRiskScore
}

// IsMediumRisk reports whether score falls in [-0.5, -0.2).
func IsMediumRisk(score float64) bool {
	return score >= HighRiskScore && score < MediumRiskScore
}

// BucketFor maps a score to its dashboard bucket.
func BucketFor(score float64) ScoreBucket {
	switch {
	case IsHighRisk(score):
		return BucketHighRisk
	case IsMediumRisk(score):
		return BucketMediumRisk
	case score < PositiveScore:
		return BucketNeutral
	default:
		return BucketPositive
	}
}

// Article is one normalized news item about a listed company.
type Article struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Source        string `json:"source"`
	PublishTime   string `json:"publish_time"`
	StockCode     string `json:"stock_code"`
	StockName     string `json:"stock_name"`
	StockIndustry string `json:"stock_industry"`
}

// KeywordCounts holds how many lexicon terms of each category matched.
type KeywordCounts struct {
	Risk     int `json:"risk"`
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

// SentimentResult is the output of one scorer invocation.
type SentimentResult struct {
	Success        bool           `json:"success"`
	Text           string         `json:"text"`
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Confidence     float64        `json:"confidence"`
	KeywordCounts  KeywordCounts  `json:"keyword_counts"`
	Method         string         `json:"method"`
	Error          string         `json:"error,omitempty"`
	AnalysisTime   string         `json:"analysis_time"`
}

// ScoredArticle is an Article enriched with its sentiment and risk flags.
type ScoredArticle struct {
	Article
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Confidence     float64        `json:"confidence"`
	KeywordCounts  KeywordCounts  `json:"keyword_counts"`
	IsRisk         bool           `json:"is_risk"`
	Alert          bool           `json:"alert"`
	ScoreBucket    ScoreBucket    `json:"score_bucket"`
}

// Alert is the compact notification shape of an alerting ScoredArticle.
type Alert struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	StockCode      string  `json:"stock_code"`
	Confidence     float64 `json:"confidence"`
	SentimentScore float64 `json:"sentiment_score"`
	PublishTime    string  `json:"publish_time"`
}
