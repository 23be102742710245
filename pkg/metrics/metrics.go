package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SentimentAnalyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_sentiment_analyses_total",
			Help: "Total number of sentiment scorer invocations",
		},
		[]string{"method"}, // method: keyword_matching|none
	)

	BriefsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_briefs_generated_total",
			Help: "Total number of narrative texts rendered",
		},
		[]string{"kind", "status"}, // kind: risk_briefing|market_report, status: success|failed
	)

	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_pipeline_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"source"}, // source: external|seed
	)

	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "radar_pipeline_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	AlertsRaised = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "radar_alerts_raised_total",
			Help: "Total number of alerts produced across pipeline runs",
		},
	)

	AlertsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_alerts_published_total",
			Help: "Total number of alert publish attempts per sink",
		},
		[]string{"sink", "status"}, // status: success|error
	)
)

var registerOnce sync.Once

// Init registers all metrics with Prometheus. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SentimentAnalyses)
		prometheus.MustRegister(BriefsGenerated)
		prometheus.MustRegister(PipelineRuns)
		prometheus.MustRegister(PipelineDuration)
		prometheus.MustRegister(AlertsRaised)
		prometheus.MustRegister(AlertsPublished)
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
