package service

import (
	"context"
	"fmt"

	radarservice "market-risk-radar/internal/radar/service"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/metrics"
	"market-risk-radar/pkg/telegram"
	"market-risk-radar/pkg/utils"

	"github.com/robfig/cron/v3"
)

// WatcherService runs the pipeline on a schedule and fans alerts out to the
// configured publishers.
type WatcherService interface {
	Start(ctx context.Context) error
	RunOnce(ctx context.Context)
}

// Option configures a WatcherService.
type Option func(*watcherService)

// WithErrorNotifier reports sink failures to an operator chat.
func WithErrorNotifier(n telegram.Notifier) Option {
	return func(s *watcherService) { s.errorNotifier = n }
}

// NewWatcherService creates a watcher. spec accepts five-field cron
// expressions and descriptors such as "@every 15m".
func NewWatcherService(pipeline radarservice.PipelineService, publishers []AlertPublisher, spec string, runOnStart bool, log *logger.Logger, opts ...Option) WatcherService {
	s := &watcherService{
		pipeline:   pipeline,
		publishers: publishers,
		spec:       spec,
		runOnStart: runOnStart,
		logger:     log,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type watcherService struct {
	pipeline   radarservice.PipelineService
	publishers []AlertPublisher
	spec       string
	runOnStart bool
	logger     *logger.Logger
	cronParser cron.Parser

	errorNotifier telegram.Notifier
}

// Start blocks until ctx is canceled. Overlapping runs are skipped.
func (s *watcherService) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithParser(s.cronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.spec, err)
	}

	if s.runOnStart {
		utils.GoSafe(s.logger, func() { s.RunOnce(ctx) })
	}

	c.Start()
	s.logger.Info("Watcher started", logger.StringField("cron", s.spec))

	<-ctx.Done()
	s.logger.Info("Watcher stopping")
	<-c.Stop().Done()
	return nil
}

// RunOnce runs the pipeline and publishes its alerts. A failing sink is
// logged and does not stop the others.
func (s *watcherService) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result := s.pipeline.Run(ctx)

	for _, p := range s.publishers {
		if err := p.Publish(ctx, result); err != nil {
			s.logger.Error("Failed to publish alerts",
				logger.StringField("sink", p.Name()),
				logger.StringField("run_id", result.RunID),
				logger.ErrorField(err),
			)
			metrics.AlertsPublished.WithLabelValues(p.Name(), "error").Inc()
			s.reportFailure(p.Name(), result.RunID, err)
			continue
		}
		metrics.AlertsPublished.WithLabelValues(p.Name(), "success").Inc()
	}

	s.logger.Info("Watcher run finished",
		logger.StringField("run_id", result.RunID),
		logger.IntField("alerts", len(result.Alerts)),
		logger.IntField("sinks", len(s.publishers)),
	)
}

func (s *watcherService) reportFailure(sink, runID string, cause error) {
	// A broken chat cannot report on itself.
	if s.errorNotifier == nil || sink == "telegram" {
		return
	}
	msg := telegram.FormatErrorAlertMessage(utils.TimeNow(), "publish "+sink, cause.Error(), "run "+runID)
	if err := s.errorNotifier.SendMessage(msg); err != nil {
		s.logger.Warn("Failed to send error alert", logger.ErrorField(err))
	}
}
