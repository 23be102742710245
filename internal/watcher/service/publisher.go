package service

import (
	"context"
	"encoding/json"
	"fmt"

	"market-risk-radar/internal/entity"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/telegram"

	"github.com/redis/go-redis/v9"
)

// AlertPublisher delivers the alerts of one pipeline run to a sink.
type AlertPublisher interface {
	Name() string
	Publish(ctx context.Context, result entity.PipelineResult) error
}

// NewTelegramPublisher sends each run as a chunked Telegram digest. Runs
// without alerts are skipped unless notifyEmpty is set.
func NewTelegramPublisher(notifier telegram.Notifier, notifyEmpty bool, log *logger.Logger) AlertPublisher {
	return &telegramPublisher{notifier: notifier, notifyEmpty: notifyEmpty, logger: log}
}

type telegramPublisher struct {
	notifier    telegram.Notifier
	notifyEmpty bool
	logger      *logger.Logger
}

func (p *telegramPublisher) Name() string { return "telegram" }

func (p *telegramPublisher) Publish(ctx context.Context, result entity.PipelineResult) error {
	if len(result.Alerts) == 0 && !p.notifyEmpty {
		p.logger.Debug("No alerts to notify", logger.StringField("run_id", result.RunID))
		return nil
	}
	messages := telegram.FormatAlertsForTelegram(result.RunID, result.Alerts, result.Dashboard)
	return telegram.SendAll(p.notifier, messages)
}

// StreamAdder is the part of the Redis client the stream publisher needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// NewRedisPublisher appends every alert to a capped Redis stream.
func NewRedisPublisher(client StreamAdder, stream string, maxLen int64, log *logger.Logger) AlertPublisher {
	return &redisPublisher{client: client, stream: stream, maxLen: maxLen, logger: log}
}

type redisPublisher struct {
	client StreamAdder
	stream string
	maxLen int64
	logger *logger.Logger
}

func (p *redisPublisher) Name() string { return "redis" }

func (p *redisPublisher) Publish(ctx context.Context, result entity.PipelineResult) error {
	for _, alert := range result.Alerts {
		payload, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("failed to marshal alert %d: %w", alert.ID, err)
		}
		if err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]interface{}{"run_id": result.RunID, "alert": payload},
			MaxLen: p.maxLen,
			Approx: true,
		}).Err(); err != nil {
			return fmt.Errorf("failed to add alert %d to stream %s: %w", alert.ID, p.stream, err)
		}
	}
	p.logger.Debug("Alerts added to stream",
		logger.StringField("stream", p.stream),
		logger.IntField("count", len(result.Alerts)),
	)
	return nil
}
