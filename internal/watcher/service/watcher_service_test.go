package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/internal/radar/dto"
	"market-risk-radar/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	result entity.PipelineResult
	runs   chan struct{}
}

func (f *fakePipeline) Run(ctx context.Context) entity.PipelineResult {
	if f.runs != nil {
		select {
		case f.runs <- struct{}{}:
		default:
		}
	}
	return f.result
}
func (f *fakePipeline) ScoredNews(ctx context.Context) []entity.ScoredArticle { return f.result.News }
func (f *fakePipeline) Dashboard(ctx context.Context) entity.DashboardMetrics { return f.result.Dashboard }
func (f *fakePipeline) Alerts(ctx context.Context) []entity.Alert              { return f.result.Alerts }
func (f *fakePipeline) DescribeSource(ctx context.Context) dto.SourceInfo      { return dto.SourceInfo{} }
func (f *fakePipeline) ScoreText(title, content string) entity.SentimentResult {
	return entity.SentimentResult{}
}
func (f *fakePipeline) BriefArticle(req dto.GenerateBriefRequest) dto.GenerateBriefResponse {
	return dto.GenerateBriefResponse{}
}
func (f *fakePipeline) Status(ctx context.Context) dto.StatusResponse { return dto.StatusResponse{} }

type fakePublisher struct {
	name string
	err  error

	mu     sync.Mutex
	called []string
}

func (p *fakePublisher) Name() string { return p.name }

func (p *fakePublisher) Publish(ctx context.Context, result entity.PipelineResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.called = append(p.called, result.RunID)
	return p.err
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) SendMessage(text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, text)
	return nil
}

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func sampleResult() entity.PipelineResult {
	return entity.PipelineResult{
		RunID: "run-1",
		Alerts: []entity.Alert{
			{ID: 1, Title: "出现违约", StockCode: "000002.SZ", Confidence: 0.84, SentimentScore: -1, PublishTime: "2026-01-15 13:00:00"},
			{ID: 7, Title: "监管处罚", StockCode: "600309.SH", Confidence: 0.76, SentimentScore: -1, PublishTime: "2026-01-15 15:10:00"},
		},
		Dashboard: entity.DashboardMetrics{TotalNews: 8, RiskNewsCount: 2, AlertCount: 2},
	}
}

func TestRunOnce_FailingSinkDoesNotStopOthers(t *testing.T) {
	failing := &fakePublisher{name: "telegram", err: errors.New("down")}
	ok := &fakePublisher{name: "redis"}
	w := NewWatcherService(&fakePipeline{result: sampleResult()}, []AlertPublisher{failing, ok}, "@every 1h", false, logger.NewNop())

	w.RunOnce(context.Background())

	assert.Equal(t, []string{"run-1"}, failing.called)
	assert.Equal(t, []string{"run-1"}, ok.called)
}

func TestRunOnce_ReportsSinkFailure(t *testing.T) {
	ops := &fakeNotifier{}
	failing := &fakePublisher{name: "redis", err: errors.New("READONLY")}
	w := NewWatcherService(&fakePipeline{result: sampleResult()}, []AlertPublisher{failing}, "@every 1h", false, logger.NewNop(), WithErrorNotifier(ops))

	w.RunOnce(context.Background())

	require.Len(t, ops.sent, 1)
	assert.Contains(t, ops.sent[0], "publish redis")
	assert.Contains(t, ops.sent[0], "READONLY")
	assert.Contains(t, ops.sent[0], "run-1")
}

func TestRunOnce_TelegramFailureNotReportedToTelegram(t *testing.T) {
	ops := &fakeNotifier{}
	failing := &fakePublisher{name: "telegram", err: errors.New("down")}
	w := NewWatcherService(&fakePipeline{result: sampleResult()}, []AlertPublisher{failing}, "@every 1h", false, logger.NewNop(), WithErrorNotifier(ops))

	w.RunOnce(context.Background())

	assert.Empty(t, ops.sent)
}

func TestRunOnce_CanceledContextSkips(t *testing.T) {
	pub := &fakePublisher{name: "redis"}
	w := NewWatcherService(&fakePipeline{result: sampleResult()}, []AlertPublisher{pub}, "@every 1h", false, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.RunOnce(ctx)

	assert.Empty(t, pub.called)
}

func TestStart_InvalidSpec(t *testing.T) {
	w := NewWatcherService(&fakePipeline{}, nil, "not a cron spec", false, logger.NewNop())
	err := w.Start(context.Background())
	assert.ErrorContains(t, err, "invalid cron spec")
}

func TestStart_RunsOnStartAndStops(t *testing.T) {
	pipeline := &fakePipeline{result: sampleResult(), runs: make(chan struct{}, 1)}
	w := NewWatcherService(pipeline, nil, "@every 1h", true, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-pipeline.runs:
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline was not run on start")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestTelegramPublisher(t *testing.T) {
	n := &fakeNotifier{}
	p := NewTelegramPublisher(n, false, logger.NewNop())

	require.NoError(t, p.Publish(context.Background(), sampleResult()))
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "000002.SZ")
	assert.Contains(t, n.sent[0], "run-1")
	assert.Equal(t, "telegram", p.Name())

	require.NoError(t, p.Publish(context.Background(), entity.PipelineResult{RunID: "quiet"}))
	assert.Len(t, n.sent, 1)

	loud := &fakeNotifier{}
	require.NoError(t, NewTelegramPublisher(loud, true, logger.NewNop()).Publish(context.Background(), entity.PipelineResult{RunID: "quiet"}))
	require.Len(t, loud.sent, 1)
	assert.Contains(t, loud.sent[0], "No risk alerts")

	broken := &fakeNotifier{err: errors.New("unauthorized")}
	err := NewTelegramPublisher(broken, false, logger.NewNop()).Publish(context.Background(), sampleResult())
	assert.ErrorContains(t, err, "unauthorized")
}

func TestRedisPublisher(t *testing.T) {
	stream := &fakeStream{}
	p := NewRedisPublisher(stream, "radar.alerts", 500, logger.NewNop())

	require.NoError(t, p.Publish(context.Background(), sampleResult()))
	require.Len(t, stream.args, 2)
	assert.Equal(t, "redis", p.Name())

	first := stream.args[0]
	assert.Equal(t, "radar.alerts", first.Stream)
	assert.Equal(t, int64(500), first.MaxLen)

	values := first.Values.(map[string]interface{})
	assert.Equal(t, "run-1", values["run_id"])
	var alert entity.Alert
	require.NoError(t, json.Unmarshal(values["alert"].([]byte), &alert))
	assert.Equal(t, 1, alert.ID)
	assert.Equal(t, "000002.SZ", alert.StockCode)
}

func TestRedisPublisher_StopsOnError(t *testing.T) {
	stream := &fakeStream{err: errors.New("READONLY")}
	p := NewRedisPublisher(stream, "radar.alerts", 500, logger.NewNop())

	err := p.Publish(context.Background(), sampleResult())
	assert.ErrorContains(t, err, "READONLY")
	assert.Len(t, stream.args, 1)
}
