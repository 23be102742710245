package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	radarrepository "market-risk-radar/internal/radar/repository"
	radarservice "market-risk-radar/internal/radar/service"
	"market-risk-radar/internal/watcher/config"
	"market-risk-radar/internal/watcher/service"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/metrics"
	"market-risk-radar/pkg/redis"
	"market-risk-radar/pkg/telegram"
	"market-risk-radar/pkg/utils"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the alert watcher",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := utils.SetTimeZone(cfg.App.TimeZone); err != nil {
		appLogger.Fatal("Invalid time zone", logger.ErrorField(err))
	}

	appLogger.Info("Starting Watcher Service", logger.Field("name", cfg.App.Name))
	metrics.Init()

	// Pipeline
	portfolio := radarservice.Subject{Code: cfg.Brief.PortfolioCode, Name: cfg.Brief.PortfolioName}
	sourceRepo := radarrepository.NewSourceRepository(cfg.Source, appLogger)
	scorer := radarservice.NewSentimentService(radarservice.DefaultLexicon(), appLogger)
	briefs, err := radarservice.NewBriefService(portfolio, nil, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize brief service", logger.ErrorField(err))
	}
	pipeline := radarservice.NewPipelineService(sourceRepo, scorer, radarservice.NewAnalysisService(scorer), briefs, portfolio, appLogger)

	// Sinks
	var (
		publishers []service.AlertPublisher
		opts       []service.Option
	)
	if cfg.Telegram.Enabled() {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		publishers = append(publishers, service.NewTelegramPublisher(notifier, cfg.Watcher.NotifyEmpty, appLogger))
		opts = append(opts, service.WithErrorNotifier(notifier))
	}
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		publishers = append(publishers, service.NewRedisPublisher(redisClient.Client, cfg.Watcher.Stream, cfg.Redis.StreamMaxLen, appLogger))
	}
	if len(publishers) == 0 {
		appLogger.Warn("No alert sinks configured, runs will only be logged")
	}

	watcher := service.NewWatcherService(pipeline, publishers, cfg.Watcher.Cron, cfg.Watcher.RunOnStart, appLogger, opts...)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Start(gctx)
	})
	g.Go(func() error {
		appLogger.Info("Metrics server starting", logger.Field("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Watcher service stopped with error", logger.ErrorField(err))
		return
	}
	appLogger.Info("Watcher service exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "watcher-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-watcher.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing watcher-service CLI: %s\n", err)
		os.Exit(1)
	}
}
