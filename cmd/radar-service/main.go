package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-risk-radar/internal/radar/config"
	delivery "market-risk-radar/internal/radar/delivery/http"
	_ "market-risk-radar/internal/radar/docs"
	"market-risk-radar/internal/radar/repository"
	"market-risk-radar/internal/radar/service"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/metrics"
	"market-risk-radar/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the radar HTTP service",
	Run:   runServe,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the pipeline once and prints the result as JSON",
	Run:   runOnce,
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Prints which news corpus the pipeline would use",
	Run:   runSource,
}

type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	pipeline service.PipelineService
}

func bootstrap() *app {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := utils.SetTimeZone(cfg.App.TimeZone); err != nil {
		appLogger.Fatal("Invalid time zone", logger.ErrorField(err))
	}

	portfolio := service.Subject{Code: cfg.Brief.PortfolioCode, Name: cfg.Brief.PortfolioName}

	sourceRepo := repository.NewSourceRepository(cfg.Source, appLogger)
	scorer := service.NewSentimentService(service.DefaultLexicon(), appLogger)
	analysis := service.NewAnalysisService(scorer)
	briefs, err := service.NewBriefService(portfolio, nil, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize brief service", logger.ErrorField(err))
	}
	pipeline := service.NewPipelineService(sourceRepo, scorer, analysis, briefs, portfolio, appLogger)

	return &app{cfg: cfg, logger: appLogger, pipeline: pipeline}
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := bootstrap()
	defer func() { _ = a.logger.Sync() }()

	a.logger.Info("Starting Radar Service", logger.Field("name", a.cfg.App.Name))
	metrics.Init()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: a.cfg.API.CORSOrigins}))

	radarHandler := delivery.NewRadarHandler(a.pipeline, a.cfg.RateLimit.BriefPerMinute, a.logger)
	radarHandler.RegisterRoutes(e.Group("/api"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "time": utils.FormatDateTime(utils.TimeNow())})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", a.cfg.API.Host, a.cfg.API.Port)
		a.logger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	a.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	a.logger.Info("Server exiting")
}

func runOnce(cmd *cobra.Command, args []string) {
	a := bootstrap()
	defer func() { _ = a.logger.Sync() }()

	printJSON(a.pipeline.Run(cmd.Context()))
}

func runSource(cmd *cobra.Command, args []string) {
	a := bootstrap()
	defer func() { _ = a.logger.Sync() }()

	printJSON(a.pipeline.DescribeSource(cmd.Context()))
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %s\n", err)
		os.Exit(1)
	}
}

// @title Market Risk Radar API
// @version 1.0
// @description Scores market news for risk, aggregates alerts and renders briefings.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "radar-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-radar.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, runCmd, sourceCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing radar-service CLI: %s\n", err)
		os.Exit(1)
	}
}
