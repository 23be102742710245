package http

import (
	"net/http"
	"time"

	"market-risk-radar/internal/radar/dto"
	"market-risk-radar/internal/radar/service"
	"market-risk-radar/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RadarHandler handles HTTP requests for the risk pipeline.
type RadarHandler struct {
	pipeline     service.PipelineService
	logger       *logger.Logger
	briefLimiter *rate.Limiter
}

// NewRadarHandler creates a new RadarHandler. briefPerMinute caps brief
// generation requests; zero or less disables the cap.
func NewRadarHandler(pipeline service.PipelineService, briefPerMinute int, logger *logger.Logger) *RadarHandler {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if briefPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(briefPerMinute)), briefPerMinute)
	}
	return &RadarHandler{pipeline: pipeline, logger: logger, briefLimiter: limiter}
}

// RegisterRoutes registers the radar routes to the Echo group.
func (h *RadarHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news", h.GetNews)
	g.GET("/dashboard_data", h.GetDashboard)
	g.GET("/alerts", h.GetAlerts)
	g.GET("/pipeline", h.RunPipeline)
	g.POST("/generate_brief", h.GenerateBrief, h.limit(h.briefLimiter))
	g.GET("/data_source", h.GetDataSource)
	g.POST("/sentiment", h.AnalyzeSentiment)
	g.GET("/status", h.GetStatus)
}

func (h *RadarHandler) limit(l *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow() {
				h.logger.Warn("Rate limit exceeded", logger.StringField("path", c.Path()))
				return c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "Too many requests"})
			}
			return next(c)
		}
	}
}

// GetNews godoc
// @Summary List scored news
// @Description Load the active corpus and score every article
// @Tags radar
// @Produce  json
// @Success 200 {array} entity.ScoredArticle
// @Router /news [get]
func (h *RadarHandler) GetNews(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipeline.ScoredNews(c.Request().Context()))
}

// GetDashboard godoc
// @Summary Get dashboard metrics
// @Tags radar
// @Produce  json
// @Success 200 {object} entity.DashboardMetrics
// @Router /dashboard_data [get]
func (h *RadarHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipeline.Dashboard(c.Request().Context()))
}

// GetAlerts godoc
// @Summary List alerts
// @Tags radar
// @Produce  json
// @Success 200 {array} entity.Alert
// @Router /alerts [get]
func (h *RadarHandler) GetAlerts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipeline.Alerts(c.Request().Context()))
}

// RunPipeline godoc
// @Summary Run the full pipeline
// @Description Returns scored news, alerts, dashboard metrics, the risk briefing and the market report
// @Tags radar
// @Produce  json
// @Success 200 {object} entity.PipelineResult
// @Router /pipeline [get]
func (h *RadarHandler) RunPipeline(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipeline.Run(c.Request().Context()))
}

// GenerateBrief godoc
// @Summary Generate a briefing for one article
// @Tags radar
// @Accept  json
// @Produce  json
// @Param   request  body    dto.GenerateBriefRequest   true    "Article to brief"
// @Success 200 {object} dto.GenerateBriefResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /generate_brief [post]
func (h *RadarHandler) GenerateBrief(c echo.Context) error {
	var req dto.GenerateBriefRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	return c.JSON(http.StatusOK, h.pipeline.BriefArticle(req))
}

// GetDataSource godoc
// @Summary Describe the active data source
// @Tags radar
// @Produce  json
// @Success 200 {object} dto.SourceInfo
// @Router /data_source [get]
func (h *RadarHandler) GetDataSource(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipeline.DescribeSource(c.Request().Context()))
}

// AnalyzeSentiment godoc
// @Summary Score ad-hoc text
// @Tags radar
// @Accept  json
// @Produce  json
// @Param   request  body    dto.SentimentRequest   true    "Text to score"
// @Success 200 {object} entity.SentimentResult
// @Failure 400 {object} dto.ErrorResponse
// @Router /sentiment [post]
func (h *RadarHandler) AnalyzeSentiment(c echo.Context) error {
	var req dto.SentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	return c.JSON(http.StatusOK, h.pipeline.ScoreText(req.Title, req.Content))
}

// GetStatus godoc
// @Summary Get component status
// @Tags radar
// @Produce  json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func (h *RadarHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.pipeline.Status(c.Request().Context()))
}
