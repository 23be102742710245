package service

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"text/template"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/internal/radar/dto"
	"market-risk-radar/pkg/common"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/metrics"
	"market-risk-radar/pkg/utils"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	riskBriefingTemplate = "risk_briefing.tmpl"
	marketReportTemplate = "market_report.tmpl"

	kindRiskBriefing = "risk_briefing"
	kindMarketReport = "market_report"

	maxHeadlines = 5
	placeholder  = "—"
)

// Subject identifies who a briefing is about.
type Subject struct {
	Code string
	Name string
}

// MarketSummary is the figure set the market report is rendered from.
type MarketSummary struct {
	Total      int
	HighRisk   int
	MediumRisk int
	LowRisk    int
	Stocks     []string
	Industries []string
}

// BriefService renders risk briefings and market reports. Rendering never
// fails outright: errors become a failure notice in the result.
type BriefService interface {
	RiskBriefing(subjectCode, subjectName string, riskTitles []string) entity.BriefResult
	MarketReport(scored []entity.ScoredArticle) entity.BriefResult
	ArticleBrief(req dto.GenerateBriefRequest) dto.GenerateBriefResponse
	Status() dto.GeneratorStatus
}

// NewBriefService parses the narrative templates from fsys, or from the
// built-in set when fsys is nil. portfolio names the subject used in
// market report failure notices.
func NewBriefService(portfolio Subject, fsys fs.FS, log *logger.Logger) (BriefService, error) {
	if fsys == nil {
		fsys = embeddedTemplates
	}

	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"join": func(items []string) string {
			if len(items) == 0 {
				return placeholder
			}
			return strings.Join(items, ", ")
		},
	}
	tmpl, err := template.New("narratives").Funcs(funcs).ParseFS(fsys, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse narrative templates: %w", err)
	}

	return &briefService{
		portfolio: portfolio,
		templates: tmpl,
		logger:    log,
	}, nil
}

type briefService struct {
	portfolio Subject
	templates *template.Template
	logger    *logger.Logger

	mu             sync.Mutex
	generatedCount int64
	lastGenerated  time.Time
}

type briefingView struct {
	GeneratedAt string
	SubjectCode string
	SubjectName string
	RiskLevel   string
	Impact      string
	Count       int
	Headlines   []string
	More        int
}

type reportView struct {
	MarketSummary
	GeneratedAt string
}

// RiskLevel buckets a risk article count into a level and an impact word.
func RiskLevel(count int) (level, impact string) {
	switch {
	case count >= 5:
		return "high", "significant"
	case count >= 3:
		return "medium", "moderate"
	default:
		return "low", "limited"
	}
}

func (s *briefService) RiskBriefing(subjectCode, subjectName string, riskTitles []string) entity.BriefResult {
	now := utils.TimeNow()
	level, impact := RiskLevel(len(riskTitles))

	view := briefingView{
		GeneratedAt: now.Format(common.ReportLayout),
		SubjectCode: subjectCode,
		SubjectName: subjectName,
		RiskLevel:   level,
		Impact:      impact,
		Count:       len(riskTitles),
	}
	if len(riskTitles) > maxHeadlines {
		view.Headlines = append([]string(nil), riskTitles[:maxHeadlines]...)
		view.More = len(riskTitles) - maxHeadlines
	} else {
		view.Headlines = append([]string(nil), riskTitles...)
	}

	return s.generate(kindRiskBriefing, riskBriefingTemplate, view, Subject{Code: subjectCode, Name: subjectName}, now)
}

func (s *briefService) MarketReport(scored []entity.ScoredArticle) entity.BriefResult {
	now := utils.TimeNow()
	view := reportView{
		MarketSummary: SummarizeMarket(scored),
		GeneratedAt:   now.Format(common.ReportLayout),
	}
	return s.generate(kindMarketReport, marketReportTemplate, view, s.portfolio, now)
}

// ArticleBrief renders a risk briefing for one caller-supplied article.
func (s *briefService) ArticleBrief(req dto.GenerateBriefRequest) dto.GenerateBriefResponse {
	title := strings.TrimSpace(req.NewsTitle)
	if title == "" {
		title = utils.TruncateRunes(strings.TrimSpace(req.NewsContent), 40)
	}
	if title == "" {
		title = common.UntitledNews
	}

	code := strings.TrimSpace(req.StockCode)
	if code == "" {
		code = common.UnknownStockCode
	}
	name := strings.TrimSpace(req.StockName)
	if name == "" {
		name = code
	}

	newsID := req.NewsID
	if newsID <= 0 {
		newsID = 1
	}

	result := s.RiskBriefing(code, name, []string{title})
	return dto.GenerateBriefResponse{
		NewsID:        newsID,
		BriefTitle:    fmt.Sprintf("Risk response briefing: %s", title),
		BriefContent:  result.Content,
		GeneratedTime: utils.FormatDateTime(result.GeneratedAt),
	}
}

func (s *briefService) Status() dto.GeneratorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := dto.GeneratorStatus{GeneratedCount: s.generatedCount}
	if !s.lastGenerated.IsZero() {
		status.LastGenerated = s.lastGenerated.Format(time.RFC3339)
	}
	return status
}

// SummarizeMarket counts risk tiers from raw scores and collects the
// distinct stocks and industries, sorted.
func SummarizeMarket(scored []entity.ScoredArticle) MarketSummary {
	summary := MarketSummary{
		Total:      len(scored),
		Stocks:     []string{},
		Industries: []string{},
	}

	stocks := make(map[string]struct{})
	industries := make(map[string]struct{})
	for _, a := range scored {
		switch {
		case entity.IsHighRisk(a.SentimentScore):
			summary.HighRisk++
		case entity.IsMediumRisk(a.SentimentScore):
			summary.MediumRisk++
		default:
			summary.LowRisk++
		}
		if a.StockCode != "" {
			stocks[a.StockCode] = struct{}{}
		}
		if a.StockIndustry != "" {
			industries[a.StockIndustry] = struct{}{}
		}
	}

	for code := range stocks {
		summary.Stocks = append(summary.Stocks, code)
	}
	for industry := range industries {
		summary.Industries = append(summary.Industries, industry)
	}
	sort.Strings(summary.Stocks)
	sort.Strings(summary.Industries)
	return summary
}

func (s *briefService) generate(kind, name string, data interface{}, subject Subject, now time.Time) entity.BriefResult {
	content, err := s.render(name, data)
	if err != nil {
		s.logger.Error("Failed to generate narrative",
			logger.StringField("kind", kind),
			logger.StringField("subject", subject.Code),
			logger.ErrorField(err),
		)
		metrics.BriefsGenerated.WithLabelValues(kind, "failed").Inc()
		return entity.BriefResult{
			Content:     failureNotice(kind, subject, now, err),
			Failed:      true,
			Reason:      err.Error(),
			GeneratedAt: now,
		}
	}

	s.mu.Lock()
	s.generatedCount++
	s.lastGenerated = now
	s.mu.Unlock()

	metrics.BriefsGenerated.WithLabelValues(kind, "success").Inc()
	return entity.BriefResult{Content: content, GeneratedAt: now}
}

func (s *briefService) render(name string, data interface{}) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template %s panicked: %v", name, r)
		}
	}()

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var narrativeTitles = map[string]string{
	kindRiskBriefing: "Risk Briefing",
	kindMarketReport: "Market Report",
}

func failureNotice(kind string, subject Subject, now time.Time, cause error) string {
	title, ok := narrativeTitles[kind]
	if !ok {
		title = "Narrative"
	}
	return fmt.Sprintf(
		"%s Generation Failed\nStock: %s (%s)\nTime: %s\nError: %v\nPlease retry later or check the input.",
		title, subject.Name, subject.Code, now.Format(common.ReportLayout), cause,
	)
}
