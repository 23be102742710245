package repository

import (
	"encoding/json"
	"testing"
	"time"

	"market-risk-radar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

func TestNormalizeRecord_Defaults(t *testing.T) {
	got := NormalizeRecord(map[string]interface{}{}, 3, fixedNow)

	assert.Equal(t, entity.Article{
		ID:            3,
		Title:         "Untitled news",
		Content:       "Untitled news",
		Source:        "东方财富",
		PublishTime:   "2026-01-15 09:30:00",
		StockCode:     "000000",
		StockName:     "000000",
		StockIndustry: "unknown",
	}, got)
}

func TestNormalizeRecord_TitleAndContentFallbacks(t *testing.T) {
	onlyContent := NormalizeRecord(map[string]interface{}{"content": "股价大涨"}, 1, fixedNow)
	assert.Equal(t, "股价大涨", onlyContent.Title)
	assert.Equal(t, "股价大涨", onlyContent.Content)

	onlyTitle := NormalizeRecord(map[string]interface{}{"title": "出现违约", "content": nil}, 1, fixedNow)
	assert.Equal(t, "出现违约", onlyTitle.Title)
	assert.Equal(t, "出现违约", onlyTitle.Content)
}

func TestNormalizeRecord_KeepsProvidedFields(t *testing.T) {
	record := map[string]interface{}{
		"id":             json.Number("42"),
		"title":          "监管处罚",
		"content":        "公司收到罚单",
		"source":         "Exchange Wire",
		"publish_time":   "2026-01-16 08:00:00",
		"stock_code":     "600519.SH",
		"stock_name":     "贵州茅台",
		"stock_industry": "消费",
	}
	got := NormalizeRecord(record, 1, fixedNow)

	assert.Equal(t, 42, got.ID)
	assert.Equal(t, "Exchange Wire", got.Source)
	assert.Equal(t, "2026-01-16 08:00:00", got.PublishTime)
	assert.Equal(t, "600519.SH", got.StockCode)
	assert.Equal(t, "贵州茅台", got.StockName)
	assert.Equal(t, "消费", got.StockIndustry)
}

func TestNormalizeRecord_StockNameDefaultsToCode(t *testing.T) {
	got := NormalizeRecord(map[string]interface{}{"stock_code": "300750.SZ"}, 1, fixedNow)
	assert.Equal(t, "300750.SZ", got.StockName)
}

func TestNormalizeRecord_ID(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want int
	}{
		{name: "json number", raw: json.Number("7"), want: 7},
		{name: "string", raw: " 12 ", want: 12},
		{name: "float", raw: 5.0, want: 5},
		{name: "whole json number with fraction", raw: json.Number("3.0"), want: 3},
		{name: "whole string with fraction", raw: "3.0", want: 3},
		{name: "exponent", raw: json.Number("1e2"), want: 100},
		{name: "fractional json number", raw: json.Number("3.5"), want: 4},
		{name: "fractional float", raw: 5.5, want: 4},
		{name: "bool", raw: true, want: 4},
		{name: "zero", raw: json.Number("0"), want: 4},
		{name: "negative", raw: -3, want: 4},
		{name: "garbage", raw: "abc", want: 4},
		{name: "null", raw: nil, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRecord(map[string]interface{}{"id": tt.raw}, 4, fixedNow)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestNormalizeRecord_StripsHTML(t *testing.T) {
	got := NormalizeRecord(map[string]interface{}{
		"title":   "公司<b>大涨</b>",
		"content": "<p>业绩<br/>预增</p>",
	}, 1, fixedNow)

	assert.Equal(t, "公司大涨", got.Title)
	assert.Equal(t, "业绩预增", got.Content)
}

func TestNormalizeRecords(t *testing.T) {
	_, err := NormalizeRecords(nil, fixedNow)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = NormalizeRecords([]interface{}{map[string]interface{}{}, "text"}, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	articles, err := NormalizeRecords([]interface{}{
		map[string]interface{}{"title": "a"},
		map[string]interface{}{"title": "b"},
	}, fixedNow)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, 1, articles[0].ID)
	assert.Equal(t, 2, articles[1].ID)
}

func TestSeedArticles(t *testing.T) {
	seed := SeedArticles()
	require.GreaterOrEqual(t, len(seed), 6)

	ids := make(map[int]bool)
	for _, a := range seed {
		assert.False(t, ids[a.ID], "duplicate id %d", a.ID)
		ids[a.ID] = true
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.StockCode)
	}

	seed[0].Title = "mutated"
	assert.NotEqual(t, "mutated", SeedArticles()[0].Title)
}
