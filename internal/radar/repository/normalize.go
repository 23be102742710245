package repository

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/pkg/common"
	"market-risk-radar/pkg/utils"

	"github.com/spf13/cast"
)

// NormalizeRecord turns one loosely typed record into an Article. position is
// the record's 1-based index in its batch and becomes the id when the record
// has none.
func NormalizeRecord(record map[string]interface{}, position int, now time.Time) entity.Article {
	title := textField(record, "title")
	content := textField(record, "content")

	if title == "" {
		title = content
	}
	if title == "" {
		title = common.UntitledNews
	}
	if content == "" {
		content = title
	}

	publishTime := textField(record, "publish_time")
	if publishTime == "" {
		publishTime = now.Format(common.DateTimeLayout)
	}

	stockCode := textField(record, "stock_code")
	if stockCode == "" {
		stockCode = common.UnknownStockCode
	}

	return entity.Article{
		ID:            idField(record, position),
		Title:         title,
		Content:       content,
		Source:        withDefault(textField(record, "source"), common.DefaultNewsSource),
		PublishTime:   publishTime,
		StockCode:     stockCode,
		StockName:     withDefault(textField(record, "stock_name"), stockCode),
		StockIndustry: withDefault(textField(record, "stock_industry"), common.UnknownIndustry),
	}
}

// NormalizeRecords normalizes a decoded batch. Any element that is not an
// object rejects the whole batch.
func NormalizeRecords(items []interface{}, now time.Time) ([]entity.Article, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCorpus
	}

	articles := make([]entity.Article, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, ErrInvalidRecord
		}
		articles = append(articles, NormalizeRecord(record, i+1, now))
	}
	return articles, nil
}

func textField(record map[string]interface{}, key string) string {
	raw, ok := record[key]
	if !ok || raw == nil {
		return ""
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return ""
	}
	if utils.LooksLikeHTML(s) {
		return utils.HTMLToText(s)
	}
	return utils.SafeText(s)
}

func idField(record map[string]interface{}, position int) int {
	raw, ok := record["id"]
	if !ok || raw == nil {
		return position
	}
	id, ok := wholeNumber(raw)
	if !ok || id <= 0 {
		return position
	}
	return int(id)
}

// wholeNumber accepts integers in any encoding, including "3.0" and 3.0.
func wholeNumber(raw interface{}) (int64, bool) {
	var value interface{}
	switch v := raw.(type) {
	case bool:
		return 0, false
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		value = v.String()
	case string:
		text := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n, true
		}
		value = text
	default:
		value = v
	}

	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
