package repository

import (
	"io"
	"path/filepath"
	"strings"

	"market-risk-radar/pkg/common"
	"market-risk-radar/pkg/utils"

	"github.com/mmcdole/gofeed"
)

var feedExtensions = []string{".xml", ".rss", ".atom"}

func isFeedFile(path string) bool {
	return utils.ContainsString(feedExtensions, strings.ToLower(filepath.Ext(path)))
}

// parseFeed converts RSS or Atom items into loose records so they share the
// JSON normalization path. Stock fields may travel as custom item elements.
func parseFeed(r io.Reader) ([]interface{}, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}

	records := make([]interface{}, 0, len(feed.Items))
	for _, item := range feed.Items {
		content := item.Content
		if content == "" {
			content = item.Description
		}

		record := map[string]interface{}{
			"title":   utils.CleanToValidUTF8(item.Title),
			"content": content,
		}
		if feed.Title != "" {
			record["source"] = feed.Title
		}
		if item.PublishedParsed != nil {
			record["publish_time"] = item.PublishedParsed.In(utils.GetLocation()).Format(common.DateTimeLayout)
		} else if item.Published != "" {
			record["publish_time"] = item.Published
		}
		for _, key := range []string{"id", "stock_code", "stock_name", "stock_industry"} {
			if v, ok := item.Custom[key]; ok && v != "" {
				record[key] = v
			}
		}
		records = append(records, record)
	}
	return records, nil
}
