package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/internal/radar/config"
	"market-risk-radar/internal/radar/dto"
	"market-risk-radar/pkg/logger"
	"market-risk-radar/pkg/utils"

	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
)

// LoadResult is the outcome of one corpus load. When UsedSeed is set,
// Reason explains why the external corpus was not used.
type LoadResult struct {
	Articles []entity.Article
	Path     string
	UsedSeed bool
	Reason   string
}

// SourceRepository reads the news corpus the pipeline analyzes.
type SourceRepository interface {
	LoadArticles(ctx context.Context) LoadResult
	DescribeSource(ctx context.Context) dto.SourceInfo
}

// NewSourceRepository creates a loader over the configured locations.
func NewSourceRepository(cfg config.Source, log *logger.Logger) SourceRepository {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &sourceRepository{
		cfg:    cfg,
		logger: log,
		cache:  cache.New(ttl, 2*ttl),
	}
}

type sourceRepository struct {
	cfg    config.Source
	logger *logger.Logger
	cache  *cache.Cache
}

type candidate struct {
	path    string
	modTime time.Time
	size    int64
}

// LoadArticles returns the newest parseable external corpus, or the seed
// corpus when there is none. It never fails.
func (r *sourceRepository) LoadArticles(ctx context.Context) LoadResult {
	candidates := r.discover()
	if len(candidates) == 0 {
		return r.seed("", ErrNoCorpus)
	}

	var lastErr error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return r.seed(c.path, err)
		}

		articles, err := r.read(c)
		if err != nil {
			r.logger.Warn("Skipping unusable corpus file",
				logger.StringField("path", c.path),
				logger.ErrorField(err),
			)
			lastErr = err
			continue
		}
		return LoadResult{Articles: articles, Path: c.path}
	}

	return r.seed(candidates[0].path, lastErr)
}

// DescribeSource reports which corpus LoadArticles would use right now.
func (r *sourceRepository) DescribeSource(ctx context.Context) dto.SourceInfo {
	result := r.LoadArticles(ctx)
	info := dto.SourceInfo{
		Path:         result.Path,
		UsedSeed:     result.UsedSeed,
		ArticleCount: len(result.Articles),
		Timestamp:    utils.FormatDateTime(utils.TimeNow()),
		Reason:       result.Reason,
	}
	if result.Path != "" {
		if stat, err := os.Stat(result.Path); err == nil {
			info.Modified = humanize.Time(stat.ModTime())
			info.Size = humanize.Bytes(uint64(stat.Size()))
		}
	}
	return info
}

func (r *sourceRepository) seed(path string, cause error) LoadResult {
	reason := ErrNoCorpus.Error()
	if cause != nil {
		reason = cause.Error()
	}
	r.logger.Warn("Using seed corpus", logger.StringField("reason", reason))
	return LoadResult{
		Articles: SeedArticles(),
		Path:     path,
		UsedSeed: true,
		Reason:   reason,
	}
}

func (r *sourceRepository) patterns() []string {
	base := r.cfg.BaseDir
	if base == "" {
		base = "."
	}

	var patterns []string
	if r.cfg.Path != "" {
		patterns = append(patterns, r.cfg.Path)
	}
	for _, p := range []string{r.cfg.DataGlob, r.cfg.CrawlerGlob, r.cfg.FeedGlob} {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// discover lists every regular file matching a pattern, newest first. Ties
// keep pattern order.
func (r *sourceRepository) discover() []candidate {
	seen := make(map[string]bool)
	var candidates []candidate

	add := func(path string) {
		if seen[path] {
			return
		}
		stat, err := os.Stat(path)
		if err != nil || !stat.Mode().IsRegular() {
			return
		}
		seen[path] = true
		candidates = append(candidates, candidate{path: path, modTime: stat.ModTime(), size: stat.Size()})
	}

	for _, pattern := range r.patterns() {
		if stat, err := os.Stat(pattern); err == nil && stat.Mode().IsRegular() {
			add(pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			r.logger.Debug("Invalid corpus pattern", logger.StringField("pattern", pattern), logger.ErrorField(err))
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})
	return candidates
}

func (r *sourceRepository) read(c candidate) ([]entity.Article, error) {
	key := fmt.Sprintf("%s|%d|%d", c.path, c.modTime.UnixNano(), c.size)
	if cached, ok := r.cache.Get(key); ok {
		return cloneArticles(cached.([]entity.Article)), nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var items []interface{}
	if isFeedFile(c.path) {
		items, err = parseFeed(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse feed %s: %w", c.path, err)
		}
	} else {
		items, err = decodeJSONRecords(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.path, err)
		}
	}

	articles, err := NormalizeRecords(items, utils.TimeNow())
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", c.path, err)
	}

	r.cache.SetDefault(key, articles)
	return cloneArticles(articles), nil
}

func decodeJSONRecords(data []byte) ([]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, fmt.Errorf("%w: %v", ErrTrailingData, err)
	}
	items, ok := payload.([]interface{})
	if !ok {
		return nil, ErrNotSequence
	}
	return items, nil
}

func cloneArticles(in []entity.Article) []entity.Article {
	out := make([]entity.Article, len(in))
	copy(out, in)
	return out
}
