// Package feed fetches the configured RSS sources and hands the engine a
// flattened batch of entries.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"klbrief/internal/digest"
)

// SourcesConfig is the YAML feeds file:
//
//	feeds:
//	  - https://news.google.com/rss/search?q=...
type SourcesConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadSources reads the RSS source list. An empty list is a config error.
func LoadSources(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}
	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s: no feeds configured", path)
	}
	return cfg.Feeds, nil
}

// Fetcher downloads and parses feeds, throttled so bursts of sources do
// not hammer the upstream aggregator.
type Fetcher struct {
	parser  *gofeed.Parser
	limiter *rate.Limiter
	timeout time.Duration
}

func NewFetcher(requestTimeout time.Duration, requestsPerSecond float64) *Fetcher {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Fetcher{
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		timeout: requestTimeout,
	}
}

// FetchAll fetches every source and returns the flattened entry list. A
// failing source is logged and skipped; only a run where every single
// source failed returns an error.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]digest.Entry, error) {
	var entries []digest.Entry
	ok := 0

	for _, url := range urls {
		if err := f.limiter.Wait(ctx); err != nil {
			return entries, err
		}

		items, err := f.fetchOne(ctx, url)
		if err != nil {
			slog.Warn("feed fetch failed", "url", url, "err", err)
			continue
		}
		entries = append(entries, items...)
		ok++
		slog.Info("feed fetched", "url", url, "items", len(items))
	}

	if ok == 0 && len(urls) > 0 {
		return nil, fmt.Errorf("all %d feed sources failed", len(urls))
	}
	slog.Info("feeds fetched", "ok", ok, "total", len(urls), "entries", len(entries))
	return entries, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([]digest.Entry, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]digest.Entry, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		entries = append(entries, toEntry(it))
	}
	return entries, nil
}

// toEntry converts a parsed feed item into the engine's adapter-neutral
// entry shape.
func toEntry(it *gofeed.Item) digest.Entry {
	return digest.Entry{
		Title:           it.Title,
		Link:            it.Link,
		Summary:         it.Description,
		Published:       it.Published,
		Updated:         it.Updated,
		PublishedParsed: it.PublishedParsed,
		UpdatedParsed:   it.UpdatedParsed,
	}
}
