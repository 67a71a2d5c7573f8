// Package app wires configuration, fetching, the digest engine and the
// mailer into the three runs shipped as binaries: the daily briefing, the
// urgent watcher and the weekly review summary.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"klbrief/internal/config"
	"klbrief/internal/digest"
	"klbrief/internal/feed"
	"klbrief/internal/logger"
	"klbrief/internal/mailer"
)

type App struct {
	cfg        *config.Config
	rules      *digest.Rules
	classifier *digest.Classifier
	fetcher    *feed.Fetcher
	mail       *mailer.Client
}

// New loads configuration and rules and builds the shared collaborators.
// Errors here mean a broken deployment and are meant to be fatal.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Debug)

	rules, err := digest.LoadRules(cfg.RulesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	return &App{
		cfg:        cfg,
		rules:      rules,
		classifier: digest.NewClassifier(rules),
		fetcher:    feed.NewFetcher(cfg.RequestTimeout, cfg.FeedRatePerSec),
		mail: mailer.NewClient(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo,
			cfg.CC, cfg.BCC, cfg.RequestTimeout, cfg.RetryAttempts, cfg.RetryDelay),
	}, nil
}

func (a *App) fetchEntries(ctx context.Context) ([]digest.Entry, error) {
	sources, err := feed.LoadSources(a.cfg.FeedsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load feed sources: %w", err)
	}

	entries, err := a.fetcher.FetchAll(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("fetch feeds: %w", err)
	}
	slog.Debug("entries collected", "count", len(entries))
	return entries, nil
}

func (a *App) topicOrder() digest.TopicBucketOrder {
	if a.cfg.TopicOrder == "fixed" {
		return digest.OrderFixed
	}
	return digest.OrderByMaxScore
}
