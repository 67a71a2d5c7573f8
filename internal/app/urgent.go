package app

import (
	"context"
	"log/slog"
	"time"

	"klbrief/internal/digest"
	"klbrief/internal/mailer"
	"klbrief/internal/metrics"
	"klbrief/internal/report"
	"klbrief/internal/storage"
)

// RunUrgent checks the feeds for fresh critical mentions and mails a short
// alert for anything not alerted on before. Already-alerted links live in
// a TTL'd JSON file so overlapping runs stay quiet.
func (a *App) RunUrgent(ctx context.Context) error {
	seen := storage.NewSeenCache(a.cfg.SeenCachePath, a.cfg.SeenCacheHours)
	if err := seen.Load(); err != nil {
		// A corrupt cache only risks a duplicate alert; start fresh.
		slog.Warn("seen cache unreadable, starting empty", "err", err)
	}

	entries, err := a.fetchEntries(ctx)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	res := digest.Process(entries, a.classifier, digest.Options{
		Now:    time.Now().UTC(),
		MaxAge: a.cfg.NewsMaxAge,
		Seen:   seen.URLSet(),
	})
	metrics.Global.RecordBatch(res.Entries, res.Stats.Total, res.DroppedOld, res.DroppedIrrelevant, res.Collapsed)

	var critical []digest.ClassifiedItem
	for _, it := range res.Items {
		if it.Critical {
			critical = append(critical, it)
		}
	}
	if len(critical) == 0 {
		slog.Info("no new critical mentions")
		return nil
	}

	body, err := report.Urgent(report.UrgentData{Items: critical})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	msg := mailer.Message{
		Subject: "⚠️ Monitoring – kritische Erwähnung",
		HTML:    body,
	}
	if err := a.mail.Send(ctx, msg); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	metrics.Global.IncrementEmailsSent()

	for _, it := range critical {
		seen.Mark(it.URL, it.Title)
	}
	if err := seen.Save(); err != nil {
		slog.Warn("seen cache not saved", "err", err)
	}

	metrics.Global.SetLastRun()
	slog.Info("urgent alert sent", "items", len(critical))
	return nil
}
