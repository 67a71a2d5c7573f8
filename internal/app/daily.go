package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"klbrief/internal/digest"
	"klbrief/internal/mailer"
	"klbrief/internal/metrics"
	"klbrief/internal/report"
	"klbrief/internal/reviews"
)

// RunDaily produces and sends the daily briefing: ranked Top-N and the
// review pilot block in the email body, the full topic-bucketed batch as
// an HTML attachment.
func (a *App) RunDaily(ctx context.Context) error {
	started := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(started))
	}()

	entries, err := a.fetchEntries(ctx)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	res := digest.Process(entries, a.classifier, digest.Options{
		Now:    time.Now().UTC(),
		MaxAge: a.cfg.NewsMaxAge,
	})
	metrics.Global.RecordBatch(res.Entries, res.Stats.Total, res.DroppedOld, res.DroppedIrrelevant, res.Collapsed)
	slog.Info("batch processed",
		"entries", res.Entries,
		"items", res.Stats.Total,
		"critical", res.Stats.Critical,
		"international", res.Stats.International,
		"dropped_old", res.DroppedOld,
		"dropped_irrelevant", res.DroppedIrrelevant,
		"collapsed", res.Collapsed)

	tiers := digest.SplitTiers(res.Items, a.cfg.MaxTop, a.cfg.MentionsCount, a.cfg.InternationalMax)
	buckets := digest.TopicBuckets(res.Items, a.topicOrder())

	date := report.DateDE(time.Now(), a.cfg.Timezone)

	body, err := report.Daily(report.DailyData{
		Date:    date,
		Top:     tiers.Headline,
		Intl:    tiers.International,
		Stats:   res.Stats,
		Reviews: reviews.ParseDaily(a.cfg.ReviewsJSON, 5),
	})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	magazine, err := report.Magazine(report.MagazineData{Date: date, Buckets: buckets})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	msg := mailer.Message{
		Subject: fmt.Sprintf("📰 Media & Review Briefing | %s", date),
		HTML:    body,
		Attachments: []mailer.Attachment{{
			Filename: fmt.Sprintf("DE_monitoring_%s.html", time.Now().Format("2006-01-02")),
			Content:  []byte(magazine),
		}},
	}
	if err := a.mail.Send(ctx, msg); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.IncrementEmailsSent()
	metrics.Global.SetLastRun()
	return nil
}
