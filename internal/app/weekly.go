package app

import (
	"context"

	"klbrief/internal/mailer"
	"klbrief/internal/metrics"
	"klbrief/internal/report"
	"klbrief/internal/reviews"
)

const weeklyTopStores = 5

// RunWeekly mails the weekly store-review summary built from the
// WEEKLY_REVIEWS_JSON payload. No feeds are involved.
func (a *App) RunWeekly(ctx context.Context) error {
	data := reviews.ParseWeekly(a.cfg.WeeklyReviewsJSON)

	body, err := report.Weekly(report.WeeklyData{
		Data:          data,
		TopByNew:      data.TopByNewReviews(weeklyTopStores),
		TopByDelta:    data.TopByDelta(weeklyTopStores),
		TopByNegative: data.TopByNegativeShare(weeklyTopStores),
	})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	msg := mailer.Message{
		Subject: "📝 Weekly Google Reviews",
		HTML:    body,
	}
	if err := a.mail.Send(ctx, msg); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.IncrementEmailsSent()
	metrics.Global.SetLastRun()
	return nil
}
