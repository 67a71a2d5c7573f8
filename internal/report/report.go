// Package report renders the digest and review data into the HTML views
// that go out by email: the daily briefing body, the topic-bucketed
// magazine attachment, the urgent alert and the weekly review summary.
// Rendering never mutates the batch it is handed.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"klbrief/internal/digest"
	"klbrief/internal/reviews"
)

// relevantScore is the score at which an item's reason line flips from
// "beobachten" to "relevant".
const relevantScore = 4

// Why returns the one-word reason shown next to an item.
func Why(it digest.ClassifiedItem) string {
	if it.Score >= relevantScore {
		return "relevant"
	}
	return "beobachten"
}

// ShortURL trims an URL for display.
func ShortURL(url string, maxLen int) string {
	u := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if maxLen <= 0 || len(u) <= maxLen {
		return u
	}
	return u[:maxLen-1] + "…"
}

var germanWeekdays = [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}

var germanMonths = [...]string{"", "Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember"}

// DateDE formats a time as the German long date used in report headers,
// e.g. "Montag, 24. August 2026".
func DateDE(t time.Time, tzName string) string {
	if loc, err := time.LoadLocation(tzName); err == nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%s, %02d. %s %d", germanWeekdays[t.Weekday()], t.Day(), germanMonths[t.Month()], t.Year())
}

var funcs = template.FuncMap{
	"why":    Why,
	"short":  func(url string) string { return ShortURL(url, 60) },
	"pct":    func(f float64) string { return fmt.Sprintf("%.1f %%", f*100) },
	"signed": func(f float64) string { return fmt.Sprintf("%+.2f", f) },
	"avg":    func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"table": func(title string, stores []reviews.WeeklyStore) map[string]interface{} {
		return map[string]interface{}{"Title": title, "Stores": stores}
	},
}

// DailyData feeds the daily briefing template.
type DailyData struct {
	Date    string
	Top     []digest.ClassifiedItem
	Intl    []digest.ClassifiedItem
	Stats   digest.Stats
	Reviews []reviews.StoreSnapshot
}

var dailyTmpl = template.Must(template.New("daily").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="utf-8"><title>Media &amp; Review Briefing</title></head>
<body style="font-family:system-ui,sans-serif;font-size:14px;color:#111;line-height:1.5;">
<h1 style="color:#E60000;font-size:22px;margin-bottom:4px;">Media &amp; Review Briefing – Deutschland</h1>
<p style="margin:0 0 16px 0;color:#666;">{{.Date}}</p>

<h2 style="font-size:16px;">Executive Summary</h2>
<p><strong>Insight:</strong> {{len .Top}} kuratierte, virale Erwähnungen – nach internem Score geordnet, im Anhang zusätzlich nach Themen gruppiert.</p>
<p><strong>Lage:</strong> {{.Stats.Total}} Meldungen insgesamt, davon {{.Stats.Critical}} kritisch und {{.Stats.International}} international.</p>

<h2 style="font-size:16px;">Virale Erwähnungen – Top {{len .Top}}</h2>
<ol>
{{range .Top}}<li style="margin-bottom:8px;">
  <a href="{{.URL}}">{{.Title}}</a>
  <div style="color:#666;font-size:12px;">{{.SourceHost}} · {{.Tier}} · Grund: {{why .}}{{if gt .PickupCount 1}} · {{.PickupCount}} Quellen{{end}}</div>
</li>
{{end}}</ol>
{{if not .Top}}<p style="color:#666;">Keine relevanten Erwähnungen im Zeitfenster.</p>{{end}}

{{if .Intl}}<h2 style="font-size:16px;">International</h2>
<ul>
{{range .Intl}}<li><a href="{{.URL}}">{{.Title}}</a> <span style="color:#666;font-size:12px;">({{.SourceHost}})</span></li>
{{end}}</ul>{{end}}

<h2 style="font-size:16px;">Google Reviews (Pilot)</h2>
<table width="100%" cellpadding="6" cellspacing="0" style="border-collapse:collapse;font-size:13px;">
<thead><tr style="background:#f2f2f2;">
  <th align="left">Region / Filiale</th><th align="right">Ø</th><th align="right">Δ 24h</th><th align="right">Neue Reviews</th><th align="left">Hinweis</th>
</tr></thead>
<tbody>
{{range .Reviews}}<tr>
  <td>{{.Region}} – {{.Store}}</td><td align="right">{{avg .Avg}}</td><td align="right">{{signed .Delta}}</td><td align="right">{{.Count24}}</td><td>{{.Flag}}</td>
</tr>
{{else}}<tr><td colspan="5" style="color:#666;">Noch keine Filial-spezifischen Daten hinterlegt (Pilotmodus).</td></tr>
{{end}}</tbody>
</table>
<p style="color:#666;font-size:12px;">Δ = Veränderung der Ø-Bewertung in den letzten 24 Stunden (sofern Daten vorliegen).</p>
</body>
</html>
`))

// Daily renders the daily briefing email body.
func Daily(data DailyData) (string, error) {
	return render(dailyTmpl, data)
}

// MagazineData feeds the topic-bucketed attachment.
type MagazineData struct {
	Date    string
	Buckets []digest.TopicBucket
}

var magazineTmpl = template.Must(template.New("magazine").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="utf-8"><title>Media Briefing – Themenübersicht</title></head>
<body style="font-family:system-ui,sans-serif;font-size:14px;color:#111;line-height:1.5;max-width:720px;margin:0 auto;">
<h1 style="color:#E60000;">Media &amp; Review Briefing – Themenübersicht</h1>
<p style="color:#666;">{{.Date}}</p>
{{range .Buckets}}
<h2 style="border-bottom:2px solid #E60000;padding-bottom:4px;">{{.Topic.Label}}</h2>
{{range .Items}}<div style="margin-bottom:14px;">
  <h3 style="margin:0 0 2px 0;font-size:14px;">{{.Title}}</h3>
  <div style="color:#666;font-size:12px;">{{.SourceHost}} · {{.Tier}} · Score {{.Score}} · Grund: {{why .}}{{if .Critical}} · kritisch{{end}}{{if gt .PickupCount 1}} · {{.PickupCount}} Quellen{{end}}</div>
  {{if .Summary}}<p style="margin:4px 0;">{{.Summary}}</p>{{end}}
  <a href="{{.URL}}" style="font-size:12px;color:#0645ad;">{{short .URL}}</a>
</div>
{{end}}
{{end}}
</body>
</html>
`))

// Magazine renders the full topic-bucketed document attached to the daily
// mail.
func Magazine(data MagazineData) (string, error) {
	return render(magazineTmpl, data)
}

// UrgentData feeds the urgent alert template.
type UrgentData struct {
	Items []digest.ClassifiedItem
}

var urgentTmpl = template.Must(template.New("urgent").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="de">
<body style="font-family:system-ui,sans-serif;font-size:14px;color:#111;">
<h2 style="color:#E60000;">Kurzinfo – kritische Erwähnungen</h2>
<ul>
{{range .Items}}<li style="margin-bottom:8px;">
  <a href="{{.URL}}">{{.Title}}</a>
  <div style="color:#666;font-size:12px;">{{.SourceHost}} · {{.Topic.Label}}</div>
</li>
{{end}}</ul>
<p style="color:#666;font-size:12px;">(Automatischer Alarm)</p>
</body>
</html>
`))

// Urgent renders the alert mail body.
func Urgent(data UrgentData) (string, error) {
	return render(urgentTmpl, data)
}

// WeeklyData feeds the weekly review summary template.
type WeeklyData struct {
	Data          reviews.WeeklyData
	TopByNew      []reviews.WeeklyStore
	TopByDelta    []reviews.WeeklyStore
	TopByNegative []reviews.WeeklyStore
}

var weeklyTmpl = template.Must(template.New("weekly").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="utf-8"><title>Weekly Google Reviews</title></head>
<body style="font-family:system-ui,sans-serif;font-size:14px;color:#111;line-height:1.5;">
<h1 style="color:#E60000;font-size:22px;margin-bottom:4px;">Weekly Google Reviews</h1>
<p style="margin:0 0 4px 0;">Zeitraum: letzte {{.Data.WindowDays}} Tage</p>
<p style="margin:0 0 16px 0;">Gesamtzahl neuer Reviews (alle Filialen): <strong>{{.Data.TotalNewReviews}}</strong></p>

<h2 style="font-size:16px;">Executive Summary</h2>
<ul>
  <li>Fokus: Filialen mit auffälligem Anstieg an neuen Reviews, höherem Anteil negativer Bewertungen oder deutlicher Veränderung der Ø-Bewertung.</li>
  <li>Die Tabellen unten zeigen jeweils die Top-Ausreißer nach unterschiedlichen Kriterien.</li>
</ul>

{{template "storeTable" table "Top-Filialen nach Anzahl neuer Reviews" .TopByNew}}
{{template "storeTable" table "Größte Verbesserung der Ø-Bewertung" .TopByDelta}}
{{template "storeTable" table "Höchster Anteil negativer Reviews" .TopByNegative}}

<p style="margin-top:24px;color:#666;font-size:12px;">
Hinweis: Auswertung basiert auf Google-Reviews-Daten aller Filialen; Schwellenwerte und Logik sind im Pilotmodus.
</p>
</body>
</html>

{{define "storeTable"}}
<h3 style="margin:24px 0 8px 0;">{{.Title}}</h3>
{{if not .Stores}}<p style="color:#666;">Keine auffälligen Filialen in diesem Segment.</p>
{{else}}<table width="100%" cellpadding="6" cellspacing="0" style="border-collapse:collapse;font-size:13px;">
<thead><tr style="background:#f2f2f2;">
  <th align="left">Filiale / Region</th><th align="right">Neue Reviews</th><th align="right">davon negativ</th><th align="right">Anteil negativ</th><th align="right">Ø Bewertung</th><th align="right">Δ Ø Bewertung</th>
</tr></thead>
<tbody>
{{range .Stores}}<tr>
  <td><strong>{{.Name}}</strong><br><span style="color:#666;">{{.Region}}</span></td>
  <td align="right">{{.NewReviews}}</td>
  <td align="right">{{.NewNegative}}</td>
  <td align="right">{{pct .ShareNegative}}</td>
  <td align="right">{{avg .AvgRating}}</td>
  <td align="right">{{signed .DeltaRating}}</td>
</tr>
{{end}}</tbody>
</table>{{end}}
{{end}}
`))

// Weekly renders the weekly review summary body.
func Weekly(data WeeklyData) (string, error) {
	return render(weeklyTmpl, data)
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
