package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/pagevault/pagevault/internal/activity"
	"github.com/pagevault/pagevault/internal/capture"
	"github.com/pagevault/pagevault/internal/csvio"
	"github.com/pagevault/pagevault/internal/filename"
)

const archiveFileMode = 0o600

// Status classifies the outcome of one URL in a batch run.
type Status string

const (
	StatusArchived Status = "archived"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
	StatusRetrying Status = "retrying"
)

// Event reports progress on one URL. Index is 1-based.
type Event struct {
	Index   int
	Total   int
	URL     string
	Status  Status
	File    string
	Message string
}

// Summary aggregates a batch run.
type Summary struct {
	Total    int            `json:"total"`
	Archived int            `json:"archived"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Failures []csvio.Record `json:"failures,omitempty"`
}

// Runner archives a list of URLs into a directory. Captures are spaced by
// the limiter and retried up to MaxRetries times each.
type Runner struct {
	Client     *capture.Client
	Engine     *filename.Engine
	Dir        string // archive directory
	Ext        string // storage extension, e.g. ".html"
	Limiter    *rate.Limiter
	MaxRetries int
	OnEvent    func(Event) // optional progress callback
}

// Run archives records sequentially. URLs already recorded as archived in
// the activity log, or failing validation, are skipped. The returned error
// is non-nil only for setup failures; per-URL failures land in the summary.
func (r *Runner) Run(ctx context.Context, records []csvio.Record) (Summary, error) {
	reg, err := LoadRegistry(r.Dir, r.Ext)
	if err != nil {
		return Summary{}, err
	}
	done, err := activity.ArchivedURLs(r.Dir)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Total: len(records)}
	for i, rec := range records {
		ev := Event{Index: i + 1, Total: len(records), URL: rec.URL}

		if err := csvio.ValidateURL(rec.URL); err != nil {
			sum.Failed++
			sum.Failures = append(sum.Failures, rec)
			r.emit(ev, StatusFailed, "", err.Error())
			activity.Record(r.Dir, activity.ActionFailed, rec.URL, "", err.Error())
			continue
		}
		if done[csvio.NormalizeURL(rec.URL)] {
			sum.Skipped++
			r.emit(ev, StatusSkipped, "", "already archived")
			continue
		}

		file, err := r.archiveOne(ctx, rec, reg, ev)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			sum.Failed++
			sum.Failures = append(sum.Failures, rec)
			r.emit(ev, StatusFailed, "", err.Error())
			activity.Record(r.Dir, activity.ActionFailed, rec.URL, "", err.Error())
			continue
		}

		sum.Archived++
		done[csvio.NormalizeURL(rec.URL)] = true
		r.emit(ev, StatusArchived, file, "")
		activity.Record(r.Dir, activity.ActionArchived, csvio.NormalizeURL(rec.URL), file, "")
	}
	return sum, nil
}

// archiveOne captures a single URL with retries and writes it under a
// synthesized filename.
func (r *Runner) archiveOne(ctx context.Context, rec csvio.Record, reg *filename.Registry, ev Event) (string, error) {
	retries := r.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var html []byte
	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		if r.Limiter != nil {
			if werr := r.Limiter.Wait(ctx); werr != nil {
				return "", werr
			}
		}
		html, err = r.Client.Capture(ctx, rec.URL)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return "", err
		}
		if attempt < retries {
			r.emit(ev, StatusRetrying, "", fmt.Sprintf("attempt %d/%d failed", attempt, retries))
		}
	}
	if err != nil {
		return "", err
	}

	title := rec.Title
	if title == "" {
		title = capture.TitleOrFallback(html, rec.URL)
	}
	stem := r.Engine.Stem(title, rec.URL, reg)
	name := stem + r.Ext

	if werr := os.WriteFile(filepath.Join(r.Dir, name), html, archiveFileMode); werr != nil {
		return "", fmt.Errorf("writing %s: %w", name, werr)
	}
	return name, nil
}

func (r *Runner) emit(ev Event, status Status, file, msg string) {
	if r.OnEvent == nil {
		return
	}
	ev.Status = status
	ev.File = file
	ev.Message = msg
	r.OnEvent(ev)
}
