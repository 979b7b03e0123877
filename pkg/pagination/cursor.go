package pagination

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Cursor values with a fixed meaning.
const (
	// StartCursor requests the first page.
	StartCursor = "-1"

	// EndCursor is returned by the server once no pages remain.
	EndCursor = "0"
)

// Default bounds for a single run.
const (
	// DefaultMaxIDs caps the number of IDs one run accumulates.
	DefaultMaxIDs = 75000

	// DefaultMaxPages caps the number of pages one run fetches, independent
	// of how many IDs they carried.
	DefaultMaxPages = 1500
)

var (
	// ErrCursorStalled is returned when the server hands back the cursor it
	// was just given.
	ErrCursorStalled = errors.New("cursor did not advance")

	// ErrInvalidCursor is returned for cursors that are not a decimal int64.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// Prometheus metrics for pagination runs.
var (
	paginationPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twitter_pagination_pages_total",
		Help: "Total number of cursor pages fetched",
	})

	paginationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twitter_pagination_runs_total",
		Help: "Total number of pagination runs by outcome",
	}, []string{"outcome"})
)

// Reason says why a run stopped.
type Reason string

const (
	ReasonExhausted Reason = "exhausted" // server returned cursor 0
	ReasonIDCap     Reason = "id_cap"
	ReasonPageCap   Reason = "page_cap"
)

// Page is one cursor page of IDs.
type Page struct {
	IDs        []string
	NextCursor string
}

// PageFetcher fetches the page a cursor points to.
type PageFetcher interface {
	FetchPage(ctx context.Context, cursor string) (Page, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, cursor string) (Page, error)

// FetchPage calls f.
func (f PageFetcherFunc) FetchPage(ctx context.Context, cursor string) (Page, error) {
	return f(ctx, cursor)
}

// Options bounds a run. Zero values select the defaults.
type Options struct {
	// StartCursor is where the run begins. Pass the Cursor of a previous
	// capped Result to resume.
	StartCursor string

	MaxIDs   int
	MaxPages int

	// Name labels log lines, e.g. "friends/ids".
	Name string
}

func (o *Options) defaults() {
	if o.StartCursor == "" {
		o.StartCursor = StartCursor
	}
	if o.MaxIDs <= 0 {
		o.MaxIDs = DefaultMaxIDs
	}
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
}

// Result is the outcome of a completed run.
type Result struct {
	// IDs in page order, then in-page order.
	IDs []string

	// Cursor is EndCursor when the listing was exhausted, otherwise the
	// cursor to resume from.
	Cursor string

	Pages  int
	Reason Reason
}

// Done reports whether the whole listing was collected.
func (r *Result) Done() bool {
	return r.Cursor == EndCursor
}

// Collect walks the cursor chain until the server reports the end, the ID
// cap is reached or the page ceiling is hit. Any fetch error aborts the run
// and is returned unchanged; nothing collected so far is returned with it.
func Collect(ctx context.Context, fetcher PageFetcher, opts Options) (*Result, error) {
	opts.defaults()
	start := time.Now()

	cursor := opts.StartCursor
	if _, err := strconv.ParseInt(cursor, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}

	ids := make([]string, 0)
	pages := 0

	for {
		switch {
		case cursor == EndCursor:
			return finish(opts, &Result{IDs: ids, Cursor: cursor, Pages: pages, Reason: ReasonExhausted}, start), nil
		case len(ids) >= opts.MaxIDs:
			return finish(opts, &Result{IDs: ids, Cursor: cursor, Pages: pages, Reason: ReasonIDCap}, start), nil
		case pages >= opts.MaxPages:
			return finish(opts, &Result{IDs: ids, Cursor: cursor, Pages: pages, Reason: ReasonPageCap}, start), nil
		}

		if err := ctx.Err(); err != nil {
			paginationRunsTotal.WithLabelValues("error").Inc()
			return nil, err
		}

		page, err := fetcher.FetchPage(ctx, cursor)
		if err != nil {
			paginationRunsTotal.WithLabelValues("error").Inc()
			log.Warn().
				Err(err).
				Str("listing", opts.Name).
				Str("cursor", cursor).
				Int("pages", pages).
				Msg("Page fetch failed, discarding partial result")
			return nil, err
		}
		pages++
		paginationPagesTotal.Inc()

		if _, err := strconv.ParseInt(page.NextCursor, 10, 64); err != nil {
			paginationRunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: next cursor %q", ErrInvalidCursor, page.NextCursor)
		}
		if page.NextCursor == cursor {
			paginationRunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %s", ErrCursorStalled, cursor)
		}

		ids = append(ids, page.IDs...)
		cursor = page.NextCursor

		log.Debug().
			Str("listing", opts.Name).
			Int("page_ids", len(page.IDs)).
			Int("total_ids", len(ids)).
			Str("next_cursor", cursor).
			Msg("Page fetched")
	}
}

func finish(opts Options, r *Result, start time.Time) *Result {
	paginationRunsTotal.WithLabelValues(string(r.Reason)).Inc()
	log.Info().
		Str("listing", opts.Name).
		Int("ids", len(r.IDs)).
		Int("pages", r.Pages).
		Str("cursor", r.Cursor).
		Str("reason", string(r.Reason)).
		Dur("duration", time.Since(start)).
		Msg("Pagination complete")
	return r
}
