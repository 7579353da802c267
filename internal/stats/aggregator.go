package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/subject"
)

var (
	ErrMissingUser          = errors.New("user id is required")
	ErrMissingConfiguration = errors.New("subject configuration is required")
)

// OverallSlot identifies the subject-level computation in a SlotError.
const OverallSlot = -1

// LogSource returns the answers of userID that satisfy p.
// An empty p means every answer of the user.
type LogSource interface {
	FetchMatching(ctx context.Context, userID string, p Predicate) ([]answer.Record, error)
}

// SlotError records a fetch that failed for one slot. The slot's result
// is reported as zero.
type SlotError struct {
	Slot    int // OverallSlot or a topic index
	Wrapped error
}

func (e *SlotError) Error() string {
	if e.Slot == OverallSlot {
		return fmt.Sprintf("overall statistics: %v", e.Wrapped)
	}
	return fmt.Sprintf("topic %d statistics: %v", e.Slot, e.Wrapped)
}

func (e *SlotError) Unwrap() error {
	return e.Wrapped
}

// TopicResult is the result for one declared topic.
type TopicResult struct {
	Name string `json:"name"`
	Result
}

// Report holds the statistics of one subject for one user.
// PerTopic[i] corresponds to the configuration's Topics[i].
type Report struct {
	SubjectID string        `json:"subject_id"`
	UserID    string        `json:"user_id"`
	Overall   Result        `json:"overall"`
	PerTopic  []TopicResult `json:"per_topic"`
	Failures  []*SlotError  `json:"-"`
}

// Partial reports whether any slot failed to load.
func (r *Report) Partial() bool { return len(r.Failures) > 0 }

type Options struct {
	// MaxConcurrentFetches bounds the in-flight FetchMatching calls of one
	// Aggregate call. Zero or negative means unbounded.
	MaxConcurrentFetches int
}

// Aggregator computes subject statistics from a LogSource. It holds no
// state between calls.
type Aggregator struct {
	source LogSource
	logger *slog.Logger
	opts   Options
}

func NewAggregator(source LogSource, logger *slog.Logger, opts Options) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{
		source: source,
		logger: logger,
		opts:   opts,
	}
}

// Aggregate computes the overall result and one result per topic slot.
// A failed fetch zeroes only its own slot and is listed in
// Report.Failures. The returned error is non-nil only for a missing user
// or configuration, or when ctx was cancelled.
func (a *Aggregator) Aggregate(ctx context.Context, cfg *subject.Configuration, userID string) (*Report, error) {
	if cfg == nil {
		return nil, ErrMissingConfiguration
	}
	if userID == "" {
		return nil, ErrMissingUser
	}

	n := len(cfg.Topics)
	results := make([]Result, n+1) // index 0 is overall, i+1 is topic i
	errs := make([]error, n+1)

	var g errgroup.Group
	if a.opts.MaxConcurrentFetches > 0 {
		g.SetLimit(a.opts.MaxConcurrentFetches)
	}

	run := func(idx int, p Predicate) {
		g.Go(func() error {
			records, err := a.source.FetchMatching(ctx, userID, p)
			if err != nil {
				errs[idx] = err
				return nil
			}
			results[idx] = Reduce(records)
			return nil
		})
	}

	run(0, OverallPredicate(cfg))
	for i := range cfg.Topics {
		run(i+1, TopicPredicate(cfg, i))
	}
	_ = g.Wait()

	report := &Report{
		SubjectID: cfg.ID,
		UserID:    userID,
		Overall:   results[0],
		PerTopic:  make([]TopicResult, n),
	}
	for i, t := range cfg.Topics {
		report.PerTopic[i] = TopicResult{Name: t.Name, Result: results[i+1]}
	}

	for idx, err := range errs {
		if err == nil {
			continue
		}
		slot := idx - 1
		if idx == 0 {
			slot = OverallSlot
		}
		report.Failures = append(report.Failures, &SlotError{Slot: slot, Wrapped: err})
		a.logger.Warn("statistics slot failed",
			"subject_id", cfg.ID,
			"slot", slot,
			"error", err,
		)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}
