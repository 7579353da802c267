// internal/service/stats.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"

	"github.com/examprep/backend/internal/domain/subject"
	"github.com/examprep/backend/internal/stats"
	"github.com/examprep/backend/internal/store"
	"github.com/examprep/backend/internal/worker"
)

// SubjectSummary is one subject's report plus the size of its question
// pool and its share of the combined pool.
type SubjectSummary struct {
	Name       string        `json:"name"`
	Report     *stats.Report `json:"report"`
	PoolSize   int           `json:"pool_size"`
	Importance int           `json:"importance"` // percentage of all subjects' questions
	PoolErr    error         `json:"-"`
}

// StatsService answers statistics queries on top of the store.
type StatsService struct {
	store      store.Store
	aggregator *stats.Aggregator
	logger     *slog.Logger
	workers    int
}

// NewStatsService creates a StatsService. workers bounds how many
// subjects are aggregated at once by Summaries.
func NewStatsService(s store.Store, logger *slog.Logger, workers int, opts stats.Options) *StatsService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StatsService{
		store:      s,
		aggregator: stats.NewAggregator(s, logger, opts),
		logger:     logger,
		workers:    workers,
	}
}

// SubjectReport computes the statistics of one subject for one user.
func (ss *StatsService) SubjectReport(ctx context.Context, subjectID, userID string) (*stats.Report, error) {
	if userID == "" {
		return nil, stats.ErrMissingUser
	}
	cfg, err := ss.store.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return ss.aggregator.Aggregate(ctx, cfg, userID)
}

type summaryOutput struct {
	summary SubjectSummary
	err     error
}

// Summaries computes a SubjectSummary for every configured subject,
// ordered by importance then name. Per-slot failures stay inside each
// report; only a missing user, a failure listing subjects, or
// cancellation is returned as an error.
func (ss *StatsService) Summaries(ctx context.Context, userID string) ([]SubjectSummary, error) {
	if userID == "" {
		return nil, stats.ErrMissingUser
	}

	subjects, err := ss.store.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}

	pool := worker.NewPool[summaryOutput](ss.workers, len(subjects))
	for i, cfg := range subjects {
		pool.Submit(strconv.Itoa(i), func() summaryOutput {
			return ss.summarize(ctx, cfg, userID)
		})
	}
	pool.Close()

	summaries := make([]SubjectSummary, len(subjects))
	var errs []error
	for res := range pool.Results() {
		i, _ := strconv.Atoi(res.JobID)
		summaries[i] = res.Output.summary
		if res.Output.err != nil {
			errs = append(errs, res.Output.err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	pools := make([]int, len(summaries))
	for i, s := range summaries {
		pools[i] = s.PoolSize
	}
	for i, share := range stats.Importance(pools) {
		summaries[i].Importance = share
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		if summaries[a].Importance != summaries[b].Importance {
			return summaries[a].Importance > summaries[b].Importance
		}
		return summaries[a].Name < summaries[b].Name
	})
	return summaries, nil
}

func (ss *StatsService) summarize(ctx context.Context, cfg *subject.Configuration, userID string) summaryOutput {
	report, err := ss.aggregator.Aggregate(ctx, cfg, userID)
	if err != nil {
		return summaryOutput{err: err}
	}

	size, err := ss.store.CountQuestions(ctx, stats.OverallPredicate(cfg))
	if err != nil {
		ss.logger.Warn("question pool count failed",
			"subject_id", cfg.ID,
			"error", err,
		)
	}

	return summaryOutput{summary: SubjectSummary{
		Name:     cfg.Name,
		Report:   report,
		PoolSize: size,
		PoolErr:  err,
	}}
}
