package service_test

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/domain/subject"
	"github.com/examprep/backend/internal/service"
	"github.com/examprep/backend/internal/stats"
	"github.com/examprep/backend/internal/store"
)

func seededStore(t *testing.T) (*store.SQLiteStore, map[string]string) {
	t.Helper()
	ctx := context.Background()

	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ids := make(map[string]string)
	for _, name := range []string{"Português", "Matemática", "História"} {
		cfg := subject.New(name)
		cfg.DisciplineFilter = filter.String(name)
		require.NoError(t, s.SaveSubject(ctx, cfg))
		ids[name] = cfg.ID
	}

	questions := []answer.Question{
		{ID: "p1", DisciplineName: "Português"},
		{ID: "p2", DisciplineName: "Português"},
		{ID: "p3", DisciplineName: "Português"},
		{ID: "m1", DisciplineName: "Matemática"},
	}
	for i := range questions {
		require.NoError(t, s.SaveQuestion(ctx, &questions[i]))
	}

	for _, a := range []struct {
		discipline string
		correct    bool
	}{
		{"Português", true}, {"Português", false}, {"Matemática", true},
	} {
		rec, err := answer.New("u1", "q", a.discipline, "", nil, nil, a.correct)
		require.NoError(t, err)
		require.NoError(t, s.SaveAnswer(ctx, rec))
	}

	return s, ids
}

func newService(s store.Store) *service.StatsService {
	return service.NewStatsService(s, slog.New(slog.DiscardHandler), 2, stats.Options{MaxConcurrentFetches: 2})
}

func TestStatsService_SubjectReport(t *testing.T) {
	s, ids := seededStore(t)
	svc := newService(s)

	report, err := svc.SubjectReport(context.Background(), ids["Português"], "u1")
	require.NoError(t, err)
	assert.Equal(t, stats.NewResult(2, 1), report.Overall)
	assert.Empty(t, report.PerTopic)

	_, err = svc.SubjectReport(context.Background(), "missing", "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.SubjectReport(context.Background(), ids["Português"], "")
	assert.ErrorIs(t, err, stats.ErrMissingUser)
}

func TestStatsService_Summaries(t *testing.T) {
	s, _ := seededStore(t)
	svc := newService(s)

	summaries, err := svc.Summaries(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "Português", summaries[0].Name)
	assert.Equal(t, 3, summaries[0].PoolSize)
	assert.Equal(t, 75, summaries[0].Importance)
	assert.Equal(t, 2, summaries[0].Report.Overall.TotalAttempts)

	assert.Equal(t, "Matemática", summaries[1].Name)
	assert.Equal(t, 25, summaries[1].Importance)
	assert.Equal(t, 100, summaries[1].Report.Overall.SuccessRate)

	// no questions and no attempts
	assert.Equal(t, "História", summaries[2].Name)
	assert.Zero(t, summaries[2].Importance)
	assert.Zero(t, summaries[2].Report.Overall.TotalAttempts)
}

type brokenCounter struct {
	store.Store
}

func (brokenCounter) CountQuestions(context.Context, stats.Predicate) (int, error) {
	return 0, errors.New("catalogue offline")
}

func TestStatsService_SummariesKeepReportsWhenPoolCountFails(t *testing.T) {
	s, _ := seededStore(t)
	svc := newService(brokenCounter{Store: s})

	summaries, err := svc.Summaries(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	for _, sum := range summaries {
		assert.Error(t, sum.PoolErr)
		assert.Zero(t, sum.Importance)
	}
	// all importances tie at zero, so the order is by name
	assert.Equal(t, "História", summaries[0].Name)
	assert.Equal(t, 2, summaries[2].Report.Overall.TotalAttempts)
}

func TestStatsService_SummariesRequireUser(t *testing.T) {
	s, _ := seededStore(t)
	_, err := newService(s).Summaries(context.Background(), "")
	assert.ErrorIs(t, err, stats.ErrMissingUser)
}
