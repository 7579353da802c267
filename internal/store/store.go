package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/subject"
	"github.com/examprep/backend/internal/stats"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the persistence layer behind the API: subject configurations
// for administrators, the append-only answer log, and the question
// catalogue used to size question pools.
type Store interface {
	stats.LogSource
	stats.QuestionCounter

	SaveSubject(ctx context.Context, cfg *subject.Configuration) error
	GetSubject(ctx context.Context, id string) (*subject.Configuration, error)
	ListSubjects(ctx context.Context) ([]*subject.Configuration, error)
	DeleteSubject(ctx context.Context, id string) error

	SaveAnswer(ctx context.Context, rec *answer.Record) error
	SaveQuestion(ctx context.Context, q *answer.Question) error

	Close() error
}

// Open connects to the store selected by driver ("sqlite" or "postgres").
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "sqlite":
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
