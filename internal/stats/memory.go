package stats

import (
	"context"
	"sync"

	"github.com/examprep/backend/internal/domain/answer"
)

// MemorySource is an in-memory LogSource and QuestionCounter.
type MemorySource struct {
	mu        sync.RWMutex
	records   []answer.Record
	questions []answer.Question
}

var (
	_ LogSource       = (*MemorySource)(nil)
	_ QuestionCounter = (*MemorySource)(nil)
)

func NewMemorySource(records ...answer.Record) *MemorySource {
	return &MemorySource{records: records}
}

func (m *MemorySource) Add(records ...answer.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
}

func (m *MemorySource) AddQuestions(qs ...answer.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, qs...)
}

func (m *MemorySource) FetchMatching(ctx context.Context, userID string, p Predicate) ([]answer.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []answer.Record
	for _, r := range m.records {
		if r.UserID == userID && p.Matches(r.Tags()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemorySource) CountQuestions(ctx context.Context, p Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, q := range m.questions {
		if p.Matches(q) {
			n++
		}
	}
	return n, nil
}
