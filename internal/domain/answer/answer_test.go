package answer_test

import (
	"testing"

	"github.com/examprep/backend/internal/domain/answer"
)

func TestNewRecord(t *testing.T) {
	rec, err := answer.New("u1", "q1", "Português", "FGV", []string{"Gramática"}, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID == "" {
		t.Error("expected non-empty ID")
	}
	if rec.SubjectTags == nil {
		t.Error("expected nil subject tags to become an empty slice")
	}
	if rec.AnsweredAt.IsZero() {
		t.Error("expected answered_at to be set")
	}
	if got := rec.Tags(); got.ID != "q1" || got.DisciplineName != "Português" {
		t.Errorf("unexpected question tags: %+v", got)
	}
}

func TestNewRecord_RequiresIdentifiers(t *testing.T) {
	if _, err := answer.New("", "q1", "", "", nil, nil, false); err == nil {
		t.Error("expected error for empty user id, got nil")
	}
	if _, err := answer.New("u1", "", "", "", nil, nil, false); err == nil {
		t.Error("expected error for empty question id, got nil")
	}
}
