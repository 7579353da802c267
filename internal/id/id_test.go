package id_test

import (
	"strings"
	"testing"

	"github.com/examprep/backend/internal/id"
)

func TestGenerateID(t *testing.T) {
	a, b := id.GenerateID(), id.GenerateID()
	if len(a) != 16 {
		t.Errorf("expected 16 characters, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct IDs")
	}
	if err := id.Validate(a); err != nil {
		t.Errorf("generated id failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := []string{"pt", "q-123", "subject_2024"}
	for _, s := range valid {
		if err := id.Validate(s); err != nil {
			t.Errorf("expected %q to be valid: %v", s, err)
		}
	}

	invalid := []string{"", "Upper", "with space", "á", strings.Repeat("a", 65)}
	for _, s := range invalid {
		if err := id.Validate(s); err == nil {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
