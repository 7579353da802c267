// Package seed loads subjects, questions and answers from a TOML fixture
// into a store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/domain/subject"
	"github.com/examprep/backend/internal/id"
	"github.com/examprep/backend/internal/store"
)

// Fixture mirrors the TOML file. Filter fields accept any TOML value:
// a string, an array, or an array of arrays.
type Fixture struct {
	Subjects  []Subject  `toml:"subjects"`
	Questions []Question `toml:"questions"`
	Answers   []Answer   `toml:"answers"`
}

type Subject struct {
	ID               string  `toml:"id"`
	Name             string  `toml:"name"`
	DisciplineFilter any     `toml:"discipline_filter"`
	BoardFilter      any     `toml:"board_filter"`
	SubjectTagFilter any     `toml:"subject_tag_filter"`
	Topics           []Topic `toml:"topics"`
}

type Topic struct {
	Name   string `toml:"name"`
	Filter any    `toml:"filter"`
}

type Question struct {
	ID          string   `toml:"id"`
	Discipline  string   `toml:"discipline"`
	Board       string   `toml:"board"`
	TopicTags   []string `toml:"topic_tags"`
	SubjectTags []string `toml:"subject_tags"`
}

type Answer struct {
	UserID      string    `toml:"user_id"`
	QuestionID  string    `toml:"question_id"`
	Discipline  string    `toml:"discipline"`
	Board       string    `toml:"board"`
	TopicTags   []string  `toml:"topic_tags"`
	SubjectTags []string  `toml:"subject_tags"`
	IsCorrect   bool      `toml:"is_correct"`
	AnsweredAt  time.Time `toml:"answered_at"`
}

// Counts reports how many rows Apply wrote.
type Counts struct {
	Subjects  int
	Questions int
	Answers   int
}

func Load(path string) (*Fixture, error) {
	var f Fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

func Decode(data string) (*Fixture, error) {
	var f Fixture
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// Configurations converts the fixture subjects. Subjects without an id
// get a generated one.
func (f *Fixture) Configurations() ([]*subject.Configuration, error) {
	out := make([]*subject.Configuration, 0, len(f.Subjects))
	for i, s := range f.Subjects {
		if s.Name == "" {
			return nil, fmt.Errorf("subject %d: name is required", i)
		}
		cfg := subject.New(s.Name)
		if s.ID != "" {
			if err := id.Validate(s.ID); err != nil {
				return nil, fmt.Errorf("subject %q: %w", s.Name, err)
			}
			cfg.ID = s.ID
		}
		cfg.DisciplineFilter = filter.FromAny(s.DisciplineFilter)
		cfg.BoardFilter = filter.FromAny(s.BoardFilter)
		cfg.SubjectTagFilter = filter.FromAny(s.SubjectTagFilter)
		for _, t := range s.Topics {
			if err := cfg.AddTopic(t.Name, filter.FromAny(t.Filter)); err != nil {
				return nil, fmt.Errorf("subject %q: %w", s.Name, err)
			}
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Apply writes the fixture to st. Subjects and questions are upserted;
// answers are always appended.
func (f *Fixture) Apply(ctx context.Context, st store.Store) (Counts, error) {
	var c Counts

	cfgs, err := f.Configurations()
	if err != nil {
		return c, err
	}
	for _, cfg := range cfgs {
		if err := st.SaveSubject(ctx, cfg); err != nil {
			return c, fmt.Errorf("save subject %q: %w", cfg.Name, err)
		}
		c.Subjects++
	}

	for _, q := range f.Questions {
		qid := q.ID
		if qid == "" {
			qid = id.GenerateID()
		}
		err := st.SaveQuestion(ctx, &answer.Question{
			ID:             qid,
			DisciplineName: q.Discipline,
			BoardName:      q.Board,
			TopicTags:      q.TopicTags,
			SubjectTags:    q.SubjectTags,
		})
		if err != nil {
			return c, fmt.Errorf("save question %q: %w", qid, err)
		}
		c.Questions++
	}

	for i, a := range f.Answers {
		rec, err := answer.New(a.UserID, a.QuestionID, a.Discipline, a.Board, a.TopicTags, a.SubjectTags, a.IsCorrect)
		if err != nil {
			return c, fmt.Errorf("answer %d: %w", i, err)
		}
		if !a.AnsweredAt.IsZero() {
			rec.AnsweredAt = a.AnsweredAt.UTC()
		}
		if err := st.SaveAnswer(ctx, rec); err != nil {
			return c, fmt.Errorf("save answer %d: %w", i, err)
		}
		c.Answers++
	}

	return c, nil
}
