package answer

import (
	"errors"
	"time"

	"github.com/examprep/backend/internal/id"
)

// Record is one user's response to one question.
// The tag fields are copied from the question at answer time so the log
// can be filtered without joining the catalogue.
type Record struct {
	ID             string
	UserID         string
	QuestionID     string
	DisciplineName string
	BoardName      string
	TopicTags      []string
	SubjectTags    []string
	IsCorrect      bool
	AnsweredAt     time.Time
}

// Question is a catalogue entry carrying the same filterable fields as a
// Record. It is used to size the question pool behind a subject.
type Question struct {
	ID             string
	DisciplineName string
	BoardName      string
	TopicTags      []string
	SubjectTags    []string
}

func New(userID, questionID, discipline, board string, topics, subjects []string, correct bool) (*Record, error) {
	if userID == "" {
		return nil, errors.New("user id cannot be empty")
	}
	if questionID == "" {
		return nil, errors.New("question id cannot be empty")
	}
	if topics == nil {
		topics = []string{}
	}
	if subjects == nil {
		subjects = []string{}
	}
	return &Record{
		ID:             id.GenerateID(),
		UserID:         userID,
		QuestionID:     questionID,
		DisciplineName: discipline,
		BoardName:      board,
		TopicTags:      topics,
		SubjectTags:    subjects,
		IsCorrect:      correct,
		AnsweredAt:     time.Now().UTC(),
	}, nil
}

// Tags returns the filterable fields of the question the record answers.
func (r *Record) Tags() Question {
	return Question{
		ID:             r.QuestionID,
		DisciplineName: r.DisciplineName,
		BoardName:      r.BoardName,
		TopicTags:      r.TopicTags,
		SubjectTags:    r.SubjectTags,
	}
}
