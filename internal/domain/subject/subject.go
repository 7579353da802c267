package subject

import (
	"errors"

	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/id"
)

// Configuration scopes which answers count toward one subject.
// Filters are kept in their raw shape and only normalized when
// statistics are computed.
type Configuration struct {
	ID               string
	Name             string
	DisciplineFilter filter.Value
	BoardFilter      filter.Value
	Topics           []Topic // ordered; each entry is one statistics slot
	SubjectTagFilter filter.Value
}

// Topic is a declared sub-topic of a subject, matched against the
// answer's topic tags.
type Topic struct {
	Name   string
	Filter filter.Value
}

func New(name string) *Configuration {
	return &Configuration{
		ID:     id.GenerateID(),
		Name:   name,
		Topics: []Topic{},
	}
}

func (c *Configuration) AddTopic(name string, f filter.Value) error {
	if name == "" {
		return errors.New("topic name cannot be empty")
	}
	c.Topics = append(c.Topics, Topic{Name: name, Filter: f})
	return nil
}

// TopicFilterSets returns the per-slot topic filters in declaration order.
func (c *Configuration) TopicFilterSets() []filter.Value {
	out := make([]filter.Value, len(c.Topics))
	for i, t := range c.Topics {
		out[i] = t.Filter
	}
	return out
}
