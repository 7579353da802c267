package stats

import (
	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/domain/subject"
)

// Predicate lists the optional constraints on a user's answers.
// Empty fields are not applied; an empty Predicate selects every answer of
// the user. Disciplines and Boards are membership tests; TopicsAny and
// SubjectTagsAny require at least one shared tag.
type Predicate struct {
	Disciplines    []string `json:"disciplines,omitempty"`
	Boards         []string `json:"boards,omitempty"`
	TopicsAny      []string `json:"topics_any,omitempty"`
	SubjectTagsAny []string `json:"subject_tags_any,omitempty"`
}

func (p Predicate) IsEmpty() bool {
	return len(p.Disciplines) == 0 &&
		len(p.Boards) == 0 &&
		len(p.TopicsAny) == 0 &&
		len(p.SubjectTagsAny) == 0
}

// Matches reports whether a record's fields satisfy p. The user constraint
// is not part of p and must be checked by the caller.
func (p Predicate) Matches(q answer.Question) bool {
	if len(p.Disciplines) > 0 && !contains(p.Disciplines, q.DisciplineName) {
		return false
	}
	if len(p.Boards) > 0 && !contains(p.Boards, q.BoardName) {
		return false
	}
	if len(p.TopicsAny) > 0 && !overlaps(p.TopicsAny, q.TopicTags) {
		return false
	}
	if len(p.SubjectTagsAny) > 0 && !overlaps(p.SubjectTagsAny, q.SubjectTags) {
		return false
	}
	return true
}

// OverallPredicate builds the subject-level rollup: discipline and board
// membership, subject tag overlap, and overlap with the union of every
// topic slot.
func OverallPredicate(cfg *subject.Configuration) Predicate {
	p := scope(cfg)
	p.TopicsAny = nonEmpty(filter.NormalizeAll(cfg.TopicFilterSets()))
	return p
}

// TopicPredicate builds the predicate for topic slot i. It panics if i is
// out of range.
func TopicPredicate(cfg *subject.Configuration, i int) Predicate {
	p := scope(cfg)
	p.TopicsAny = nonEmpty(filter.Normalize(cfg.Topics[i].Filter))
	return p
}

func scope(cfg *subject.Configuration) Predicate {
	return Predicate{
		Disciplines:    nonEmpty(filter.Normalize(cfg.DisciplineFilter)),
		Boards:         nonEmpty(filter.Normalize(cfg.BoardFilter)),
		SubjectTagsAny: nonEmpty(filter.Normalize(cfg.SubjectTagFilter)),
	}
}

func nonEmpty(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	return terms
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(set, tags []string) bool {
	for _, t := range tags {
		if contains(set, t) {
			return true
		}
	}
	return false
}
