package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/domain/subject"
	"github.com/examprep/backend/internal/stats"
)

// Filter columns hold whatever the admin UI wrote: NULL, plain text, or a
// JSON document. Tag columns are always JSON arrays of strings.
const schema = `
CREATE TABLE IF NOT EXISTS subjects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    discipline_filter TEXT,
    board_filter TEXT,
    subject_tag_filter TEXT
);

CREATE TABLE IF NOT EXISTS subject_topics (
    subject_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    filter TEXT,
    PRIMARY KEY (subject_id, position),
    FOREIGN KEY (subject_id) REFERENCES subjects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS answers (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    discipline TEXT NOT NULL DEFAULT '',
    board TEXT NOT NULL DEFAULT '',
    topic_tags TEXT NOT NULL DEFAULT '[]',
    subject_tags TEXT NOT NULL DEFAULT '[]',
    is_correct BOOLEAN NOT NULL,
    answered_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answers_user ON answers(user_id);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    discipline TEXT NOT NULL DEFAULT '',
    board TEXT NOT NULL DEFAULT '',
    topic_tags TEXT NOT NULL DEFAULT '[]',
    subject_tags TEXT NOT NULL DEFAULT '[]'
);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared and avoids
	// SQLITE_BUSY between writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Subjects
// ============================================================================

// SaveSubject inserts or replaces a configuration and its topics.
func (s *SQLiteStore) SaveSubject(ctx context.Context, cfg *subject.Configuration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO subjects (id, name, discipline_filter, board_filter, subject_tag_filter)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			discipline_filter = excluded.discipline_filter,
			board_filter = excluded.board_filter,
			subject_tag_filter = excluded.subject_tag_filter
	`, cfg.ID, cfg.Name, cfg.DisciplineFilter.Column(), cfg.BoardFilter.Column(), cfg.SubjectTagFilter.Column())
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM subject_topics WHERE subject_id = ?", cfg.ID); err != nil {
		return err
	}

	for i, t := range cfg.Topics {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO subject_topics (subject_id, position, name, filter) VALUES (?, ?, ?, ?)",
			cfg.ID, i, t.Name, t.Filter.Column(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSubject(ctx context.Context, id string) (*subject.Configuration, error) {
	cfg, err := scanSubject(s.db.QueryRowContext(ctx,
		"SELECT id, name, discipline_filter, board_filter, subject_tag_filter FROM subjects WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadTopics(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *SQLiteStore) ListSubjects(ctx context.Context) ([]*subject.Configuration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, discipline_filter, board_filter, subject_tag_filter FROM subjects ORDER BY name, id",
	)
	if err != nil {
		return nil, err
	}

	var subjects []*subject.Configuration
	for rows.Next() {
		cfg, err := scanSubject(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		subjects = append(subjects, cfg)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// topics are loaded after the cursor is closed; the store runs on a
	// single connection
	for _, cfg := range subjects {
		if err := s.loadTopics(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return subjects, nil
}

func (s *SQLiteStore) DeleteSubject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM subject_topics WHERE subject_id = ?", id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM subjects WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*subject.Configuration, error) {
	var cfg subject.Configuration
	var discipline, board, tags sql.NullString
	if err := row.Scan(&cfg.ID, &cfg.Name, &discipline, &board, &tags); err != nil {
		return nil, err
	}
	cfg.DisciplineFilter = filter.FromColumn(discipline)
	cfg.BoardFilter = filter.FromColumn(board)
	cfg.SubjectTagFilter = filter.FromColumn(tags)
	cfg.Topics = []subject.Topic{}
	return &cfg, nil
}

func (s *SQLiteStore) loadTopics(ctx context.Context, cfg *subject.Configuration) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, filter FROM subject_topics WHERE subject_id = ? ORDER BY position", cfg.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t subject.Topic
		var f sql.NullString
		if err := rows.Scan(&t.Name, &f); err != nil {
			return err
		}
		t.Filter = filter.FromColumn(f)
		cfg.Topics = append(cfg.Topics, t)
	}
	return rows.Err()
}

// ============================================================================
// Answers and questions
// ============================================================================

func (s *SQLiteStore) SaveAnswer(ctx context.Context, rec *answer.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, user_id, question_id, discipline, board, topic_tags, subject_tags, is_correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.QuestionID, rec.DisciplineName, rec.BoardName,
		encodeTags(rec.TopicTags), encodeTags(rec.SubjectTags), rec.IsCorrect, rec.AnsweredAt.UTC(),
	)
	return err
}

func (s *SQLiteStore) SaveQuestion(ctx context.Context, q *answer.Question) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, discipline, board, topic_tags, subject_tags)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			discipline = excluded.discipline,
			board = excluded.board,
			topic_tags = excluded.topic_tags,
			subject_tags = excluded.subject_tags
	`, q.ID, q.DisciplineName, q.BoardName, encodeTags(q.TopicTags), encodeTags(q.SubjectTags))
	return err
}

// FetchMatching returns the user's answers satisfying p, oldest first.
func (s *SQLiteStore) FetchMatching(ctx context.Context, userID string, p stats.Predicate) ([]answer.Record, error) {
	where, args := sqliteWhere(p, "answers")
	query := `SELECT id, user_id, question_id, discipline, board, topic_tags, subject_tags, is_correct, answered_at
		FROM answers WHERE user_id = ?` + where + " ORDER BY answered_at, id"

	rows, err := s.db.QueryContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []answer.Record
	for rows.Next() {
		var r answer.Record
		var topics, subjects string
		var answeredAt time.Time
		if err := rows.Scan(&r.ID, &r.UserID, &r.QuestionID, &r.DisciplineName, &r.BoardName,
			&topics, &subjects, &r.IsCorrect, &answeredAt); err != nil {
			return nil, err
		}
		r.TopicTags = decodeTags(topics)
		r.SubjectTags = decodeTags(subjects)
		r.AnsweredAt = answeredAt
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) CountQuestions(ctx context.Context, p stats.Predicate) (int, error) {
	where, args := sqliteWhere(p, "questions")
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions WHERE 1 = 1"+where, args...).Scan(&n)
	return n, err
}

// sqliteWhere renders p as " AND ..." clauses against table.
func sqliteWhere(p stats.Predicate, table string) (string, []any) {
	var b strings.Builder
	var args []any

	in := func(terms []string) string {
		for _, t := range terms {
			args = append(args, t)
		}
		return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(terms)), ", ") + ")"
	}

	if len(p.Disciplines) > 0 {
		b.WriteString(" AND " + table + ".discipline IN " + in(p.Disciplines))
	}
	if len(p.Boards) > 0 {
		b.WriteString(" AND " + table + ".board IN " + in(p.Boards))
	}
	if len(p.TopicsAny) > 0 {
		b.WriteString(" AND EXISTS (SELECT 1 FROM json_each(" + table + ".topic_tags) WHERE json_each.value IN " + in(p.TopicsAny) + ")")
	}
	if len(p.SubjectTagsAny) > 0 {
		b.WriteString(" AND EXISTS (SELECT 1 FROM json_each(" + table + ".subject_tags) WHERE json_each.value IN " + in(p.SubjectTagsAny) + ")")
	}
	return b.String(), args
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func decodeTags(raw string) []string {
	tags := []string{}
	json.Unmarshal([]byte(raw), &tags)
	return tags
}
