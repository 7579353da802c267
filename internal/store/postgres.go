package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/domain/subject"
	"github.com/examprep/backend/internal/stats"
)

const pgSchema = `
create table if not exists subjects (
    id text primary key,
    name text not null,
    discipline_filter jsonb,
    board_filter jsonb,
    subject_tag_filter jsonb
);

create table if not exists subject_topics (
    subject_id text not null references subjects(id) on delete cascade,
    position integer not null,
    name text not null,
    filter jsonb,
    primary key (subject_id, position)
);

create table if not exists answers (
    id text primary key,
    user_id text not null,
    question_id text not null,
    discipline text not null default '',
    board text not null default '',
    topic_tags text[] not null default '{}',
    subject_tags text[] not null default '{}',
    is_correct boolean not null,
    answered_at timestamptz not null default now()
);

create index if not exists idx_answers_user on answers(user_id);

create table if not exists questions (
    id text primary key,
    discipline text not null default '',
    board text not null default '',
    topic_tags text[] not null default '{}',
    subject_tags text[] not null default '{}'
);
`

// PostgresStore keeps tag sets in text[] columns so that overlap filters
// map onto the && operator.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSubject(ctx context.Context, cfg *subject.Configuration) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
insert into subjects (id, name, discipline_filter, board_filter, subject_tag_filter)
values ($1, $2, $3, $4, $5)
on conflict (id) do update set
    name = excluded.name,
    discipline_filter = excluded.discipline_filter,
    board_filter = excluded.board_filter,
    subject_tag_filter = excluded.subject_tag_filter`,
			cfg.ID, cfg.Name, jsonbFilter(cfg.DisciplineFilter), jsonbFilter(cfg.BoardFilter), jsonbFilter(cfg.SubjectTagFilter),
		)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "delete from subject_topics where subject_id = $1", cfg.ID); err != nil {
			return err
		}
		for i, t := range cfg.Topics {
			_, err := tx.Exec(ctx,
				"insert into subject_topics (subject_id, position, name, filter) values ($1, $2, $3, $4)",
				cfg.ID, i, t.Name, jsonbFilter(t.Filter),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) GetSubject(ctx context.Context, id string) (*subject.Configuration, error) {
	cfg, err := scanPgSubject(s.pool.QueryRow(ctx,
		"select id, name, discipline_filter, board_filter, subject_tag_filter from subjects where id = $1", id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *PostgresStore) ListSubjects(ctx context.Context) ([]*subject.Configuration, error) {
	rows, err := s.pool.Query(ctx,
		"select id, name, discipline_filter, board_filter, subject_tag_filter from subjects order by name, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*subject.Configuration
	for rows.Next() {
		cfg, err := scanPgSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, cfg := range subjects {
		if err := s.loadTopics(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return subjects, nil
}

func (s *PostgresStore) DeleteSubject(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "delete from subjects where id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPgSubject(row pgx.Row) (*subject.Configuration, error) {
	var cfg subject.Configuration
	var discipline, board, tags []byte
	if err := row.Scan(&cfg.ID, &cfg.Name, &discipline, &board, &tags); err != nil {
		return nil, err
	}
	cfg.DisciplineFilter = decodeJSONB(discipline)
	cfg.BoardFilter = decodeJSONB(board)
	cfg.SubjectTagFilter = decodeJSONB(tags)
	cfg.Topics = []subject.Topic{}
	return &cfg, nil
}

func (s *PostgresStore) loadTopics(ctx context.Context, cfg *subject.Configuration) error {
	rows, err := s.pool.Query(ctx,
		"select name, filter from subject_topics where subject_id = $1 order by position", cfg.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t subject.Topic
		var raw []byte
		if err := rows.Scan(&t.Name, &raw); err != nil {
			return err
		}
		t.Filter = decodeJSONB(raw)
		cfg.Topics = append(cfg.Topics, t)
	}
	return rows.Err()
}

func (s *PostgresStore) SaveAnswer(ctx context.Context, rec *answer.Record) error {
	_, err := s.pool.Exec(ctx, `
insert into answers (id, user_id, question_id, discipline, board, topic_tags, subject_tags, is_correct, answered_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.QuestionID, rec.DisciplineName, rec.BoardName,
		nonNil(rec.TopicTags), nonNil(rec.SubjectTags), rec.IsCorrect, rec.AnsweredAt,
	)
	return err
}

func (s *PostgresStore) SaveQuestion(ctx context.Context, q *answer.Question) error {
	_, err := s.pool.Exec(ctx, `
insert into questions (id, discipline, board, topic_tags, subject_tags)
values ($1, $2, $3, $4, $5)
on conflict (id) do update set
    discipline = excluded.discipline,
    board = excluded.board,
    topic_tags = excluded.topic_tags,
    subject_tags = excluded.subject_tags`,
		q.ID, q.DisciplineName, q.BoardName, nonNil(q.TopicTags), nonNil(q.SubjectTags),
	)
	return err
}

func (s *PostgresStore) FetchMatching(ctx context.Context, userID string, p stats.Predicate) ([]answer.Record, error) {
	where, args := pgWhere(p, []any{userID})
	rows, err := s.pool.Query(ctx, `
select id, user_id, question_id, discipline, board, topic_tags, subject_tags, is_correct, answered_at
from answers where user_id = $1`+where+" order by answered_at, id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []answer.Record
	for rows.Next() {
		var r answer.Record
		if err := rows.Scan(&r.ID, &r.UserID, &r.QuestionID, &r.DisciplineName, &r.BoardName,
			&r.TopicTags, &r.SubjectTags, &r.IsCorrect, &r.AnsweredAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *PostgresStore) CountQuestions(ctx context.Context, p stats.Predicate) (int, error) {
	where, args := pgWhere(p, nil)
	var n int
	err := s.pool.QueryRow(ctx, "select count(*) from questions where true"+where, args...).Scan(&n)
	return n, err
}

// pgWhere renders p as " and ..." clauses; placeholders continue after args.
func pgWhere(p stats.Predicate, args []any) (string, []any) {
	var b strings.Builder
	next := func(terms []string) string {
		args = append(args, terms)
		return "$" + strconv.Itoa(len(args))
	}

	if len(p.Disciplines) > 0 {
		b.WriteString(" and discipline = any(" + next(p.Disciplines) + ")")
	}
	if len(p.Boards) > 0 {
		b.WriteString(" and board = any(" + next(p.Boards) + ")")
	}
	if len(p.TopicsAny) > 0 {
		b.WriteString(" and topic_tags && " + next(p.TopicsAny) + "::text[]")
	}
	if len(p.SubjectTagsAny) > 0 {
		b.WriteString(" and subject_tags && " + next(p.SubjectTagsAny) + "::text[]")
	}
	return b.String(), args
}

// jsonbFilter returns nil for an absent filter so the column stays NULL.
// Text filters are stored as JSON strings and keep any encoded array inside.
func jsonbFilter(v filter.Value) []byte {
	if v.IsAbsent() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func decodeJSONB(raw []byte) filter.Value {
	if raw == nil {
		return filter.Absent()
	}
	var v filter.Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return filter.String(string(raw))
	}
	return v
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
