package postgres

import (
	"context"
	"errors"
	"fmt"

	"daily-trivia-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreStore persists the daily score ledger.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

const scoreColumns = `username, to_char(date, 'YYYY-MM-DD'), score, correct_answers, total_questions, response_time_ms, submitted_at`

func scanScore(row pgx.Row) (domain.ScoreRecord, error) {
	var r domain.ScoreRecord
	err := row.Scan(&r.Username, &r.Date, &r.Score, &r.CorrectAnswers, &r.TotalQuestions, &r.ResponseTimeMS, &r.SubmittedAt)
	return r, err
}

func (s *ScoreStore) Get(ctx context.Context, username, date string) (domain.ScoreRecord, error) {
	r, err := scanScore(s.pool.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM daily_scores WHERE username = $1 AND date = $2::date`, username, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScoreRecord{}, domain.ErrScoreNotFound
	}
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("get score: %w", err)
	}
	return r, nil
}

func (s *ScoreStore) Insert(ctx context.Context, r domain.ScoreRecord) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO daily_scores (username, date, score, correct_answers, total_questions, response_time_ms, submitted_at)
VALUES ($1, $2::date, $3, $4, $5, $6, $7)`,
		r.Username, r.Date, r.Score, r.CorrectAnswers, r.TotalQuestions, r.ResponseTimeMS, r.SubmittedAt)
	if isUniqueViolation(err) {
		return domain.ErrScoreExists
	}
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// UpdateIfHigher guards the write with the comparison so concurrent
// submissions can never lower the stored score.
func (s *ScoreStore) UpdateIfHigher(ctx context.Context, r domain.ScoreRecord) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
UPDATE daily_scores
SET score = $3, correct_answers = $4, total_questions = $5, response_time_ms = $6, submitted_at = $7
WHERE username = $1 AND date = $2::date AND score < $3`,
		r.Username, r.Date, r.Score, r.CorrectAnswers, r.TotalQuestions, r.ResponseTimeMS, r.SubmittedAt)
	if err != nil {
		return false, fmt.Errorf("update score: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *ScoreStore) ListByDate(ctx context.Context, date string) ([]domain.ScoreRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+scoreColumns+` FROM daily_scores WHERE date = $1::date ORDER BY score DESC, response_time_ms ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScoreRecord, 0)
	for rows.Next() {
		r, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return out, nil
}

func (s *ScoreStore) CountByDate(ctx context.Context, date string) (int, error) {
	return s.count(ctx, `SELECT count(*) FROM daily_scores WHERE date = $1::date`, date)
}

func (s *ScoreStore) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT count(*) FROM daily_scores`)
}

func (s *ScoreStore) CountPlayers(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT count(DISTINCT username) FROM daily_scores`)
}

func (s *ScoreStore) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scores: %w", err)
	}
	return n, nil
}
