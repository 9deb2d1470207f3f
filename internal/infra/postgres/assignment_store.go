package postgres

import (
	"context"
	"errors"
	"fmt"

	"daily-trivia-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AssignmentStore persists daily assignments. The date primary key makes
// Create an atomic insert-if-absent.
type AssignmentStore struct {
	pool *pgxpool.Pool
}

func NewAssignmentStore(pool *pgxpool.Pool) *AssignmentStore {
	return &AssignmentStore{pool: pool}
}

const questionForDateSQL = `
SELECT q.id, q.question_text, q.answers, q.correct_answer_index, q.category, q.difficulty, q.is_active, q.created_at
FROM daily_questions d
JOIN questions_pool q ON q.id = d.question_id
WHERE d.date = $1::date`

func (s *AssignmentStore) QuestionFor(ctx context.Context, date string) (domain.Question, error) {
	var q domain.Question
	err := s.pool.QueryRow(ctx, questionForDateSQL, date).Scan(
		&q.ID, &q.QuestionText, &q.Answers, &q.CorrectAnswerIndex,
		&q.Category, &q.Difficulty, &q.IsActive, &q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrAssignmentNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("load daily question %s: %w", date, err)
	}
	return q, nil
}

func (s *AssignmentStore) Create(ctx context.Context, a domain.DailyAssignment) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO daily_questions (date, question_id) VALUES ($1::date, $2)`, a.Date, a.QuestionID)
	if isUniqueViolation(err) {
		return domain.ErrAssignmentExists
	}
	if err != nil {
		return fmt.Errorf("insert daily question %s: %w", a.Date, err)
	}
	return nil
}

func (s *AssignmentStore) CountReferences(ctx context.Context, questionID int64) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM daily_questions WHERE question_id = $1`, questionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count references for %d: %w", questionID, err)
	}
	return n, nil
}
