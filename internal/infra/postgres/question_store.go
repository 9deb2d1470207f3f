package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"daily-trivia-service/internal/domain"
	"github.com/uptrace/bun"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions_pool,alias:q"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	QuestionText       string    `bun:"question_text,notnull"`
	Answers            []string  `bun:"answers,array"`
	CorrectAnswerIndex int       `bun:"correct_answer_index,notnull"`
	Category           string    `bun:"category,notnull"`
	Difficulty         string    `bun:"difficulty,notnull"`
	IsActive           bool      `bun:"is_active,notnull"`
	CreatedAt          time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r questionRow) toDomain() domain.Question {
	return domain.Question{
		ID:                 r.ID,
		QuestionText:       r.QuestionText,
		Answers:            r.Answers,
		CorrectAnswerIndex: r.CorrectAnswerIndex,
		Category:           r.Category,
		Difficulty:         r.Difficulty,
		IsActive:           r.IsActive,
		CreatedAt:          r.CreatedAt,
	}
}

func fromDomain(q domain.Question) *questionRow {
	return &questionRow{
		ID:                 q.ID,
		QuestionText:       q.QuestionText,
		Answers:            q.Answers,
		CorrectAnswerIndex: q.CorrectAnswerIndex,
		Category:           q.Category,
		Difficulty:         q.Difficulty,
		IsActive:           q.IsActive,
	}
}

// QuestionStore is the bun-backed question bank.
type QuestionStore struct {
	db *bun.DB
}

func NewQuestionStore(db *bun.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// RandomActive samples one active row with ORDER BY random().
func (s *QuestionStore) RandomActive(ctx context.Context) (domain.Question, error) {
	var row questionRow
	err := s.db.NewSelect().
		Model(&row).
		Where("q.is_active = TRUE").
		OrderExpr("random()").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Question{}, domain.ErrNoQuestionsAvailable
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("sample question: %w", err)
	}
	return row.toDomain(), nil
}

func (s *QuestionStore) List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	var rows []questionRow
	q := s.db.NewSelect().Model(&rows)
	if f.Search != "" {
		q = q.Where("q.question_text ILIKE ?", "%"+f.Search+"%")
	}
	if f.Category != "" {
		q = q.Where("q.category = ?", f.Category)
	}
	if f.Difficulty != "" {
		q = q.Where("q.difficulty = ?", f.Difficulty)
	}
	if f.Active != nil {
		q = q.Where("q.is_active = ?", *f.Active)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Offset(f.Offset).
		OrderExpr("q.created_at DESC, q.id DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	out := make([]domain.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *QuestionStore) Get(ctx context.Context, id int64) (domain.Question, error) {
	var row questionRow
	err := s.db.NewSelect().Model(&row).Where("q.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return row.toDomain(), nil
}

func (s *QuestionStore) Create(ctx context.Context, q domain.Question) (domain.Question, error) {
	row := fromDomain(q)
	row.ID = 0
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	return row.toDomain(), nil
}

func (s *QuestionStore) Update(ctx context.Context, q domain.Question) (domain.Question, error) {
	res, err := s.db.NewUpdate().
		Model(fromDomain(q)).
		Column("question_text", "answers", "correct_answer_index", "category", "difficulty", "is_active").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Question{}, fmt.Errorf("update question %d: %w", q.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return s.Get(ctx, q.ID)
}

// Delete relies on the daily_questions foreign key to refuse referenced rows.
func (s *QuestionStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().
		Model((*questionRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if isForeignKeyViolation(err) {
		return domain.ErrQuestionReferenced
	}
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (s *QuestionStore) Counts(ctx context.Context) (int, int, error) {
	total, err := s.db.NewSelect().Model((*questionRow)(nil)).Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count questions: %w", err)
	}
	active, err := s.db.NewSelect().Model((*questionRow)(nil)).Where("q.is_active = TRUE").Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count active questions: %w", err)
	}
	return total, active, nil
}
