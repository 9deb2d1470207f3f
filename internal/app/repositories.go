package app

import (
	"context"

	"daily-trivia-service/internal/domain"
)

// QuestionSampler picks questions for daily assignment.
type QuestionSampler interface {
	// RandomActive returns one active question chosen uniformly at random,
	// or domain.ErrNoQuestionsAvailable when the pool is empty.
	RandomActive(ctx context.Context) (domain.Question, error)
}

// AssignmentRepository persists the date -> question binding.
// Create must be an atomic insert-if-absent keyed by date and return
// domain.ErrAssignmentExists when the date is already taken.
type AssignmentRepository interface {
	QuestionFor(ctx context.Context, date string) (domain.Question, error)
	Create(ctx context.Context, assignment domain.DailyAssignment) error
}

// ScoreRepository stores per (username, date) best scores.
type ScoreRepository interface {
	Get(ctx context.Context, username, date string) (domain.ScoreRecord, error)
	// Insert fails with domain.ErrScoreExists if the pair already has a record.
	Insert(ctx context.Context, record domain.ScoreRecord) error
	// UpdateIfHigher overwrites the record only when record.Score is strictly
	// greater than the stored score, in a single atomic step.
	UpdateIfHigher(ctx context.Context, record domain.ScoreRecord) (bool, error)
	ListByDate(ctx context.Context, date string) ([]domain.ScoreRecord, error)
	CountByDate(ctx context.Context, date string) (int, error)
}

// QuestionBank is the admin view of the question store.
type QuestionBank interface {
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	Get(ctx context.Context, id int64) (domain.Question, error)
	Create(ctx context.Context, q domain.Question) (domain.Question, error)
	Update(ctx context.Context, q domain.Question) (domain.Question, error)
	// Delete returns domain.ErrQuestionReferenced when a daily assignment points at the question.
	Delete(ctx context.Context, id int64) error
	Counts(ctx context.Context) (total, active int, err error)
}

// ReferenceCounter reports how many daily assignments use a question.
type ReferenceCounter interface {
	CountReferences(ctx context.Context, questionID int64) (int, error)
}

// ScoreStats exposes all-time aggregates over the ledger.
type ScoreStats interface {
	CountAll(ctx context.Context) (int, error)
	CountPlayers(ctx context.Context) (int, error)
}
