package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
	"daily-trivia-service/internal/infra/memory"
)

func TestAdminQuestionLifecycle(t *testing.T) {
	db := memory.NewDatabase()
	service := newAdminService(db)
	ctx := context.Background()

	idx := 0
	created, err := service.Create(ctx, domain.QuestionInput{
		QuestionText:       "Largest ocean?",
		Answers:            []string{"Pacific", "Atlantic", "Indian", "Arctic"},
		CorrectAnswerIndex: &idx,
		Category:           "Geography",
		Difficulty:         "Medium",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Category != "geography" || !created.IsActive {
		t.Fatalf("unexpected created question %+v", created)
	}

	inactive := false
	updated, err := service.Update(ctx, created.ID, domain.QuestionInput{
		QuestionText:       "Largest ocean on Earth?",
		Answers:            []string{"Pacific", "Atlantic", "Indian", "Arctic"},
		CorrectAnswerIndex: &idx,
		Category:           "geography",
		Difficulty:         "medium",
		IsActive:           &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive || updated.QuestionText != "Largest ocean on Earth?" || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected updated question %+v", updated)
	}

	if _, err := service.Update(ctx, 404, domain.QuestionInput{
		QuestionText: "x", Answers: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: &idx, Category: "c", Difficulty: "d",
	}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.Get(ctx, created.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestAdminDeleteReferencedQuestion(t *testing.T) {
	db := memory.NewDatabase()
	db.Seed(sampleQuestions()[0])
	daily := app.NewDailyService(db.Questions(), db.Assignments(), db.Scores())
	ctx := context.Background()

	q, err := daily.Resolve(ctx, testDate)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	service := newAdminService(db)
	refs, err := service.References(ctx, q.ID)
	if err != nil {
		t.Fatalf("references: %v", err)
	}
	if refs.DailyAssignments != 1 || refs.CanDelete {
		t.Fatalf("unexpected references %+v", refs)
	}
	if err := service.Delete(ctx, q.ID); !errors.Is(err, domain.ErrQuestionReferenced) {
		t.Fatalf("expected ErrQuestionReferenced, got %v", err)
	}
}

func TestAdminCreateValidates(t *testing.T) {
	service := newAdminService(memory.NewDatabase())
	_, err := service.Create(context.Background(), domain.QuestionInput{QuestionText: "only text"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	db := memory.NewDatabase()
	qs := sampleQuestions()
	qs[2].IsActive = false
	db.Seed(qs...)
	scores := app.NewScoreService(db.Scores())
	ctx := context.Background()
	today := domain.Today(time.Now())
	if _, err := scores.Submit(ctx, "alice", today, submission(10, 100)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := scores.Submit(ctx, "bob", today, submission(15, 100)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := scores.Submit(ctx, "alice", "2000-01-01", submission(99, 100)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stats, err := newAdminService(db).Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalQuestions != 3 || stats.ActiveQuestions != 2 {
		t.Fatalf("unexpected question counts %+v", stats)
	}
	if stats.TotalUsers != 2 || stats.TotalScores != 3 || stats.TopScoreToday != 15 || stats.AvgScoreToday != 12.5 {
		t.Fatalf("unexpected score stats %+v", stats)
	}
}

func newAdminService(db *memory.Database) *app.AdminService {
	return app.NewAdminService(db.Questions(), db.Assignments(), db.Scores(), db.Scores())
}
