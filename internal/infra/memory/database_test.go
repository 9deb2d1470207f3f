package memory

import (
	"context"
	"testing"

	"daily-trivia-service/internal/domain"
)

func TestAssignmentDateIsUnique(t *testing.T) {
	db := NewDatabase()
	seeded := db.Seed(sampleQuestion("a"), sampleQuestion("b"))
	store := db.Assignments()
	ctx := context.Background()

	if err := store.Create(ctx, domain.DailyAssignment{Date: "2026-10-15", QuestionID: seeded[0].ID}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := store.Create(ctx, domain.DailyAssignment{Date: "2026-10-15", QuestionID: seeded[1].ID})
	if err != domain.ErrAssignmentExists {
		t.Fatalf("expected ErrAssignmentExists, got %v", err)
	}

	q, err := store.QuestionFor(ctx, "2026-10-15")
	if err != nil {
		t.Fatalf("question for: %v", err)
	}
	if q.ID != seeded[0].ID {
		t.Fatalf("expected first writer's question %d, got %d", seeded[0].ID, q.ID)
	}
	if n := store.Count(); n != 1 {
		t.Fatalf("expected one assigned date, got %d", n)
	}
}

func TestDeleteRefusedWhileReferenced(t *testing.T) {
	db := NewDatabase()
	seeded := db.Seed(sampleQuestion("a"), sampleQuestion("b"))
	ctx := context.Background()

	if err := db.Assignments().Create(ctx, domain.DailyAssignment{Date: "2026-10-15", QuestionID: seeded[0].ID}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Questions().Delete(ctx, seeded[0].ID); err != domain.ErrQuestionReferenced {
		t.Fatalf("expected ErrQuestionReferenced, got %v", err)
	}
	if err := db.Questions().Delete(ctx, seeded[1].ID); err != nil {
		t.Fatalf("delete unreferenced: %v", err)
	}
	if err := db.Questions().Delete(ctx, seeded[1].ID); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestRandomActiveSkipsInactive(t *testing.T) {
	db := NewDatabase()
	inactive := sampleQuestion("off")
	inactive.IsActive = false
	db.Seed(inactive)

	if _, err := db.Questions().RandomActive(context.Background()); err != domain.ErrNoQuestionsAvailable {
		t.Fatalf("expected ErrNoQuestionsAvailable, got %v", err)
	}

	active := db.Seed(sampleQuestion("on"))[0]
	for i := 0; i < 20; i++ {
		q, err := db.Questions().RandomActive(context.Background())
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		if q.ID != active.ID {
			t.Fatalf("expected only active question %d, got %d", active.ID, q.ID)
		}
	}
}

func TestUpdateIfHigherIsStrict(t *testing.T) {
	scores := NewDatabase().Scores()
	ctx := context.Background()
	rec := domain.ScoreRecord{Username: "alice", Date: "2026-10-15", Score: 10, CorrectAnswers: 1, TotalQuestions: 1, ResponseTimeMS: 100}

	if err := scores.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := scores.Insert(ctx, rec); err != domain.ErrScoreExists {
		t.Fatalf("expected ErrScoreExists, got %v", err)
	}
	if ok, _ := scores.UpdateIfHigher(ctx, rec); ok {
		t.Fatalf("equal score must not overwrite")
	}
	rec.Score = 11
	if ok, _ := scores.UpdateIfHigher(ctx, rec); !ok {
		t.Fatalf("higher score must overwrite")
	}
	got, _ := scores.Get(ctx, "alice", "2026-10-15")
	if got.Score != 11 {
		t.Fatalf("expected 11, got %d", got.Score)
	}
}

func TestListFilters(t *testing.T) {
	db := NewDatabase()
	geo := sampleQuestion("Capital of Peru")
	geo.Category = "geography"
	off := sampleQuestion("Largest planet")
	off.IsActive = false
	db.Seed(geo, off, sampleQuestion("Boiling point"))

	active := false
	got, err := db.Questions().List(context.Background(), domain.QuestionFilter{Active: &active})
	if err != nil || len(got) != 1 || got[0].QuestionText != "Largest planet" {
		t.Fatalf("expected inactive only, got %+v (%v)", got, err)
	}
	got, _ = db.Questions().List(context.Background(), domain.QuestionFilter{Search: "peru"})
	if len(got) != 1 || got[0].Category != "geography" {
		t.Fatalf("expected search hit, got %+v", got)
	}
	got, _ = db.Questions().List(context.Background(), domain.QuestionFilter{Offset: 1, Limit: 1})
	if len(got) != 1 {
		t.Fatalf("expected one paged result, got %d", len(got))
	}
}

func sampleQuestion(text string) domain.Question {
	return domain.Question{
		QuestionText:       text,
		Answers:            []string{"a", "b", "c", "d"},
		CorrectAnswerIndex: 1,
		Category:           "general",
		Difficulty:         "easy",
		IsActive:           true,
	}
}
