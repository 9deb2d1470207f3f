package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-trivia-service/internal/domain"
)

// ScoreService applies the monotonic high-score rule: a (username, date)
// record only ever moves to a strictly higher score.
type ScoreService struct {
	scores ScoreRepository
	now    func() time.Time
}

func NewScoreService(scores ScoreRepository) *ScoreService {
	return NewScoreServiceWithClock(scores, time.Now)
}

// NewScoreServiceWithClock allows deterministic submission timestamps in tests.
func NewScoreServiceWithClock(scores ScoreRepository, now func() time.Time) *ScoreService {
	return &ScoreService{scores: scores, now: now}
}

// Submit validates the candidate and records it if it beats the stored best.
func (s *ScoreService) Submit(ctx context.Context, username, date string, sub domain.ScoreSubmission) (domain.SubmitResult, error) {
	name, err := domain.ValidateUsername(username)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if err := domain.ValidateScore(sub); err != nil {
		return domain.SubmitResult{}, err
	}

	record := domain.ScoreRecord{
		Username:       name,
		Date:           date,
		Score:          sub.Score,
		CorrectAnswers: sub.CorrectAnswers,
		TotalQuestions: sub.TotalQuestions,
		ResponseTimeMS: sub.ResponseTimeMS,
		SubmittedAt:    s.now().UTC(),
	}

	existing, err := s.scores.Get(ctx, name, date)
	switch {
	case errors.Is(err, domain.ErrScoreNotFound):
		err = s.scores.Insert(ctx, record)
		if err == nil {
			return domain.SubmitResult{Accepted: true, IsFirst: true, EffectiveScore: record.Score}, nil
		}
		if !errors.Is(err, domain.ErrScoreExists) {
			return domain.SubmitResult{}, fmt.Errorf("insert score: %w", err)
		}
		// A concurrent first submission got there first; compete on score instead.
		return s.improve(ctx, record)
	case err != nil:
		return domain.SubmitResult{}, fmt.Errorf("load score: %w", err)
	}

	if record.Score <= existing.Score {
		return domain.SubmitResult{Accepted: false, EffectiveScore: existing.Score}, nil
	}
	return s.improve(ctx, record)
}

func (s *ScoreService) improve(ctx context.Context, record domain.ScoreRecord) (domain.SubmitResult, error) {
	updated, err := s.scores.UpdateIfHigher(ctx, record)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("update score: %w", err)
	}
	if updated {
		return domain.SubmitResult{Accepted: true, EffectiveScore: record.Score}, nil
	}
	current, err := s.scores.Get(ctx, record.Username, record.Date)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("reload score: %w", err)
	}
	return domain.SubmitResult{Accepted: false, EffectiveScore: current.Score}, nil
}
