package app

import (
	"context"
	"fmt"
	"time"

	"daily-trivia-service/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// AdminService manages the question bank.
type AdminService struct {
	bank   QuestionBank
	refs   ReferenceCounter
	scores ScoreRepository
	stats  ScoreStats
	now    func() time.Time
}

func NewAdminService(bank QuestionBank, refs ReferenceCounter, scores ScoreRepository, stats ScoreStats) *AdminService {
	return &AdminService{bank: bank, refs: refs, scores: scores, stats: stats, now: time.Now}
}

func (s *AdminService) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.bank.List(ctx, filter)
}

func (s *AdminService) Get(ctx context.Context, id int64) (domain.Question, error) {
	return s.bank.Get(ctx, id)
}

func (s *AdminService) Create(ctx context.Context, in domain.QuestionInput) (domain.Question, error) {
	q, err := domain.ValidateQuestion(in)
	if err != nil {
		return domain.Question{}, err
	}
	return s.bank.Create(ctx, q)
}

// Update replaces every editable field of the question.
func (s *AdminService) Update(ctx context.Context, id int64, in domain.QuestionInput) (domain.Question, error) {
	q, err := domain.ValidateQuestion(in)
	if err != nil {
		return domain.Question{}, err
	}
	q.ID = id
	return s.bank.Update(ctx, q)
}

func (s *AdminService) Delete(ctx context.Context, id int64) error {
	return s.bank.Delete(ctx, id)
}

// References reports whether the question can be deleted.
func (s *AdminService) References(ctx context.Context, id int64) (domain.QuestionReferences, error) {
	n, err := s.refs.CountReferences(ctx, id)
	if err != nil {
		return domain.QuestionReferences{}, fmt.Errorf("count references: %w", err)
	}
	return domain.QuestionReferences{QuestionID: id, DailyAssignments: n, CanDelete: n == 0}, nil
}

// Stats summarizes the bank and today's scores.
func (s *AdminService) Stats(ctx context.Context) (domain.BankStats, error) {
	now := s.now().UTC()
	total, active, err := s.bank.Counts(ctx)
	if err != nil {
		return domain.BankStats{}, fmt.Errorf("count questions: %w", err)
	}
	players, err := s.stats.CountPlayers(ctx)
	if err != nil {
		return domain.BankStats{}, fmt.Errorf("count players: %w", err)
	}
	allScores, err := s.stats.CountAll(ctx)
	if err != nil {
		return domain.BankStats{}, fmt.Errorf("count scores: %w", err)
	}
	today, err := s.scores.ListByDate(ctx, domain.Today(now))
	if err != nil {
		return domain.BankStats{}, fmt.Errorf("list today's scores: %w", err)
	}
	lb := project(domain.Today(now), today, now)

	return domain.BankStats{
		TotalQuestions:  total,
		ActiveQuestions: active,
		TotalUsers:      players,
		TotalScores:     allScores,
		AvgScoreToday:   lb.Statistics.AverageScore,
		TopScoreToday:   lb.Statistics.HighestScore,
		LastUpdated:     now,
	}, nil
}
