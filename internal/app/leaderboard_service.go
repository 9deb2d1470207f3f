package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"daily-trivia-service/internal/domain"
)

// LeaderboardService projects the score ledger into a ranked view.
type LeaderboardService struct {
	scores ScoreRepository
	now    func() time.Time
}

func NewLeaderboardService(scores ScoreRepository) *LeaderboardService {
	return &LeaderboardService{scores: scores, now: time.Now}
}

// Leaderboard ranks every record of date. Score desc, then faster response,
// then earlier submission, then username.
func (s *LeaderboardService) Leaderboard(ctx context.Context, date string) (domain.Leaderboard, error) {
	records, err := s.scores.ListByDate(ctx, date)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("list scores: %w", err)
	}
	return project(date, records, s.now().UTC()), nil
}

func project(date string, records []domain.ScoreRecord, now time.Time) domain.Leaderboard {
	sorted := make([]domain.ScoreRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ResponseTimeMS != b.ResponseTimeMS {
			return a.ResponseTimeMS < b.ResponseTimeMS
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.Username < b.Username
	})

	entries := make([]domain.LeaderboardEntry, 0, len(sorted))
	total, highest := 0, 0
	for i, r := range sorted {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:               i + 1,
			Username:           r.Username,
			Score:              r.Score,
			CorrectAnswers:     r.CorrectAnswers,
			TotalQuestions:     r.TotalQuestions,
			AccuracyPercentage: accuracy(r.CorrectAnswers, r.TotalQuestions),
			ResponseTimeMS:     r.ResponseTimeMS,
			SubmittedAt:        r.SubmittedAt,
		})
		total += r.Score
		if r.Score > highest {
			highest = r.Score
		}
	}

	stats := domain.LeaderboardStats{UpdatedAt: now}
	if n := len(sorted); n > 0 {
		stats.TotalParticipants = n
		stats.AverageScore = roundTo(float64(total)/float64(n), 2)
		stats.HighestScore = highest
	}
	return domain.Leaderboard{Date: date, Entries: entries, Statistics: stats}
}

func accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return roundTo(float64(correct)/float64(total)*100, 1)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
