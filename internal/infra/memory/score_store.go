package memory

import (
	"context"

	"daily-trivia-service/internal/domain"
)

// ScoreStore implements app.ScoreRepository and app.ScoreStats.
type ScoreStore struct {
	db *Database
}

func (s *ScoreStore) Get(_ context.Context, username, date string) (domain.ScoreRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, ok := s.db.scores[scoreKey{username, date}]
	if !ok {
		return domain.ScoreRecord{}, domain.ErrScoreNotFound
	}
	return r, nil
}

func (s *ScoreStore) Insert(_ context.Context, r domain.ScoreRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := scoreKey{r.Username, r.Date}
	if _, ok := s.db.scores[key]; ok {
		return domain.ErrScoreExists
	}
	s.db.scores[key] = r
	return nil
}

func (s *ScoreStore) UpdateIfHigher(_ context.Context, r domain.ScoreRecord) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := scoreKey{r.Username, r.Date}
	current, ok := s.db.scores[key]
	if !ok || r.Score <= current.Score {
		return false, nil
	}
	s.db.scores[key] = r
	return true, nil
}

func (s *ScoreStore) ListByDate(_ context.Context, date string) ([]domain.ScoreRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]domain.ScoreRecord, 0)
	for key, r := range s.db.scores {
		if key.date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *ScoreStore) CountByDate(_ context.Context, date string) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for key := range s.db.scores {
		if key.date == date {
			n++
		}
	}
	return n, nil
}

func (s *ScoreStore) CountAll(_ context.Context) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return len(s.db.scores), nil
}

func (s *ScoreStore) CountPlayers(_ context.Context) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	players := make(map[string]struct{})
	for key := range s.db.scores {
		players[key.username] = struct{}{}
	}
	return len(players), nil
}
