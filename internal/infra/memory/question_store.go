package memory

import (
	"context"
	"sort"
	"strings"

	"daily-trivia-service/internal/domain"
)

// QuestionStore implements app.QuestionBank and app.QuestionSampler.
type QuestionStore struct {
	db *Database
}

func (s *QuestionStore) RandomActive(_ context.Context) (domain.Question, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ids := make([]int64, 0, len(s.db.questions))
	for id, q := range s.db.questions {
		if q.IsActive {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return domain.Question{}, domain.ErrNoQuestionsAvailable
	}
	// map order is random but not uniform; sort then draw.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return cloneQuestion(s.db.questions[ids[s.db.rnd.Intn(len(ids))]]), nil
}

func (s *QuestionStore) List(_ context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	search := strings.ToLower(f.Search)
	matched := make([]domain.Question, 0)
	for _, q := range s.db.questions {
		if search != "" && !strings.Contains(strings.ToLower(q.QuestionText), search) {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && q.Difficulty != f.Difficulty {
			continue
		}
		if f.Active != nil && q.IsActive != *f.Active {
			continue
		}
		matched = append(matched, cloneQuestion(q))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if f.Offset >= len(matched) {
		return []domain.Question{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (s *QuestionStore) Get(_ context.Context, id int64) (domain.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	q, ok := s.db.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return cloneQuestion(q), nil
}

func (s *QuestionStore) Create(_ context.Context, q domain.Question) (domain.Question, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	q.CreatedAt = s.db.clock().UTC()
	return cloneQuestion(s.db.insertQuestionLocked(q)), nil
}

func (s *QuestionStore) Update(_ context.Context, q domain.Question) (domain.Question, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	current, ok := s.db.questions[q.ID]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	q.CreatedAt = current.CreatedAt
	q.Answers = append([]string(nil), q.Answers...)
	s.db.questions[q.ID] = q
	return cloneQuestion(q), nil
}

func (s *QuestionStore) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	for _, qid := range s.db.assignments {
		if qid == id {
			return domain.ErrQuestionReferenced
		}
	}
	delete(s.db.questions, id)
	return nil
}

func (s *QuestionStore) Counts(_ context.Context) (int, int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	active := 0
	for _, q := range s.db.questions {
		if q.IsActive {
			active++
		}
	}
	return len(s.db.questions), active, nil
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Answers = append([]string(nil), q.Answers...)
	return q
}
