package memory

import (
	"context"
	"fmt"

	"daily-trivia-service/internal/domain"
)

// AssignmentStore implements app.AssignmentRepository with the date as a
// unique key.
type AssignmentStore struct {
	db *Database
}

func (s *AssignmentStore) QuestionFor(_ context.Context, date string) (domain.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	id, ok := s.db.assignments[date]
	if !ok {
		return domain.Question{}, domain.ErrAssignmentNotFound
	}
	q, ok := s.db.questions[id]
	if !ok {
		return domain.Question{}, fmt.Errorf("assignment %s references missing question %d", date, id)
	}
	return cloneQuestion(q), nil
}

func (s *AssignmentStore) Create(_ context.Context, a domain.DailyAssignment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.assignments[a.Date]; ok {
		return domain.ErrAssignmentExists
	}
	if _, ok := s.db.questions[a.QuestionID]; !ok {
		return fmt.Errorf("assign %s: %w", a.Date, domain.ErrQuestionNotFound)
	}
	s.db.assignments[a.Date] = a.QuestionID
	return nil
}

func (s *AssignmentStore) CountReferences(_ context.Context, questionID int64) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for _, id := range s.db.assignments {
		if id == questionID {
			n++
		}
	}
	return n, nil
}

// Count returns the number of assigned dates. It has no Postgres
// counterpart; tests use it to check how many rows a race produced.
func (s *AssignmentStore) Count() int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return len(s.db.assignments)
}
