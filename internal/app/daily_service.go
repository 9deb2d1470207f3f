package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"daily-trivia-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DailyService resolves the question of the day. It keeps no state of its
// own: the unique date key in the assignment store elects the winner when
// several requests hit an unassigned date at once.
type DailyService struct {
	questions   QuestionSampler
	assignments AssignmentRepository
	scores      ScoreRepository
}

func NewDailyService(questions QuestionSampler, assignments AssignmentRepository, scores ScoreRepository) *DailyService {
	return &DailyService{questions: questions, assignments: assignments, scores: scores}
}

// Resolve returns the question assigned to date, assigning a random active
// question first if nobody has done so yet.
func (s *DailyService) Resolve(ctx context.Context, date string) (domain.Question, error) {
	q, err := s.assignments.QuestionFor(ctx, date)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, domain.ErrAssignmentNotFound) {
		return domain.Question{}, fmt.Errorf("lookup daily assignment: %w", err)
	}

	pick, err := s.questions.RandomActive(ctx)
	if err != nil {
		return domain.Question{}, err
	}

	err = s.assignments.Create(ctx, domain.DailyAssignment{Date: date, QuestionID: pick.ID})
	if err == nil {
		return pick, nil
	}
	if !errors.Is(err, domain.ErrAssignmentExists) {
		return domain.Question{}, fmt.Errorf("create daily assignment: %w", err)
	}

	// Lost the race: the winner's row is authoritative.
	log.Printf("daily question for %s assigned concurrently, discarding pick %d", date, pick.ID)
	winner, err := s.assignments.QuestionFor(ctx, date)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%w: %v", domain.ErrResolutionFailed, err)
	}
	return winner, nil
}

// Today resolves the question for date and attaches the participant count.
func (s *DailyService) Today(ctx context.Context, date string) (domain.DailyQuestion, error) {
	var (
		q     domain.Question
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		q, err = s.Resolve(gctx, date)
		return err
	})
	g.Go(func() error {
		n, err := s.scores.CountByDate(gctx, date)
		if err != nil {
			log.Printf("count participants for %s: %v", date, err)
			return nil
		}
		count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.DailyQuestion{}, err
	}

	return domain.DailyQuestion{
		ID:                 q.ID,
		Date:               date,
		Question:           q.QuestionText,
		Answers:            q.Answers,
		CorrectAnswerIndex: q.CorrectAnswerIndex,
		Category:           q.Category,
		Difficulty:         q.Difficulty,
		ParticipantsCount:  count,
	}, nil
}
