package cli

import (
	"context"
	"log"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/config"
	"daily-trivia-service/internal/domain"
	"daily-trivia-service/internal/infra/memory"
	"daily-trivia-service/internal/infra/postgres"
	redisinfra "daily-trivia-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// storage groups the repositories the services are built from.
type storage struct {
	questions   questionStore
	assignments app.AssignmentRepository
	refs        app.ReferenceCounter
	scores      app.ScoreRepository
	stats       app.ScoreStats
	close       func()
}

// questionStore is satisfied by both the bun and in-memory question stores.
type questionStore interface {
	app.QuestionBank
	app.QuestionSampler
}

// openStorage connects to Postgres when configured and falls back to a
// seeded in-memory database otherwise. Redis, when configured, caches
// resolved daily questions in front of either.
func openStorage(ctx context.Context, cfg config.Config) (*storage, error) {
	s := &storage{close: func() {}}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		db := openBun(cfg.Postgres.URL)
		assignments := postgres.NewAssignmentStore(pool)
		scores := postgres.NewScoreStore(pool)
		s.questions = postgres.NewQuestionStore(db)
		s.assignments, s.refs = assignments, assignments
		s.scores, s.stats = scores, scores
		s.close = func() {
			pool.Close()
			_ = db.Close()
		}
	} else {
		log.Printf("postgres not configured, using in-memory storage")
		db := memory.NewDatabase()
		db.Seed(sampleQuestions()...)
		assignments := db.Assignments()
		scores := db.Scores()
		s.questions = db.Questions()
		s.assignments, s.refs = assignments, assignments
		s.scores, s.stats = scores, scores
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Cache.DailyQuestionTTL, 10*time.Minute)
		s.assignments = redisinfra.NewAssignmentCache(client, s.assignments, ttl)
		closeStores := s.close
		s.close = func() {
			_ = client.Close()
			closeStores()
		}
	}
	return s, nil
}

// sampleQuestions seeds the in-memory bank; production deployments load the bank into Postgres with `seed`.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{QuestionText: "What is the largest planet in our solar system?", Answers: []string{"Earth", "Jupiter", "Saturn", "Neptune"}, CorrectAnswerIndex: 1, Category: "science", Difficulty: "easy", IsActive: true},
		{QuestionText: "Which element has the chemical symbol O?", Answers: []string{"Gold", "Osmium", "Oxygen", "Oganesson"}, CorrectAnswerIndex: 2, Category: "science", Difficulty: "easy", IsActive: true},
		{QuestionText: "What is the capital of Australia?", Answers: []string{"Sydney", "Melbourne", "Perth", "Canberra"}, CorrectAnswerIndex: 3, Category: "geography", Difficulty: "medium", IsActive: true},
		{QuestionText: "In which year did the Berlin Wall fall?", Answers: []string{"1989", "1991", "1985", "1979"}, CorrectAnswerIndex: 0, Category: "history", Difficulty: "medium", IsActive: true},
	}
}
