package memory

import (
	"math/rand"
	"sync"
	"time"

	"daily-trivia-service/internal/domain"
)

// Database is an in-process stand-in for the Postgres schema. One mutex
// guards all tables so the primary key, unique and foreign key checks are
// atomic with the writes they protect.
type Database struct {
	mu          sync.RWMutex
	clock       func() time.Time
	rnd         *rand.Rand
	nextID      int64
	questions   map[int64]domain.Question
	assignments map[string]int64
	scores      map[scoreKey]domain.ScoreRecord
}

type scoreKey struct {
	username string
	date     string
}

func NewDatabase() *Database {
	return NewDatabaseWithClock(time.Now)
}

// NewDatabaseWithClock allows deterministic created_at values in tests.
func NewDatabaseWithClock(now func() time.Time) *Database {
	return &Database{
		clock:       now,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		questions:   make(map[int64]domain.Question),
		assignments: make(map[string]int64),
		scores:      make(map[scoreKey]domain.ScoreRecord),
	}
}

// Questions returns the question bank view of the database.
func (d *Database) Questions() *QuestionStore {
	return &QuestionStore{db: d}
}

// Assignments returns the daily assignment view of the database.
func (d *Database) Assignments() *AssignmentStore {
	return &AssignmentStore{db: d}
}

// Scores returns the score ledger view of the database.
func (d *Database) Scores() *ScoreStore {
	return &ScoreStore{db: d}
}

// Seed inserts questions as-is, assigning ids and timestamps.
func (d *Database) Seed(questions ...domain.Question) []domain.Question {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, d.insertQuestionLocked(q))
	}
	return out
}

func (d *Database) insertQuestionLocked(q domain.Question) domain.Question {
	d.nextID++
	q.ID = d.nextID
	q.Answers = append([]string(nil), q.Answers...)
	if q.CreatedAt.IsZero() {
		q.CreatedAt = d.clock().UTC()
	}
	d.questions[q.ID] = q
	return q
}
