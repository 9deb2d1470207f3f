package domain

import "time"

// DateLayout is the calendar-day format used for assignment and score keys.
const DateLayout = "2006-01-02"

// AnswerCount is the number of candidate answers every question carries.
const AnswerCount = 4

// Question is a single entry of the question bank.
type Question struct {
	ID                 int64     `json:"id" yaml:"-"`
	QuestionText       string    `json:"questionText" yaml:"questionText"`
	Answers            []string  `json:"answers" yaml:"answers"`
	CorrectAnswerIndex int       `json:"correctAnswerIndex" yaml:"correctAnswerIndex"`
	Category           string    `json:"category" yaml:"category"`
	Difficulty         string    `json:"difficulty" yaml:"difficulty"`
	IsActive           bool      `json:"isActive" yaml:"isActive"`
	CreatedAt          time.Time `json:"createdAt" yaml:"-"`
}

// DailyAssignment binds a calendar date to the question chosen for it.
type DailyAssignment struct {
	Date       string
	QuestionID int64
}

// DailyQuestion is the public view of the question of the day.
type DailyQuestion struct {
	ID                 int64    `json:"id"`
	Date               string   `json:"date"`
	Question           string   `json:"question"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Category           string   `json:"category"`
	Difficulty         string   `json:"difficulty"`
	ParticipantsCount  int      `json:"participants_count"`
}

// ScoreSubmission is a candidate score sent by a player.
type ScoreSubmission struct {
	Score          int
	CorrectAnswers int
	TotalQuestions int
	ResponseTimeMS int
}

// ScoreRecord is the best score a user reached on a given date.
type ScoreRecord struct {
	Username       string
	Date           string
	Score          int
	CorrectAnswers int
	TotalQuestions int
	ResponseTimeMS int
	SubmittedAt    time.Time
}

// SubmitResult summarizes what the ledger did with a submission.
type SubmitResult struct {
	Accepted       bool
	IsFirst        bool
	EffectiveScore int
}

// LeaderboardEntry is one ranked row of a daily leaderboard.
type LeaderboardEntry struct {
	Rank               int       `json:"rank"`
	Username           string    `json:"username"`
	Score              int       `json:"score"`
	CorrectAnswers     int       `json:"correct_answers"`
	TotalQuestions     int       `json:"total_questions"`
	AccuracyPercentage float64   `json:"accuracy_percentage"`
	ResponseTimeMS     int       `json:"response_time_ms"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// LeaderboardStats aggregates the scores of a single date.
type LeaderboardStats struct {
	TotalParticipants int       `json:"total_participants"`
	AverageScore      float64   `json:"average_score"`
	HighestScore      int       `json:"highest_score"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Leaderboard captures the ordered scoreboard for a date.
type Leaderboard struct {
	Date       string             `json:"date"`
	Entries    []LeaderboardEntry `json:"leaderboard"`
	Statistics LeaderboardStats   `json:"statistics"`
}

// QuestionFilter narrows admin listings. Nil Active means both states.
type QuestionFilter struct {
	Search     string
	Category   string
	Difficulty string
	Active     *bool
	Limit      int
	Offset     int
}

// QuestionInput is an admin create/update payload before validation.
// Pointer fields distinguish "missing" from zero values.
type QuestionInput struct {
	QuestionText       string   `json:"questionText" yaml:"questionText"`
	Answers            []string `json:"answers" yaml:"answers"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex" yaml:"correctAnswerIndex"`
	Category           string   `json:"category" yaml:"category"`
	Difficulty         string   `json:"difficulty" yaml:"difficulty"`
	IsActive           *bool    `json:"isActive" yaml:"isActive"`
}

// BankStats is the admin dashboard summary.
type BankStats struct {
	TotalQuestions  int       `json:"totalQuestions"`
	ActiveQuestions int       `json:"activeQuestions"`
	TotalUsers      int       `json:"totalUsers"`
	TotalScores     int       `json:"totalScores"`
	AvgScoreToday   float64   `json:"avgScoreToday"`
	TopScoreToday   int       `json:"topScoreToday"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// QuestionReferences reports what still points at a question.
type QuestionReferences struct {
	QuestionID       int64 `json:"questionId"`
	DailyAssignments int   `json:"dailyAssignments"`
	CanDelete        bool  `json:"canDelete"`
}
