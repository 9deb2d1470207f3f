package domain

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// score columns are 32-bit integers
	maxScore          = math.MaxInt32
	maxTotalQuestions = 100
	maxResponseTimeMS = 10 * 60 * 1000
)

var (
	usernamePattern = regexp.MustCompile(`^[\x{0590}-\x{05FF}a-zA-Z0-9_\-\s]+$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateUsername trims the name and checks length and charset.
func ValidateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", Invalid("Username is required")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < 2 {
		return "", Invalid("Username must be at least 2 characters long")
	}
	if n > 20 {
		return "", Invalid("Username must be no more than 20 characters long")
	}
	if !usernamePattern.MatchString(trimmed) {
		return "", Invalid("Username contains invalid characters")
	}
	return trimmed, nil
}

// ValidateScore checks the ranges of a submission.
func ValidateScore(s ScoreSubmission) error {
	switch {
	case s.Score < 0:
		return Invalid("Score cannot be negative")
	case s.CorrectAnswers < 0:
		return Invalid("Correct answers cannot be negative")
	case s.TotalQuestions <= 0:
		return Invalid("Total questions must be positive")
	case s.CorrectAnswers > s.TotalQuestions:
		return Invalid("Correct answers cannot exceed total questions")
	case s.ResponseTimeMS <= 0:
		return Invalid("Response time must be positive")
	case s.Score > maxScore:
		return Invalid("Score cannot exceed %d", maxScore)
	case s.TotalQuestions > maxTotalQuestions:
		return Invalid("Total questions cannot exceed %d", maxTotalQuestions)
	case s.ResponseTimeMS > maxResponseTimeMS:
		return Invalid("Response time cannot exceed 10 minutes")
	}
	return nil
}

// ValidateDate accepts YYYY-MM-DD dates within one year of now.
func ValidateDate(raw string, now time.Time) (string, error) {
	if !datePattern.MatchString(raw) {
		return "", Invalid("Date must be in YYYY-MM-DD format")
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", Invalid("Invalid date")
	}
	today := Today(now)
	t, _ := time.Parse(DateLayout, today)
	if d.Before(t.AddDate(-1, 0, 0)) || d.After(t.AddDate(1, 0, 0)) {
		return "", Invalid("Date must be within one year of current date")
	}
	return raw, nil
}

// Today formats the UTC calendar day of now.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// ValidateQuestion checks an admin payload and returns the normalized question.
func ValidateQuestion(in QuestionInput) (Question, error) {
	text := strings.TrimSpace(in.QuestionText)
	category := strings.ToLower(strings.TrimSpace(in.Category))
	difficulty := strings.ToLower(strings.TrimSpace(in.Difficulty))
	if text == "" || in.Answers == nil || in.CorrectAnswerIndex == nil || category == "" || difficulty == "" {
		return Question{}, Invalid("Missing required fields: questionText, answers, correctAnswerIndex, category, difficulty")
	}
	if len(in.Answers) != AnswerCount {
		return Question{}, Invalid("Answers must be an array of exactly %d strings", AnswerCount)
	}
	idx := *in.CorrectAnswerIndex
	if idx < 0 || idx > AnswerCount-1 {
		return Question{}, Invalid("correctAnswerIndex must be between 0 and %d", AnswerCount-1)
	}
	answers := make([]string, len(in.Answers))
	for i, a := range in.Answers {
		answers[i] = strings.TrimSpace(a)
		if answers[i] == "" {
			return Question{}, Invalid("All answers must be non-empty strings")
		}
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return Question{
		QuestionText:       text,
		Answers:            answers,
		CorrectAnswerIndex: idx,
		Category:           category,
		Difficulty:         difficulty,
		IsActive:           active,
	}, nil
}
