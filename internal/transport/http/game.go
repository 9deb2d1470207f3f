package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"daily-trivia-service/internal/domain"
)

// DailyQuestion serves GET /api/daily-question?date=YYYY-MM-DD.
func (h *Handler) DailyQuestion(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	daily, err := h.daily.Today(r.Context(), date)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, daily)
	case errors.Is(err, domain.ErrNoQuestionsAvailable):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "No questions available"})
	case errors.Is(err, domain.ErrResolutionFailed):
		log.Printf("resolve daily question %s: %v", date, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to get daily question"})
	default:
		log.Printf("daily question %s: %v", date, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}

type submitScoreRequest struct {
	Username       *string `json:"username"`
	Score          *int    `json:"score"`
	CorrectAnswers *int    `json:"correct_answers"`
	TotalQuestions *int    `json:"total_questions"`
	ResponseTimeMS *int    `json:"response_time_ms"`
}

type submitScoreResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	IsNewRecord      bool   `json:"is_new_record"`
	Score            *int   `json:"score,omitempty"`
	CurrentHighScore *int   `json:"current_high_score,omitempty"`
}

// SubmitScore serves POST /api/submit-score for the current UTC day.
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Score data must be numbers"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Request body must be a JSON object"})
		return
	}
	if req.Username == nil || req.Score == nil || req.CorrectAnswers == nil || req.TotalQuestions == nil || req.ResponseTimeMS == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields"})
		return
	}

	res, err := h.scores.Submit(r.Context(), *req.Username, domain.Today(h.now()), domain.ScoreSubmission{
		Score:          *req.Score,
		CorrectAnswers: *req.CorrectAnswers,
		TotalQuestions: *req.TotalQuestions,
		ResponseTimeMS: *req.ResponseTimeMS,
	})
	if err != nil {
		var v *domain.ValidationError
		if errors.As(err, &v) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: v.Message})
			return
		}
		log.Printf("submit score: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}

	resp := submitScoreResponse{Success: true, IsNewRecord: res.Accepted}
	score := res.EffectiveScore
	switch {
	case res.IsFirst:
		resp.Message = "Score saved successfully!"
		resp.Score = &score
	case res.Accepted:
		resp.Message = "New high score saved!"
		resp.Score = &score
	default:
		resp.Message = "Score recorded, but not your highest today"
		resp.CurrentHighScore = &score
	}
	writeJSON(w, http.StatusOK, resp)
}

// DailyLeaderboard serves GET /api/daily-leaderboard?date=YYYY-MM-DD.
func (h *Handler) DailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	lb, err := h.leaderboard.Leaderboard(r.Context(), date)
	if err != nil {
		log.Printf("leaderboard %s: %v", date, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, lb)
}

// dateParam defaults to the current UTC day.
func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.Today(h.now()), true
	}
	date, err := domain.ValidateDate(raw, h.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return "", false
	}
	return date, true
}
