package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"daily-trivia-service/internal/domain"
	"github.com/gorilla/mux"
)

const questionReferencedMessage = "Cannot delete question because it is referenced by existing game data. Please delete related records first."

type adminResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *domain.Question `json:"data,omitempty"`
}

func adminError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, adminResponse{Success: false, Message: message})
}

// adminFail maps service errors onto admin responses.
func adminFail(w http.ResponseWriter, err error, action string) {
	var v *domain.ValidationError
	switch {
	case errors.As(err, &v):
		adminError(w, http.StatusBadRequest, v.Message)
	case errors.Is(err, domain.ErrQuestionNotFound):
		adminError(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, domain.ErrQuestionReferenced):
		adminError(w, http.StatusBadRequest, questionReferencedMessage)
	default:
		log.Printf("admin %s: %v", action, err)
		adminError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// ListQuestions serves GET /api/admin/questions with optional filters.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.QuestionFilter{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
	}
	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			adminError(w, http.StatusBadRequest, "active must be true or false")
			return
		}
		filter.Active = &active
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		adminError(w, http.StatusBadRequest, "limit must be a number")
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		adminError(w, http.StatusBadRequest, "offset must be a number")
		return
	}

	questions, err := h.admin.List(r.Context(), filter)
	if err != nil {
		log.Printf("admin list questions: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeQuestion(w, r)
	if !ok {
		return
	}
	created, err := h.admin.Create(r.Context(), in)
	if err != nil {
		adminFail(w, err, "create question")
		return
	}
	writeJSON(w, http.StatusCreated, adminResponse{Success: true, Message: "Question created successfully", Data: &created})
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := questionID(w, r)
	if !ok {
		return
	}
	q, err := h.admin.Get(r.Context(), id)
	if err != nil {
		adminFail(w, err, "fetch question")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := questionID(w, r)
	if !ok {
		return
	}
	in, ok := decodeQuestion(w, r)
	if !ok {
		return
	}
	updated, err := h.admin.Update(r.Context(), id, in)
	if err != nil {
		adminFail(w, err, "update question")
		return
	}
	writeJSON(w, http.StatusOK, adminResponse{Success: true, Message: "Question updated successfully", Data: &updated})
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := questionID(w, r)
	if !ok {
		return
	}
	if err := h.admin.Delete(r.Context(), id); err != nil {
		adminFail(w, err, "delete question")
		return
	}
	writeJSON(w, http.StatusOK, adminResponse{Success: true, Message: "Question deleted successfully"})
}

// QuestionReferences reports whether a question can be deleted.
func (h *Handler) QuestionReferences(w http.ResponseWriter, r *http.Request) {
	id, ok := questionID(w, r)
	if !ok {
		return
	}
	refs, err := h.admin.References(r.Context(), id)
	if err != nil {
		log.Printf("admin references %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		log.Printf("admin stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func decodeQuestion(w http.ResponseWriter, r *http.Request) (domain.QuestionInput, bool) {
	var in domain.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		adminError(w, http.StatusBadRequest, "Request body must be a valid question JSON object")
		return in, false
	}
	return in, true
}

func questionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		adminError(w, http.StatusBadRequest, "Valid question ID is required")
		return 0, false
	}
	return id, true
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
