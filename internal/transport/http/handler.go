package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"daily-trivia-service/internal/app"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handler exposes the game and admin use cases over JSON HTTP.
type Handler struct {
	daily       *app.DailyService
	scores      *app.ScoreService
	leaderboard *app.LeaderboardService
	admin       *app.AdminService
	now         func() time.Time
}

func NewHandler(daily *app.DailyService, scores *app.ScoreService, leaderboard *app.LeaderboardService, admin *app.AdminService) *Handler {
	return &Handler{
		daily:       daily,
		scores:      scores,
		leaderboard: leaderboard,
		admin:       admin,
		now:         time.Now,
	}
}

// NewHandlerWithClock is test-only for pinning "today".
func NewHandlerWithClock(daily *app.DailyService, scores *app.ScoreService, leaderboard *app.LeaderboardService, admin *app.AdminService, now func() time.Time) *Handler {
	h := NewHandler(daily, scores, leaderboard, admin)
	h.now = now
	return h
}

// Routes builds the router with permissive CORS in front of it.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(notFound)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/daily-question", h.DailyQuestion).Methods(http.MethodGet)
	api.HandleFunc("/submit-score", h.SubmitScore).Methods(http.MethodPost)
	api.HandleFunc("/daily-leaderboard", h.DailyLeaderboard).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/questions", h.ListQuestions).Methods(http.MethodGet)
	admin.HandleFunc("/questions", h.CreateQuestion).Methods(http.MethodPost)
	admin.HandleFunc("/questions/{id}", h.GetQuestion).Methods(http.MethodGet)
	admin.HandleFunc("/questions/{id}", h.UpdateQuestion).Methods(http.MethodPut)
	admin.HandleFunc("/questions/{id}", h.DeleteQuestion).Methods(http.MethodDelete)
	admin.HandleFunc("/questions/{id}/references", h.QuestionReferences).Methods(http.MethodGet)
	admin.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
