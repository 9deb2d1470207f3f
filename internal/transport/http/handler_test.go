package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
	"daily-trivia-service/internal/infra/memory"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func TestDailyQuestionIsStable(t *testing.T) {
	server := newTestServer(sampleQuestions()...)
	defer server.Close()

	var first, second domain.DailyQuestion
	getJSON(t, server.URL+"/api/daily-question", http.StatusOK, &first)
	getJSON(t, server.URL+"/api/daily-question?date=2026-10-15", http.StatusOK, &second)

	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("expected the same question, got %d and %d", first.ID, second.ID)
	}
	if first.Date != "2026-10-15" || len(first.Answers) != 4 {
		t.Fatalf("unexpected payload %+v", first)
	}
}

func TestDailyQuestionEmptyPool(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body errorBody
	getJSON(t, server.URL+"/api/daily-question", http.StatusNotFound, &body)
	if body.Error != "No questions available" {
		t.Fatalf("unexpected error %q", body.Error)
	}
}

func TestDailyQuestionRejectsBadDate(t *testing.T) {
	server := newTestServer(sampleQuestions()...)
	defer server.Close()

	var body errorBody
	getJSON(t, server.URL+"/api/daily-question?date=15-10-2026", http.StatusBadRequest, &body)
	if body.Error == "" {
		t.Fatalf("expected an error message")
	}
}

func TestSubmitScoreFlow(t *testing.T) {
	server := newTestServer(sampleQuestions()...)
	defer server.Close()

	first := postScore(t, server.URL, `{"username":"alice","score":40,"correct_answers":1,"total_questions":1,"response_time_ms":1200}`, http.StatusOK)
	if first["is_new_record"] != true || first["score"] != float64(40) || first["message"] != "Score saved successfully!" {
		t.Fatalf("unexpected first response %+v", first)
	}

	lower := postScore(t, server.URL, `{"username":"alice","score":10,"correct_answers":1,"total_questions":1,"response_time_ms":900}`, http.StatusOK)
	if lower["is_new_record"] != false || lower["current_high_score"] != float64(40) {
		t.Fatalf("unexpected lower response %+v", lower)
	}
	if _, ok := lower["score"]; ok {
		t.Fatalf("rejected submission must not echo score: %+v", lower)
	}

	higher := postScore(t, server.URL, `{"username":"alice","score":50,"correct_answers":1,"total_questions":1,"response_time_ms":900}`, http.StatusOK)
	if higher["is_new_record"] != true || higher["message"] != "New high score saved!" {
		t.Fatalf("unexpected higher response %+v", higher)
	}

	var lb domain.Leaderboard
	getJSON(t, server.URL+"/api/daily-leaderboard", http.StatusOK, &lb)
	if len(lb.Entries) != 1 || lb.Entries[0].Score != 50 || lb.Entries[0].Rank != 1 {
		t.Fatalf("unexpected leaderboard %+v", lb)
	}

	var daily domain.DailyQuestion
	getJSON(t, server.URL+"/api/daily-question", http.StatusOK, &daily)
	if daily.ParticipantsCount != 1 {
		t.Fatalf("expected one participant, got %d", daily.ParticipantsCount)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	server := newTestServer(sampleQuestions()...)
	defer server.Close()

	cases := map[string]string{
		"too many correct": `{"username":"alice","score":1,"correct_answers":5,"total_questions":4,"response_time_ms":100}`,
		"negative score":   `{"username":"alice","score":-1,"correct_answers":1,"total_questions":4,"response_time_ms":100}`,
		"missing field":    `{"username":"alice","score":1,"correct_answers":1}`,
		"string score":     `{"username":"alice","score":"10","correct_answers":1,"total_questions":4,"response_time_ms":100}`,
		"bad username":     `{"username":"x","score":1,"correct_answers":1,"total_questions":4,"response_time_ms":100}`,
		"score overflow":   `{"username":"alice","score":3000000000,"correct_answers":1,"total_questions":4,"response_time_ms":100}`,
	}
	for name, body := range cases {
		resp := postScore(t, server.URL, body, http.StatusBadRequest)
		if resp["error"] == "" || resp["error"] == nil {
			t.Fatalf("%s: expected error message, got %+v", name, resp)
		}
	}

	var lb domain.Leaderboard
	getJSON(t, server.URL+"/api/daily-leaderboard", http.StatusOK, &lb)
	if len(lb.Entries) != 0 {
		t.Fatalf("rejected submissions must not be stored, got %+v", lb.Entries)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/daily-leaderboard?date=2026-10-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	entries, ok := raw["leaderboard"].([]any)
	if !ok || len(entries) != 0 {
		t.Fatalf("expected empty leaderboard array, got %#v", raw["leaderboard"])
	}
	stats := raw["statistics"].(map[string]any)
	if stats["total_participants"] != float64(0) || stats["average_score"] != float64(0) || stats["highest_score"] != float64(0) {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestMethodNotAllowedAndCORS(t *testing.T) {
	server := newTestServer(sampleQuestions()...)
	defer server.Close()

	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/api/daily-question", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodGet, server.URL+"/api/daily-question", nil)
	req.Header.Set("Origin", "https://example.org")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS, got %q", got)
	}
}

func TestAdminDeleteReferencedQuestion(t *testing.T) {
	server := newTestServer(sampleQuestions()[0])
	defer server.Close()

	var daily domain.DailyQuestion
	getJSON(t, server.URL+"/api/daily-question", http.StatusOK, &daily)

	url := server.URL + "/api/admin/questions/" + strconv.FormatInt(daily.ID, 10)
	req, _ := http.NewRequest(http.MethodDelete, url, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	defer resp.Body.Close()
	var body adminResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest || body.Success || body.Message != questionReferencedMessage {
		t.Fatalf("expected conflict message, got %d %+v", resp.StatusCode, body)
	}
}

func TestAdminCreateAndList(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	payload := `{"questionText":"Fastest land animal?","answers":["Cheetah","Lion","Horse","Hare"],"correctAnswerIndex":0,"category":"Nature","difficulty":"Easy"}`
	resp, err := http.Post(server.URL+"/api/admin/questions", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	var created adminResponse
	_ = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || created.Data == nil || created.Data.Category != "nature" {
		t.Fatalf("unexpected create response %d %+v", resp.StatusCode, created)
	}

	var list []domain.Question
	getJSON(t, server.URL+"/api/admin/questions?category=nature&active=true", http.StatusOK, &list)
	if len(list) != 1 || list[0].ID != created.Data.ID {
		t.Fatalf("expected created question in list, got %+v", list)
	}

	bad := `{"questionText":"x","answers":["a","b"],"correctAnswerIndex":0,"category":"c","difficulty":"d"}`
	resp, err = http.Post(server.URL+"/api/admin/questions", "application/json", strings.NewReader(bad))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for two answers, got %d", resp.StatusCode)
	}

	var badFilter adminResponse
	getJSON(t, server.URL+"/api/admin/questions?active=yes", http.StatusBadRequest, &badFilter)
	if badFilter.Success || badFilter.Message == "" {
		t.Fatalf("expected rejected active filter, got %+v", badFilter)
	}
	var inactive []domain.Question
	getJSON(t, server.URL+"/api/admin/questions?active=false", http.StatusOK, &inactive)
	if len(inactive) != 0 {
		t.Fatalf("expected no inactive questions, got %+v", inactive)
	}

	var missing adminResponse
	getJSON(t, server.URL+"/api/admin/questions/9999", http.StatusNotFound, &missing)
	getJSON(t, server.URL+"/api/admin/questions/abc", http.StatusBadRequest, &missing)
}

func newTestServer(questions ...domain.Question) *httptest.Server {
	db := memory.NewDatabase()
	db.Seed(questions...)
	clock := func() time.Time { return fixedNow }
	handler := NewHandlerWithClock(
		app.NewDailyService(db.Questions(), db.Assignments(), db.Scores()),
		app.NewScoreServiceWithClock(db.Scores(), clock),
		app.NewLeaderboardService(db.Scores()),
		app.NewAdminService(db.Questions(), db.Assignments(), db.Scores(), db.Scores()),
		clock,
	)
	return httptest.NewServer(handler.Routes())
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("get %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func postScore(t *testing.T, base, body string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := http.Post(base+"/api/submit-score", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("post %s: expected status %d, got %d", body, wantStatus, resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{QuestionText: "What is 2 + 2?", Answers: []string{"3", "4", "5", "22"}, CorrectAnswerIndex: 1, Category: "math", Difficulty: "easy", IsActive: true},
		{QuestionText: "Capital of Japan?", Answers: []string{"Kyoto", "Osaka", "Tokyo", "Nara"}, CorrectAnswerIndex: 2, Category: "geography", Difficulty: "easy", IsActive: true},
	}
}
