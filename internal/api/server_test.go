package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Waseeq28/recalibration-app/internal/analyzer"
	"github.com/Waseeq28/recalibration-app/internal/cache"
	"github.com/Waseeq28/recalibration-app/internal/conversation"
	"github.com/Waseeq28/recalibration-app/internal/profile"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeExtractor struct{}

func (f *fakeExtractor) ExtractAll(ctx context.Context, turns []conversation.Turn) profile.RawFields {
	return profile.RawFields{
		ThemeSummary:       "Work pressure dominated the conversation today.",
		PrimaryEmotion:     "Anxiety about the upcoming deadline.",
		EmotionalIntensity: "Intensity level: 7. Manifestations: tense shoulders.",
		SelfCompassion:     "Spoke kindly about needing rest.",
		KeyChallenge:       "Balancing workload with personal time.",
		ActionPlan:         "Block out an hour for a walk tomorrow.",
		DailyWin:           "Finished the report despite the stress.",
	}
}

type fakeStore struct {
	turns []conversation.Turn
}

func (f *fakeStore) TurnsForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]conversation.Turn, error) {
	return f.turns, nil
}

func (f *fakeStore) TurnsForConversation(ctx context.Context, conversationID uuid.UUID) ([]conversation.Turn, error) {
	return f.turns, nil
}

func richTurns() []conversation.Turn {
	return []conversation.Turn{
		{ID: "1", Role: conversation.RoleUser, Content: "I have been feeling really anxious about work deadlines lately."},
		{ID: "2", Role: conversation.RoleAssistant, Content: "That sounds stressful. What part weighs on you most?"},
		{ID: "3", Role: conversation.RoleUser, Content: "Mostly the fear of letting my team down if I miss the date."},
		{ID: "4", Role: conversation.RoleAssistant, Content: "That fear makes sense given how much you care about them."},
	}
}

func testServer(t *testing.T, token string, db TurnStore) *Server {
	t.Helper()
	an := analyzer.New(&fakeExtractor{}, cache.New(discardLogger()), discardLogger())
	return NewServer(0, token, an, db)
}

func doJSON(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := testServer(t, "", nil)

	rec := doJSON(srv, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAnalyze_Success(t *testing.T) {
	srv := testServer(t, "", nil)

	body, _ := json.Marshal(AnalysisRequest{Turns: richTurns()})
	rec := doJSON(srv, http.MethodPost, "/api/v1/analysis", string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got profile.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ThemeSummary != "Work pressure dominated the conversation today." {
		t.Errorf("themeSummary = %q", got.ThemeSummary)
	}
	if got.EmotionalIntensity.Level != 7 {
		t.Errorf("intensity level = %d, want 7", got.EmotionalIntensity.Level)
	}
}

func TestAnalyze_GateRejection(t *testing.T) {
	srv := testServer(t, "", nil)

	body := `{"turns":[{"id":"1","role":"user","content":"hi"}]}`
	rec := doJSON(srv, http.MethodPost, "/api/v1/analysis", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != conversation.ReasonInsufficientData {
		t.Errorf("error = %q", resp["error"])
	}
	if resp["suggestion"] == "" {
		t.Error("expected a suggestion alongside the rejection")
	}
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	srv := testServer(t, "", nil)

	rec := doJSON(srv, http.MethodPost, "/api/v1/analysis", "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalysisContext(t *testing.T) {
	srv := testServer(t, "", nil)

	body, _ := json.Marshal(AnalysisRequest{Turns: richTurns()})
	rec := doJSON(srv, http.MethodPost, "/api/v1/analysis/context", string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ContextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Context.TurnCount != 4 {
		t.Errorf("turnCount = %d, want 4", resp.Context.TurnCount)
	}
	if !resp.Context.HasMultipleExchanges {
		t.Error("expected multiple exchanges")
	}
	if resp.Suggestions == nil {
		t.Error("suggestions should be an array, not null")
	}
}

func TestClear(t *testing.T) {
	srv := testServer(t, "", nil)

	body, _ := json.Marshal(AnalysisRequest{Turns: richTurns()})
	doJSON(srv, http.MethodPost, "/api/v1/analysis", string(body))

	rec := doJSON(srv, http.MethodDelete, "/api/v1/analysis", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	status := doJSON(srv, http.MethodGet, "/api/v1/insight/status", "")
	var snap map[string]any
	if err := json.Unmarshal(status.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if snap["hasProfile"] != false {
		t.Errorf("hasProfile = %v, want false after clear", snap["hasProfile"])
	}
}

func TestAnalyzeDay(t *testing.T) {
	srv := testServer(t, "", &fakeStore{turns: richTurns()})

	body := `{"user_id":"` + uuid.NewString() + `"}`
	rec := doJSON(srv, http.MethodPost, "/api/v1/days/2026-08-29/analysis", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeDay_BadDay(t *testing.T) {
	srv := testServer(t, "", &fakeStore{turns: richTurns()})

	body := `{"user_id":"` + uuid.NewString() + `"}`
	rec := doJSON(srv, http.MethodPost, "/api/v1/days/yesterday/analysis", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeConversation(t *testing.T) {
	srv := testServer(t, "", &fakeStore{turns: richTurns()})

	rec := doJSON(srv, http.MethodPost, "/api/v1/conversations/"+uuid.NewString()+"/analysis", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got profile.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.EmotionalIntensity.Level != 7 {
		t.Errorf("intensity level = %d, want 7", got.EmotionalIntensity.Level)
	}
}

func TestAnalyzeConversation_BadID(t *testing.T) {
	srv := testServer(t, "", &fakeStore{turns: richTurns()})

	rec := doJSON(srv, http.MethodPost, "/api/v1/conversations/not-a-uuid/analysis", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeConversation_NoStore(t *testing.T) {
	srv := testServer(t, "", nil)

	rec := doJSON(srv, http.MethodPost, "/api/v1/conversations/"+uuid.NewString()+"/analysis", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAnalyzeDay_NoStore(t *testing.T) {
	srv := testServer(t, "", nil)

	body := `{"user_id":"` + uuid.NewString() + `"}`
	rec := doJSON(srv, http.MethodPost, "/api/v1/days/2026-08-29/analysis", body)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	srv := testServer(t, "secret-token", nil)

	rec := doJSON(srv, http.MethodGet, "/api/v1/insight/status", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insight/status", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	authed := httptest.NewRecorder()
	srv.router.ServeHTTP(authed, req)
	if authed.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d, want 200", authed.Code)
	}

	health := doJSON(srv, http.MethodGet, "/health", "")
	if health.Code != http.StatusOK {
		t.Fatalf("health should not require auth, got %d", health.Code)
	}
}
