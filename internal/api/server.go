package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Waseeq28/recalibration-app/internal/analyzer"
	"github.com/Waseeq28/recalibration-app/internal/conversation"
)

// TurnStore loads stored journal turns for the reference-based analysis
// routes.
type TurnStore interface {
	TurnsForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]conversation.Turn, error)
	TurnsForConversation(ctx context.Context, conversationID uuid.UUID) ([]conversation.Turn, error)
}

type Server struct {
	router   *chi.Mux
	port     int
	analyzer *analyzer.Analyzer
	store    TurnStore
}

// AnalysisRequest is the payload for transcript-bearing routes.
type AnalysisRequest struct {
	Turns []conversation.Turn `json:"turns"`
}

// ContextResponse carries the conversation metrics and, when the
// transcript is thin, suggestions for enriching it.
type ContextResponse struct {
	Context     conversation.Context `json:"context"`
	Suggestions []string             `json:"suggestions"`
}

// DayAnalysisRequest identifies whose stored turns to analyze.
type DayAnalysisRequest struct {
	UserID string `json:"user_id"`
}

func NewServer(port int, apiToken string, an *analyzer.Analyzer, db TurnStore) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		analyzer: an,
		store:    db,
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Get("/insight/status", s.status)
		r.Post("/analysis", s.analyze)
		r.Post("/analysis/context", s.analysisContext)
		r.Delete("/analysis", s.clear)
		r.Post("/days/{day}/analysis", s.analyzeDay)
		r.Post("/conversations/{conversationID}/analysis", s.analyzeConversation)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// BearerAuthMiddleware rejects requests without the expected bearer
// token. An empty token disables the check for local development.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != token {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	snap := s.analyzer.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"service":     "insight",
		"isAnalyzing": snap.Analyzing,
		"hasProfile":  snap.Profile != nil,
		"error":       snap.Err,
	})
}

// analyze handles POST /api/v1/analysis
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"invalid JSON: %v"}`, err), http.StatusBadRequest)
		return
	}

	s.runAnalysis(r.Context(), w, req.Turns)
}

// analysisContext handles POST /api/v1/analysis/context
func (s *Server) analysisContext(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"invalid JSON: %v"}`, err), http.StatusBadRequest)
		return
	}

	prepared := conversation.Prepare(req.Turns)
	resp := ContextResponse{
		Context:     conversation.Metrics(prepared),
		Suggestions: conversation.Suggestions(prepared),
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// clear handles DELETE /api/v1/analysis
func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	s.analyzer.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// analyzeDay handles POST /api/v1/days/{day}/analysis
func (s *Server) analyzeDay(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"journal store not configured"}`, http.StatusServiceUnavailable)
		return
	}

	var req DayAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"invalid JSON: %v"}`, err), http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, `{"error":"invalid user_id"}`, http.StatusBadRequest)
		return
	}

	day, err := time.Parse("2006-01-02", chi.URLParam(r, "day"))
	if err != nil {
		http.Error(w, `{"error":"invalid day, want YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	turns, err := s.store.TurnsForDay(r.Context(), userID, day)
	if err != nil {
		slog.Error("failed to load turns for day", "user_id", userID, "day", day, "error", err)
		http.Error(w, `{"error":"failed to load journal turns"}`, http.StatusInternalServerError)
		return
	}

	s.runAnalysis(r.Context(), w, turns)
}

// analyzeConversation handles POST /api/v1/conversations/{conversationID}/analysis
func (s *Server) analyzeConversation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"journal store not configured"}`, http.StatusServiceUnavailable)
		return
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		http.Error(w, `{"error":"invalid conversation id"}`, http.StatusBadRequest)
		return
	}

	turns, err := s.store.TurnsForConversation(r.Context(), conversationID)
	if err != nil {
		slog.Error("failed to load turns for conversation", "conversation_id", conversationID, "error", err)
		http.Error(w, `{"error":"failed to load journal turns"}`, http.StatusInternalServerError)
		return
	}

	s.runAnalysis(r.Context(), w, turns)
}

func (s *Server) runAnalysis(ctx context.Context, w http.ResponseWriter, turns []conversation.Turn) {
	result, err := s.analyzer.Analyze(ctx, turns)
	if err != nil {
		var gateErr *analyzer.GateError
		if errors.As(err, &gateErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":      gateErr.Reason,
				"suggestion": gateErr.Suggestion,
			})
			return
		}
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
