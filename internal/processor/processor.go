// Package processor glues the bus, the message store, and the analyzer
// together: a completed chat session comes in as an event, its turns are
// fetched and analyzed, and the resulting profile goes back out as an
// event.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Waseeq28/recalibration-app/internal/analyzer"
	"github.com/Waseeq28/recalibration-app/internal/conversation"
	"github.com/Waseeq28/recalibration-app/internal/hermes"
	"github.com/Waseeq28/recalibration-app/internal/profile"
)

// SessionCompletedEvent is the payload of hermes.SubjectSessionCompleted.
type SessionCompletedEvent struct {
	UserID string `json:"user_id"`
	Day    string `json:"day"` // YYYY-MM-DD
}

// ProfileReadyEvent is the payload of hermes.SubjectProfileReady.
type ProfileReadyEvent struct {
	UserID  string          `json:"user_id"`
	Day     string          `json:"day"`
	Profile profile.Profile `json:"profile"`
}

// AnalysisSkippedEvent is the payload of hermes.SubjectAnalysisSkipped.
type AnalysisSkippedEvent struct {
	UserID string `json:"user_id"`
	Day    string `json:"day"`
	Reason string `json:"reason"`
}

// TurnSource fetches a day's chat turns.
type TurnSource interface {
	TurnsForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]conversation.Turn, error)
}

// Publisher emits journal events.
type Publisher interface {
	Publish(subject string, data any) error
}

type Processor struct {
	store    TurnSource
	analyzer *analyzer.Analyzer
	bus      Publisher
	logger   *slog.Logger
}

func New(store TurnSource, a *analyzer.Analyzer, bus Publisher, logger *slog.Logger) *Processor {
	return &Processor{store: store, analyzer: a, bus: bus, logger: logger}
}

// HandleSessionCompleted is the bus handler for completed chat sessions.
func (p *Processor) HandleSessionCompleted(subject string, data []byte) {
	ctx := context.Background()

	var evt SessionCompletedEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse session event", "error", err)
		return
	}

	userID, err := uuid.Parse(evt.UserID)
	if err != nil {
		p.logger.Error("invalid user id", "user_id", evt.UserID, "error", err)
		return
	}
	day, err := time.Parse("2006-01-02", evt.Day)
	if err != nil {
		p.logger.Error("invalid day", "day", evt.Day, "error", err)
		return
	}

	p.logger.Info("processing completed session", "user", evt.UserID, "day", evt.Day)

	turns, err := p.store.TurnsForDay(ctx, userID, day)
	if err != nil {
		p.logger.Error("failed to fetch turns", "user", evt.UserID, "day", evt.Day, "error", err)
		return
	}

	result, err := p.analyzer.Analyze(ctx, turns)
	if err != nil {
		var gateErr *analyzer.GateError
		if errors.As(err, &gateErr) {
			p.publish(hermes.SubjectAnalysisSkipped, AnalysisSkippedEvent{
				UserID: evt.UserID,
				Day:    evt.Day,
				Reason: gateErr.Error(),
			})
			return
		}
		p.logger.Error("analysis failed", "user", evt.UserID, "day", evt.Day, "error", err)
		return
	}

	p.publish(hermes.SubjectProfileReady, ProfileReadyEvent{
		UserID:  evt.UserID,
		Day:     evt.Day,
		Profile: *result,
	})

	p.logger.Info("profile published",
		"user", evt.UserID,
		"day", evt.Day,
		"intensity", result.EmotionalIntensity.Level,
	)
}

func (p *Processor) publish(subject string, payload any) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(subject, payload); err != nil {
		p.logger.Error("publish failed", "subject", subject, "error", err)
	}
}
