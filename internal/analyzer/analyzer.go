// Package analyzer wires the gate, preparer, cache, executor, assembler,
// and validator into the single "analyze this transcript" operation the
// rest of the service calls.
package analyzer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Waseeq28/recalibration-app/internal/cache"
	"github.com/Waseeq28/recalibration-app/internal/conversation"
	"github.com/Waseeq28/recalibration-app/internal/profile"
)

// ErrInvalidAnalysis is the user-facing message when the assembled
// profile fails validation. Retry is a deliberate user action, never
// automatic.
const ErrInvalidAnalysis = "Received invalid analysis data from AI service"

// GateError reports an insufficient-input rejection. It is recoverable by
// user action and carries at most one suggestion to avoid overload.
type GateError struct {
	Reason     string
	Suggestion string
}

func (e *GateError) Error() string {
	if e.Suggestion != "" {
		return e.Reason + " " + e.Suggestion
	}
	return e.Reason
}

// AnalysisError is an assembly/validation or transport failure surfaced
// to the caller.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string { return e.Message }

// Extractor runs the seven-parameter extraction batch.
type Extractor interface {
	ExtractAll(ctx context.Context, turns []conversation.Turn) profile.RawFields
}

// Snapshot is the orchestrator state presented to the UI collaborator.
type Snapshot struct {
	Profile   *profile.Profile
	Analyzing bool
	Err       string
}

// Analyzer orchestrates the analysis pipeline and tracks loading/error
// state across calls. Concurrent Analyze calls are permitted; the
// generation counter guarantees a late-resolving older call never
// overwrites a newer call's state.
type Analyzer struct {
	extractor Extractor
	cache     *cache.Cache
	logger    *slog.Logger

	mu      sync.Mutex
	gen     uint64
	current Snapshot
}

func New(ext Extractor, c *cache.Cache, logger *slog.Logger) *Analyzer {
	return &Analyzer{extractor: ext, cache: c, logger: logger}
}

// Analyze runs the full pipeline over a raw transcript and returns the
// validated profile. The snapshot moves through analyzing into ready or
// error alongside the return values.
func (a *Analyzer) Analyze(ctx context.Context, turns []conversation.Turn) (*profile.Profile, error) {
	gen := a.begin()

	verdict := conversation.CanAnalyze(turns)
	if !verdict.OK {
		gateErr := &GateError{Reason: verdict.Reason}
		if len(verdict.Suggestions) > 0 {
			gateErr.Suggestion = verdict.Suggestions[0]
		}
		a.finishError(gen, gateErr.Error())
		return nil, gateErr
	}

	prepared := conversation.Prepare(turns)
	key := cache.Key(prepared)

	if cached, ok := a.cache.Get(key); ok {
		a.logger.Info("analysis cache hit", "key", key)
		a.finishReady(gen, cached)
		return &cached, nil
	}

	a.logger.Info("analyzing transcript",
		"key", key,
		"turns", len(prepared),
	)

	raw := a.extractor.ExtractAll(ctx, prepared)
	candidate := profile.Assemble(raw)

	validated := profile.Validate(&candidate)
	if validated == nil {
		a.logger.Error("assembled profile failed validation", "key", key)
		a.finishError(gen, ErrInvalidAnalysis)
		return nil, &AnalysisError{Message: ErrInvalidAnalysis}
	}

	a.cache.Put(key, *validated)
	a.finishReady(gen, *validated)

	a.logger.Info("analysis complete",
		"key", key,
		"intensity", validated.EmotionalIntensity.Level,
	)
	return validated, nil
}

// Clear resets the snapshot to idle. The cache is untouched.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.current = Snapshot{}
}

// Snapshot returns the current orchestrator state.
func (a *Analyzer) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *Analyzer) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.current = Snapshot{Analyzing: true}
	return a.gen
}

func (a *Analyzer) finishReady(gen uint64, p profile.Profile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return // a newer call owns the state now
	}
	a.current = Snapshot{Profile: &p}
}

func (a *Analyzer) finishError(gen uint64, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return
	}
	a.current = Snapshot{Err: msg}
}
