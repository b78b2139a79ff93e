package extractor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Waseeq28/recalibration-app/internal/conversation"
	"github.com/Waseeq28/recalibration-app/internal/profile"
)

// FailedPlaceholder stands in for a parameter whose extraction call
// failed. Partial success is the designed behavior: one failed call never
// fails the batch.
const FailedPlaceholder = "Extraction failed for this parameter"

// Completer issues a single completion request against the language
// model. Implementations own temperature and output-token policy.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Executor fans the seven catalog prompts out to the model as independent
// concurrent requests and collects the raw text results.
type Executor struct {
	llm    Completer
	logger *slog.Logger
}

func New(llm Completer, logger *slog.Logger) *Executor {
	return &Executor{llm: llm, logger: logger}
}

// ExtractAll runs one completion per catalog prompt, concurrently. Each
// request's failure is caught per request and mapped to FailedPlaceholder;
// the batch as a whole never fails. Results are positionally matched to
// their prompts regardless of completion order.
func (e *Executor) ExtractAll(ctx context.Context, turns []conversation.Turn) profile.RawFields {
	transcript := conversation.FormatTranscript(turns)
	prompts := Catalog()
	results := make([]string, len(prompts))

	var wg sync.WaitGroup
	for i, p := range prompts {
		wg.Add(1)
		go func(i int, p Prompt) {
			defer wg.Done()
			text, err := e.llm.Complete(ctx, Render(p.Template, transcript))
			if err != nil {
				e.logger.Warn("extraction failed",
					"parameter", p.Parameter,
					"error", err,
				)
				results[i] = FailedPlaceholder
				return
			}
			results[i] = text
		}(i, p)
	}
	wg.Wait()

	e.logger.Info("extraction batch complete",
		"prompts", len(prompts),
		"transcript_len", len(transcript),
	)

	return profile.RawFields{
		ThemeSummary:       results[0],
		PrimaryEmotion:     results[1],
		EmotionalIntensity: results[2],
		SelfCompassion:     results[3],
		KeyChallenge:       results[4],
		ActionPlan:         results[5],
		DailyWin:           results[6],
	}
}
