package conversation

const (
	// minTurnsForAnalysis is the floor before analysis is worth attempting:
	// at least one user message and one AI response.
	minTurnsForAnalysis = 2

	// minContentLength is the minimum total character count across all
	// turns for a meaningful analysis.
	minContentLength = 50
)

// Rejection reasons surfaced to the caller when a transcript is gated out.
const (
	ReasonInsufficientData = "Insufficient conversation data for meaningful analysis."
	ReasonNeedsMoreDepth   = "Conversation needs more depth for analysis."
)

// Verdict is the gate's decision on a transcript. When OK is false, Reason
// explains why and Suggestions carries guidance for the user, most useful
// first. Callers typically surface only the first suggestion.
type Verdict struct {
	OK          bool
	Reason      string
	Suggestions []string
}

// CanAnalyze decides whether a transcript has enough signal to analyze.
// Pure function of the input; the same turn list always yields the same
// verdict.
func CanAnalyze(turns []Turn) Verdict {
	if len(turns) < minTurnsForAnalysis {
		return Verdict{Reason: ReasonInsufficientData, Suggestions: Suggestions(turns)}
	}

	totalContent := 0
	userTurns := 0
	for _, t := range turns {
		totalContent += len(t.Content)
		if t.Role == RoleUser {
			userTurns++
		}
	}

	if totalContent < minContentLength || userTurns < 1 {
		return Verdict{Reason: ReasonNeedsMoreDepth, Suggestions: Suggestions(turns)}
	}

	return Verdict{OK: true}
}
