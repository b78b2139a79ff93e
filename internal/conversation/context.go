package conversation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	// minTurnLength filters out near-empty turns ("ok", "yes") that add
	// noise without signal.
	minTurnLength = 5

	// maxTurnsForAnalysis caps how much of a long conversation is sent to
	// the model. Older context beyond the cap is sacrificed silently.
	maxTurnsForAnalysis = 50

	// minUserTurnLength and minUserTurns drive the suggestion heuristics.
	minUserTurnLength = 30
	minUserTurns      = 3
)

var emotionWords = regexp.MustCompile(`(?i)\b(feel|felt|emotion|happy|sad|angry|anxious|excited|worried|proud|grateful)\b`)

// Prepare filters and truncates a raw transcript into an analysis-ready
// subset: turns with trimmed content of minTurnLength characters or fewer
// are dropped, and only the most recent maxTurnsForAnalysis qualifying
// turns are kept, oldest first.
func Prepare(turns []Turn) []Turn {
	meaningful := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if len(strings.TrimSpace(t.Content)) > minTurnLength {
			meaningful = append(meaningful, t)
		}
	}
	if len(meaningful) > maxTurnsForAnalysis {
		meaningful = meaningful[len(meaningful)-maxTurnsForAnalysis:]
	}
	return meaningful
}

// Metrics computes descriptive context for a turn sequence.
func Metrics(turns []Turn) Context {
	totalContent := 0
	for _, t := range turns {
		totalContent += len(t.Content)
	}
	avg := 0
	if len(turns) > 0 {
		avg = int(float64(totalContent)/float64(len(turns)) + 0.5)
	}

	var stamps []time.Time
	for _, t := range turns {
		if !t.CreatedAt.IsZero() {
			stamps = append(stamps, t.CreatedAt)
		}
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	span := "Single session"
	if len(stamps) > 1 {
		span = formatTimeSpan(stamps[0], stamps[len(stamps)-1])
	}

	return Context{
		TurnCount:            len(turns),
		AverageTurnLength:    avg,
		TimeSpan:             span,
		HasMultipleExchanges: CountExchanges(turns) > 1,
	}
}

// CountExchanges counts completed user→assistant round trips. A user turn
// arms the counter; the next assistant turn (not necessarily adjacent)
// completes the exchange.
func CountExchanges(turns []Turn) int {
	exchanges := 0
	expectingAI := false
	for _, t := range turns {
		switch {
		case t.Role == RoleUser && !expectingAI:
			expectingAI = true
		case t.Role == RoleAssistant && expectingAI:
			exchanges++
			expectingAI = false
		}
	}
	return exchanges
}

// Suggestions generates guidance for improving conversation depth. The
// checks are independent, not mutually exclusive, and the result is
// ordered by usefulness.
func Suggestions(turns []Turn) []string {
	var suggestions []string

	userTotal := 0
	userTurns := 0
	for _, t := range turns {
		if t.Role == RoleUser {
			userTotal += len(t.Content)
			userTurns++
		}
	}
	// With no user turns there is no average to judge, so the length
	// suggestion is skipped and continuing the conversation leads.
	if userTurns > 0 && userTotal/userTurns < minUserTurnLength {
		suggestions = append(suggestions, "Try sharing more details about your thoughts and feelings")
	}
	if userTurns < minUserTurns {
		suggestions = append(suggestions, "Continue the conversation to generate richer insights")
	}

	hasEmotionWords := false
	for _, t := range turns {
		if emotionWords.MatchString(t.Content) {
			hasEmotionWords = true
			break
		}
	}
	if !hasEmotionWords {
		suggestions = append(suggestions, "Describe how you're feeling to get more accurate emotional insights")
	}

	return suggestions
}

// FormatTranscript renders turns as a User:/AI: transcript string suitable
// for the extraction prompts. System turns are skipped.
func FormatTranscript(turns []Turn) string {
	var parts []string
	for _, t := range turns {
		switch t.Role {
		case RoleUser:
			parts = append(parts, "User: "+t.Content)
		case RoleAssistant:
			parts = append(parts, "AI: "+t.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func formatTimeSpan(start, end time.Time) string {
	mins := int(end.Sub(start).Minutes())
	switch {
	case mins < 60:
		return fmt.Sprintf("%d minutes", mins)
	case mins < 24*60:
		hours := mins / 60
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	default:
		days := mins / (24 * 60)
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
}
