package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// minFieldLength guards against degenerate one-word model outputs
	// slipping through as if meaningful.
	minFieldLength = 10

	// defaultIntensityLevel is used when the raw intensity text contains
	// no parseable level at all.
	defaultIntensityLevel = 5

	noManifestations = "No manifestations mentioned"
)

var (
	levelPattern         = regexp.MustCompile(`(?i)(?:level|intensity).*?(\d{1,2})`)
	manifestationPattern = regexp.MustCompile(`(?is)manifestations?[^:]*:(.*)$`)
)

// Assemble builds a syntactically complete Profile from raw extraction
// text. Every field is populated, with placeholders where extraction
// produced nothing usable; semantic trust is established by Validate.
func Assemble(raw RawFields) Profile {
	return Profile{
		ThemeSummary:       cleanField(raw.ThemeSummary, "themeSummary"),
		PrimaryEmotion:     cleanField(raw.PrimaryEmotion, "primaryEmotion"),
		EmotionalIntensity: ParseIntensity(raw.EmotionalIntensity),
		SelfCompassion:     cleanField(raw.SelfCompassion, "selfCompassion"),
		KeyChallenge:       cleanField(raw.KeyChallenge, "keyChallenge"),
		ActionPlan:         cleanField(raw.ActionPlan, "actionPlan"),
		DailyWin:           cleanField(raw.DailyWin, "dailyWin"),
	}
}

// ParseIntensity pulls a 1-10 level and a manifestation string out of the
// free-text intensity extraction. The two parses are independent: a
// missing level does not block finding a manifestation, and vice versa.
// Out-of-range levels are clamped into [1,10]; a missing level defaults
// to 5.
func ParseIntensity(text string) Intensity {
	level := defaultIntensityLevel
	if m := levelPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			level = clampLevel(n)
		}
	}

	manifestation := noManifestations
	if m := manifestationPattern.FindStringSubmatch(text); m != nil {
		if trimmed := strings.TrimSpace(m[1]); trimmed != "" {
			manifestation = trimmed
		}
	}

	return Intensity{Level: level, PhysicalManifestation: manifestation}
}

func cleanField(value, field string) string {
	cleaned := strings.TrimSpace(value)
	if len(cleaned) < minFieldLength {
		return fmt.Sprintf("No clear %s information extracted from conversation", field)
	}
	return cleaned
}

func clampLevel(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
