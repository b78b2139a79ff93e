package profile

// Intensity is the parsed 1-10 emotional intensity rating plus any
// physical, mental, or behavioral manifestations the user described.
type Intensity struct {
	Level                 int    `json:"level"`
	PhysicalManifestation string `json:"physicalManifestation"`
}

// Profile is the assembled set of emotional-insight fields produced per
// analysis run. A Profile is only trusted after it passes Validate; a
// candidate failing validation is treated as absent, never partially used.
type Profile struct {
	ThemeSummary       string    `json:"themeSummary"`
	PrimaryEmotion     string    `json:"primaryEmotion"`
	EmotionalIntensity Intensity `json:"emotionalIntensity"`
	SelfCompassion     string    `json:"selfCompassion"`
	KeyChallenge       string    `json:"keyChallenge"`
	ActionPlan         string    `json:"actionPlan"`
	DailyWin           string    `json:"dailyWin"`
}

// RawFields holds the unparsed text returned by the seven extraction
// calls, positionally matched to their prompts. EmotionalIntensity is
// free text parsed by Assemble; the rest pass through with trimming.
type RawFields struct {
	ThemeSummary       string
	PrimaryEmotion     string
	EmotionalIntensity string
	SelfCompassion     string
	KeyChallenge       string
	ActionPlan         string
	DailyWin           string
}
