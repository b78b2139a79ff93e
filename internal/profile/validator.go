package profile

// Validate checks a candidate profile for required fields and value-range
// validity. It returns the candidate unchanged when every one of the seven
// top-level fields is non-empty and the intensity level is within [1,10],
// and nil otherwise. This is the single chokepoint both the internal
// pipeline and externally supplied payloads must pass before a profile is
// shown to a user or cached.
func Validate(candidate *Profile) *Profile {
	if candidate == nil {
		return nil
	}

	required := []string{
		candidate.ThemeSummary,
		candidate.PrimaryEmotion,
		candidate.SelfCompassion,
		candidate.KeyChallenge,
		candidate.ActionPlan,
		candidate.DailyWin,
	}
	for _, field := range required {
		if field == "" {
			return nil
		}
	}

	level := candidate.EmotionalIntensity.Level
	if level < 1 || level > 10 {
		return nil
	}

	return candidate
}
