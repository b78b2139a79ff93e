package profile

import "testing"

func validProfile() Profile {
	return Profile{
		ThemeSummary:       "I discussed deadline pressure at work",
		PrimaryEmotion:     "I felt overwhelmed",
		EmotionalIntensity: Intensity{Level: 7, PhysicalManifestation: "I experienced a racing heart"},
		SelfCompassion:     "I was kind to myself about the slow start",
		KeyChallenge:       "I struggled with prioritizing tasks",
		ActionPlan:         "I planned to write tomorrow's list tonight",
		DailyWin:           "I accomplished finishing the report",
	}
}

func TestValidate_AcceptsCompleteProfile(t *testing.T) {
	p := validProfile()
	got := Validate(&p)
	if got == nil {
		t.Fatal("expected valid profile to be accepted")
	}
	if got != &p {
		t.Error("validate should return the candidate unchanged")
	}
}

func TestValidate_RejectsNil(t *testing.T) {
	if Validate(nil) != nil {
		t.Error("nil candidate should be rejected")
	}
}

func TestValidate_RejectsAnyMissingField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"themeSummary", func(p *Profile) { p.ThemeSummary = "" }},
		{"primaryEmotion", func(p *Profile) { p.PrimaryEmotion = "" }},
		{"selfCompassion", func(p *Profile) { p.SelfCompassion = "" }},
		{"keyChallenge", func(p *Profile) { p.KeyChallenge = "" }},
		{"actionPlan", func(p *Profile) { p.ActionPlan = "" }},
		{"dailyWin", func(p *Profile) { p.DailyWin = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutate(&p)
			if Validate(&p) != nil {
				t.Errorf("profile missing %s should be rejected", tc.name)
			}
		})
	}
}

func TestValidate_IntensityRange(t *testing.T) {
	cases := []struct {
		level int
		ok    bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{10, true},
		{11, false},
		{-3, false},
	}

	for _, tc := range cases {
		p := validProfile()
		p.EmotionalIntensity.Level = tc.level
		got := Validate(&p)
		if tc.ok && got == nil {
			t.Errorf("level %d should be accepted", tc.level)
		}
		if !tc.ok && got != nil {
			t.Errorf("level %d should be rejected", tc.level)
		}
	}
}
