// Package tier classifies scores into fixed performance bands and holds the
// authoritative per-tier profile (label, advice, monitoring frequency).
package tier

// Code identifies a performance tier.
type Code string

// Known tier codes.
const (
	Low       Code = "low"
	Mid       Code = "mid"
	High      Code = "high"
	Excellent Code = "excellent"
)

// Lower bounds of each band. A score equal to a bound belongs to the upper band.
const (
	midThreshold       = 5.0
	highThreshold      = 7.0
	excellentThreshold = 9.0
)

// Fallbacks used for codes outside the closed enumeration.
const (
	NoAdvice    = "No recommendation available"
	NoFrequency = "N/A"
)

// Profile is everything derived from a tier code.
type Profile struct {
	Code      Code
	Label     string
	Advice    string
	Frequency string
}

var profiles = map[Code]Profile{
	Low: {
		Code:      Low,
		Label:     "low performance",
		Advice:    "Basic reinforcement, extra exercises",
		Frequency: "5–7 times per week",
	},
	Mid: {
		Code:      Mid,
		Label:     "intermediate performance",
		Advice:    "Moderate practice activities",
		Frequency: "3–5 times per week",
	},
	High: {
		Code:      High,
		Label:     "high performance",
		Advice:    "Additional advanced challenges",
		Frequency: "1–3 times per week",
	},
	Excellent: {
		Code:      Excellent,
		Label:     "excellent performance",
		Advice:    "Special projects, mentoring",
		Frequency: "1 time per week",
	},
}

// Classify maps a score to its tier code and label.
//
// Scores outside [0, 10] are accepted and fall into the lowest or highest band.
func Classify(score float64) (Code, string) {
	var c Code
	switch {
	case score < midThreshold:
		c = Low
	case score < highThreshold:
		c = Mid
	case score < excellentThreshold:
		c = High
	default:
		c = Excellent
	}
	return c, profiles[c].Label
}

// Lookup returns the profile for code. ok is false for unknown codes, in which
// case the returned profile carries the fallback advice and frequency.
func Lookup(code Code) (Profile, bool) {
	p, ok := profiles[code]
	if !ok {
		return Profile{Code: code, Advice: NoAdvice, Frequency: NoFrequency}, false
	}
	return p, true
}

// Frequency returns the suggested monitoring frequency for code.
func Frequency(code Code) string {
	p, _ := Lookup(code)
	return p.Frequency
}

// Valid reports whether code is one of the known tiers.
func (c Code) Valid() bool {
	_, ok := profiles[c]
	return ok
}

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }

// Codes returns all tier codes from lowest to highest.
func Codes() []Code {
	return []Code{Low, Mid, High, Excellent}
}
