package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Config holds configuration for a replay run.
type Config struct {
	BaseURL string        // Base URL of the service
	File    string        // JSON file with submissions
	Timeout time.Duration // HTTP request timeout
}

// Score accepts both JSON numbers and strings so that malformed scores can be
// replayed verbatim.
type Score string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("score: %w", err)
		}
		*s = Score(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	*s = Score(n.String())
	return nil
}

// Submission is one entry of the replay file. Schema tags match the form
// field names served at /.
type Submission struct {
	Name       string `json:"name"       schema:"nome"`
	Score      Score  `json:"score"      schema:"score"`
	Course     string `json:"course"     schema:"course"`
	Discipline string `json:"discipline" schema:"discipline"`
}

// Outcome classifies the response to one submission.
type Outcome string

// Outcomes.
const (
	Succeeded Outcome = "succeeded"
	Rejected  Outcome = "rejected"
	Failed    Outcome = "failed"
)

// Summary holds replay statistics.
type Summary struct {
	Submitted int
	Succeeded int
	Rejected  int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func (s *Summary) add(o Outcome) {
	s.Submitted++
	switch o {
	case Succeeded:
		s.Succeeded++
	case Rejected:
		s.Rejected++
	default:
		s.Failed++
	}
}
