// Package monitor compares a new score with a student's most recent prior
// evaluation and phrases the result as a progress note.
package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/internal/domain/tier"
)

// History is the read side of the evaluation history.
type History interface {
	// MostRecent returns the latest record for name or model.ErrNotFound.
	MostRecent(ctx context.Context, name string) (model.PerformanceRecord, error)
}

// Monitor produces progress notes from the evaluation history.
type Monitor struct {
	history History
}

// New returns a Monitor reading from history.
func New(history History) *Monitor {
	return &Monitor{history: history}
}

// Evaluate returns the progress note for name's new score. It must run before
// the new score is appended, otherwise the score is compared with itself.
func (m *Monitor) Evaluate(ctx context.Context, name string, newScore float64) (string, error) {
	prior, err := m.history.MostRecent(ctx, name)
	found := true
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("monitor.evaluate: %w", err)
		}
		found = false
	}

	code, _ := tier.Classify(newScore)
	return Note(prior, found, newScore, tier.Frequency(code)), nil
}

// Note phrases the comparison between prior (if found) and newScore. Equality
// is exact: any difference at all counts as progress.
func Note(prior model.PerformanceRecord, found bool, newScore float64, freq string) string {
	switch {
	case !found:
		return fmt.Sprintf("First evaluation recorded. Monitoring suggested: %s.", freq)
	case prior.Score != newScore:
		return fmt.Sprintf("Progress detected: previous score was %s and is now %s. Monitoring suggested: %s.",
			model.FormatScore(prior.Score), model.FormatScore(newScore), freq)
	default:
		return fmt.Sprintf("No significant change in performance detected. Monitoring suggested: %s.", freq)
	}
}
