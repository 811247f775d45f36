// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/studytrack/internal/domain/tier"
)

// PerformanceRecord is one submitted evaluation. Records are immutable once stored.
type PerformanceRecord struct {
	ID          int64     // assigned by the store on append
	StudentName string    // not unique; students sharing a name share a history
	Score       float64   // expected in [0, 10], not enforced
	TierCode    tier.Code // always tier.Classify(Score)
	TierLabel   string
	Course      string
	Subject     string
	CreatedAt   time.Time // assigned by the store on append
}

// NewRecord builds a record whose tier is derived from score.
func NewRecord(name string, score float64, course, subject string) PerformanceRecord {
	code, label := tier.Classify(score)
	return PerformanceRecord{
		StudentName: name,
		Score:       score,
		TierCode:    code,
		TierLabel:   label,
		Course:      course,
		Subject:     subject,
	}
}

// Decimal exponents outside [minPlainExp, maxPlainExp) are rendered in
// exponent form.
const (
	minPlainExp = -4
	maxPlainExp = 16
)

// FormatScore renders a score in its shortest round-trip form, keeping a
// trailing ".0" for integral values (9 -> "9.0", 8.5 -> "8.5"). Magnitudes
// below 1e-4 or from 1e16 up use exponent form (1e-05, 1e+16).
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) || score == 0 {
		return fixedScore(score)
	}
	e := strconv.FormatFloat(score, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err == nil && (exp < minPlainExp || exp >= maxPlainExp) {
		return e
	}
	return fixedScore(score)
}

func fixedScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}
