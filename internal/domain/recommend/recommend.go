// Package recommend turns a performance tier into study advice.
package recommend

import "github.com/okian/studytrack/internal/domain/tier"

// Recommendation is the advice shown for a tier.
type Recommendation struct {
	Advice    string
	Frequency string
}

// Recommender maps a tier code to a recommendation.
type Recommender interface {
	Recommend(code tier.Code) Recommendation
}

// TableRecommender reads recommendations from the tier table.
type TableRecommender struct{}

// NewTableRecommender returns a Recommender backed by the tier table.
func NewTableRecommender() *TableRecommender {
	return &TableRecommender{}
}

// Recommend returns the advice for code. Unknown codes yield the
// "No recommendation available" / "N/A" pair.
func (r *TableRecommender) Recommend(code tier.Code) Recommendation {
	return Recommend(code)
}

// Recommend is the package-level form of TableRecommender.Recommend.
func Recommend(code tier.Code) Recommendation {
	p, _ := tier.Lookup(code)
	return Recommendation{Advice: p.Advice, Frequency: p.Frequency}
}
