package rank

import (
	"sort"

	"github.com/ppiankov/symptomatic/internal/model"
)

// DefaultMaxPredictions is the number of predictions kept after ranking
const DefaultMaxPredictions = 3

// Ranker orders scored conditions and keeps the top N
type Ranker struct {
	maxPredictions int
}

// NewRanker creates a ranker. Non-positive limits fall back to the default.
func NewRanker(maxPredictions int) *Ranker {
	if maxPredictions <= 0 {
		maxPredictions = DefaultMaxPredictions
	}
	return &Ranker{maxPredictions: maxPredictions}
}

// MaxPredictions returns the truncation limit
func (r *Ranker) MaxPredictions() int {
	return r.maxPredictions
}

// Rank sorts by descending confidence and truncates. Equal confidences keep
// their input (catalog) order. The input slice is not modified.
func (r *Ranker) Rank(scored []model.ScoredCondition) []model.ScoredCondition {
	ranked := make([]model.ScoredCondition, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > r.maxPredictions {
		ranked = ranked[:r.maxPredictions]
	}
	return ranked
}

// TopConfidence returns the first prediction's confidence, or 0
func TopConfidence(predictions []model.ScoredCondition) float64 {
	if len(predictions) == 0 {
		return 0
	}
	return predictions[0].Confidence
}
