package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/symptomatic/internal/model"
)

// DefaultThreshold is the confidence a condition must exceed to be reported
const DefaultThreshold = 0.1

// severityFalloff is the distance at which the severity score reaches zero
const severityFalloff = 5.0

// Duration sub-scores
const (
	durationNeutral      = 0.5
	durationAcuteMatch   = 0.8
	durationAcuteOther   = 0.6
	durationChronicMatch = 0.8
	durationChronicOther = 0.4
)

// Scorer computes composite confidence scores for catalog conditions.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights   model.Weights
	threshold float64
}

// NewScorer creates a scorer with the given weights and inclusion threshold
func NewScorer(weights model.Weights, threshold float64) *Scorer {
	return &Scorer{
		weights:   weights,
		threshold: threshold,
	}
}

// DefaultScorer uses the 0.6 / 0.3 / 0.1 weights and the 0.1 threshold
func DefaultScorer() *Scorer {
	return NewScorer(model.DefaultWeights(), DefaultThreshold)
}

// Threshold returns the inclusion threshold
func (s *Scorer) Threshold() float64 {
	return s.threshold
}

// Weights returns the composite score coefficients
func (s *Scorer) Weights() model.Weights {
	return s.weights
}

// Score evaluates every condition and keeps those whose confidence exceeds
// the threshold, in catalog order. additionalInfo does not affect scoring.
func (s *Scorer) Score(symptoms model.SymptomSet, severity int, duration string, additionalInfo string, conditions []model.ConditionDefinition) []model.ScoredCondition {
	_ = additionalInfo

	scored := make([]model.ScoredCondition, 0, len(conditions))
	for _, c := range conditions {
		sc := s.ScoreCondition(symptoms, severity, duration, c)
		if sc.Breakdown.Raw > s.threshold {
			scored = append(scored, sc)
		}
	}
	return scored
}

// ScoreCondition scores a single condition without applying the threshold
func (s *Scorer) ScoreCondition(symptoms model.SymptomSet, severity int, duration string, c model.ConditionDefinition) model.ScoredCondition {
	matched := symptoms.Intersect(c)

	symptomScore := SymptomScore(len(matched), len(c.Symptoms))
	severityScore := SeverityScore(severity, c.SeverityRange)
	durationScore := DurationScore(duration, c.Presentation)

	raw := s.weights.Symptom*symptomScore +
		s.weights.Severity*severityScore +
		s.weights.Duration*durationScore

	return model.ScoredCondition{
		Condition:       c.Name,
		Key:             c.Key,
		Confidence:      Round2(math.Min(1, math.Max(0, raw))),
		Description:     c.Description,
		Recommendations: append([]string(nil), c.Recommendations...),
		MatchedSymptoms: matched,
		Breakdown: model.ScoreBreakdown{
			Symptom:  symptomScore,
			Severity: severityScore,
			Duration: durationScore,
			Raw:      raw,
			Formula: fmt.Sprintf("%.2f*symptom + %.2f*severity + %.2f*duration",
				s.weights.Symptom, s.weights.Severity, s.weights.Duration),
		},
	}
}

// SymptomScore is the matched fraction of a condition's canonical symptoms.
// A condition without symptoms scores 0.
func SymptomScore(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// SeverityScore is 1 when severity is in the typical range and falls off
// linearly with the distance to the nearest value, reaching 0 at 5.
// An empty range scores 0.
func SeverityScore(severity int, severityRange []int) float64 {
	if len(severityRange) == 0 {
		return 0
	}

	minDistance := math.Inf(1)
	for _, v := range severityRange {
		// float64 keeps the distance well-defined for extreme integers
		d := math.Abs(float64(severity) - float64(v))
		if d == 0 {
			return 1
		}
		minDistance = math.Min(minDistance, d)
	}

	return math.Max(0, 1-minDistance/severityFalloff)
}

// DurationScore applies the acute/chronic heuristic to the duration text.
// Acute keywords take precedence when both kinds are present.
func DurationScore(duration string, presentation model.Presentation) float64 {
	if duration == "" {
		return durationNeutral
	}

	lower := strings.ToLower(duration)
	switch {
	case strings.Contains(lower, "acute") || strings.Contains(lower, "sudden"):
		if presentation == model.PresentationAcute {
			return durationAcuteMatch
		}
		return durationAcuteOther
	case strings.Contains(lower, "chronic") || strings.Contains(lower, "weeks"):
		if presentation == model.PresentationChronic {
			return durationChronicMatch
		}
		return durationChronicOther
	default:
		return durationNeutral
	}
}

// Round2 rounds to two decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
