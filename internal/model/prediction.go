package model

import "time"

// PredictionRequest is the input accepted by the inference engine
type PredictionRequest struct {
	ID             string `json:"id,omitempty"`             // Optional caller reference (batch mode)
	Symptoms       string `json:"symptoms"`                 // Free-text symptom description
	Severity       int    `json:"severity"`                 // Self-reported severity (1-10)
	Duration       string `json:"duration"`                 // Free-text duration (e.g., "2 days", "sudden onset")
	AdditionalInfo string `json:"additionalInfo,omitempty"` // Passed through, not scored
}

// ScoredCondition is one condition that cleared the confidence threshold
type ScoredCondition struct {
	Condition       string         `json:"condition"`       // Display name
	Key             string         `json:"key"`             // Catalog key
	Confidence      float64        `json:"confidence"`      // Composite score, rounded to 2 decimals
	Description     string         `json:"description"`
	Recommendations []string       `json:"recommendations"`
	MatchedSymptoms []string       `json:"matchedSymptoms"` // Input tokens found in the condition's canonical set
	Breakdown       ScoreBreakdown `json:"breakdown"`       // Transparent sub-scores
}

// ScoreBreakdown exposes the sub-scores behind a composite confidence
type ScoreBreakdown struct {
	Symptom  float64 `json:"symptom"`  // |matched| / |canonical|
	Severity float64 `json:"severity"` // 1 in range, else max(0, 1 - distance/5)
	Duration float64 `json:"duration"` // Presentation-aware duration heuristic
	Raw      float64 `json:"raw"`      // Unrounded weighted sum
	Formula  string  `json:"formula"`
}

// PredictionStatus distinguishes the three possible engine outcomes
type PredictionStatus string

const (
	StatusOK      PredictionStatus = "ok"       // At least one condition cleared the threshold
	StatusNoMatch PredictionStatus = "no_match" // Valid outcome with no predictions
	StatusError   PredictionStatus = "error"    // Degraded result after an internal fault
)

// PredictionResult is the complete engine output for one request
type PredictionResult struct {
	Predictions []ScoredCondition `json:"predictions"` // At most MaxPredictions, descending confidence
	Confidence  float64           `json:"confidence"`  // Top prediction's confidence, or 0
	Explanation string            `json:"explanation"`
	Timestamp   time.Time         `json:"timestamp"`          // UTC, RFC 3339 when encoded
	Symptoms    []string          `json:"symptoms,omitempty"` // Normalized tokens
	Status      PredictionStatus  `json:"status"`
}

// Top returns the highest-ranked prediction, if any
func (r PredictionResult) Top() (ScoredCondition, bool) {
	if len(r.Predictions) == 0 {
		return ScoredCondition{}, false
	}
	return r.Predictions[0], true
}
