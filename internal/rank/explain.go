package rank

import (
	"fmt"
	"strings"

	"github.com/ppiankov/symptomatic/internal/model"
)

const (
	// NoMatchExplanation is returned when no condition cleared the threshold
	NoMatchExplanation = "No clear diagnosis pattern found. Please consult with a healthcare professional for proper evaluation."

	// ErrorExplanation is returned with a degraded result after an internal fault
	ErrorExplanation = "Unable to generate prediction due to processing error"

	disclaimer = " This assessment is based on AI analysis and should be confirmed by a healthcare professional."

	strongThreshold   = 0.7
	possibleThreshold = 0.4
)

// Explain composes the explanation for ranked predictions. Matched tokens
// are listed in normalization order.
func Explain(predictions []model.ScoredCondition, symptoms model.SymptomSet) string {
	if len(predictions) == 0 {
		return NoMatchExplanation
	}

	top := predictions[0]

	symptomsText := "reported symptoms"
	if !symptoms.IsEmpty() {
		symptomsText = strings.Join(symptoms.Tokens(), ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the symptoms (%s), ", symptomsText)

	switch {
	case top.Confidence > strongThreshold:
		fmt.Fprintf(&b, "there is a strong indication of %s.", top.Condition)
	case top.Confidence > possibleThreshold:
		fmt.Fprintf(&b, "%s is a possible diagnosis.", top.Condition)
	default:
		fmt.Fprintf(&b, "%s is one potential consideration among others.", top.Condition)
	}

	b.WriteString(disclaimer)
	return b.String()
}

// Qualifier names the confidence band used in the explanation
func Qualifier(confidence float64) string {
	switch {
	case confidence > strongThreshold:
		return "strong"
	case confidence > possibleThreshold:
		return "possible"
	default:
		return "potential"
	}
}
