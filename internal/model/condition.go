package model

import "slices"

// ConditionDefinition is one entry of the knowledge base catalog
type ConditionDefinition struct {
	Key             string       `json:"key" yaml:"key"`                                       // Stable identifier (e.g., "common_cold")
	Name            string       `json:"name" yaml:"name"`                                     // Display name
	Symptoms        []string     `json:"symptoms" yaml:"symptoms"`                             // Canonical symptom tokens
	SeverityRange   []int        `json:"severity_range" yaml:"severity_range"`                 // Typical severities (1-10)
	Description     string       `json:"description" yaml:"description"`                       // Free text
	Recommendations []string     `json:"recommendations" yaml:"recommendations"`               // Display order matters
	Presentation    Presentation `json:"presentation,omitempty" yaml:"presentation,omitempty"` // Onset style used by duration scoring
}

// Presentation describes how a condition typically presents over time
type Presentation string

const (
	PresentationNeutral Presentation = "neutral" // No duration preference
	PresentationAcute   Presentation = "acute"   // Sudden onset (e.g., migraine)
	PresentationChronic Presentation = "chronic" // Long-standing (e.g., hypertension)
)

// Valid reports whether p is a known presentation style.
// The empty string counts as neutral.
func (p Presentation) Valid() bool {
	switch p {
	case "", PresentationNeutral, PresentationAcute, PresentationChronic:
		return true
	default:
		return false
	}
}

// HasSymptom reports whether token is one of the condition's canonical symptoms
func (c ConditionDefinition) HasSymptom(token string) bool {
	return slices.Contains(c.Symptoms, token)
}

// InSeverityRange reports whether severity is listed in the condition's range
func (c ConditionDefinition) InSeverityRange(severity int) bool {
	return slices.Contains(c.SeverityRange, severity)
}

// Clone returns a deep copy so callers cannot mutate shared catalog slices
func (c ConditionDefinition) Clone() ConditionDefinition {
	c.Symptoms = slices.Clone(c.Symptoms)
	c.SeverityRange = slices.Clone(c.SeverityRange)
	c.Recommendations = slices.Clone(c.Recommendations)
	return c
}
