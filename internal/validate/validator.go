package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/symptomatic/internal/model"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Errors collects every field error found in a request
type Errors []*FieldError

// Error implements the error interface
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Limits are the request bounds enforced before the engine runs
type Limits struct {
	SymptomsMin       int
	SymptomsMax       int
	SeverityMin       int
	SeverityMax       int
	DurationMax       int
	AdditionalInfoMax int
}

// DefaultLimits mirrors the submission form constraints
func DefaultLimits() Limits {
	return Limits{
		SymptomsMin:       5,
		SymptomsMax:       1000,
		SeverityMin:       1,
		SeverityMax:       10,
		DurationMax:       100,
		AdditionalInfoMax: 500,
	}
}

// Validator checks prediction requests against Limits
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with the given limits
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Validate returns nil for an acceptable request, or Errors listing every
// violated constraint in field order
func (v *Validator) Validate(req model.PredictionRequest) error {
	var errs Errors

	symptoms := strings.TrimSpace(req.Symptoms)
	switch n := utf8.RuneCountInString(req.Symptoms); {
	case symptoms == "":
		errs = append(errs, &FieldError{Field: "symptoms", Message: "is required"})
	case n < v.limits.SymptomsMin:
		errs = append(errs, &FieldError{
			Field:   "symptoms",
			Message: fmt.Sprintf("length must be at least %d characters long", v.limits.SymptomsMin),
			Value:   req.Symptoms,
		})
	case n > v.limits.SymptomsMax:
		errs = append(errs, &FieldError{
			Field:   "symptoms",
			Message: fmt.Sprintf("length must be less than or equal to %d characters long", v.limits.SymptomsMax),
		})
	}

	if req.Severity < v.limits.SeverityMin || req.Severity > v.limits.SeverityMax {
		errs = append(errs, &FieldError{
			Field:   "severity",
			Message: fmt.Sprintf("must be between %d and %d", v.limits.SeverityMin, v.limits.SeverityMax),
			Value:   req.Severity,
		})
	}

	switch {
	case strings.TrimSpace(req.Duration) == "":
		errs = append(errs, &FieldError{Field: "duration", Message: "is required"})
	case utf8.RuneCountInString(req.Duration) > v.limits.DurationMax:
		errs = append(errs, &FieldError{
			Field:   "duration",
			Message: fmt.Sprintf("length must be less than or equal to %d characters long", v.limits.DurationMax),
		})
	}

	if utf8.RuneCountInString(req.AdditionalInfo) > v.limits.AdditionalInfoMax {
		errs = append(errs, &FieldError{
			Field:   "additionalInfo",
			Message: fmt.Sprintf("length must be less than or equal to %d characters long", v.limits.AdditionalInfoMax),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
