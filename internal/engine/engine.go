package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/symptomatic/internal/knowledge"
	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/rank"
	"github.com/ppiankov/symptomatic/internal/score"
)

// ConditionSource provides the catalog in declaration order
type ConditionSource interface {
	All() []model.ConditionDefinition
}

// SymptomNormalizer maps free text to canonical symptom tokens
type SymptomNormalizer interface {
	Normalize(text string) model.SymptomSet
}

// Engine runs normalization, scoring, ranking and explanation for one
// request at a time. It keeps no per-request state and is safe for
// concurrent use as long as its collaborators are.
type Engine struct {
	conditions ConditionSource
	normalizer SymptomNormalizer
	scorer     *score.Scorer
	ranker     *rank.Ranker
	logger     *logrus.Logger
	now        func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithScorer replaces the default scorer
func WithScorer(s *score.Scorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// WithRanker replaces the default ranker
func WithRanker(r *rank.Ranker) Option {
	return func(e *Engine) { e.ranker = r }
}

// WithLogger sets the logger used for internal faults
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the time source for result timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given catalog and normalizer
func New(conditions ConditionSource, normalizer SymptomNormalizer, opts ...Option) *Engine {
	e := &Engine{
		conditions: conditions,
		normalizer: normalizer,
		scorer:     score.DefaultScorer(),
		ranker:     rank.NewRanker(rank.DefaultMaxPredictions),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logrus.New()
		e.logger.SetOutput(io.Discard)
	}
	return e
}

// NewFromConfig creates an engine whose scorer and ranker follow cfg
func NewFromConfig(cfg model.EngineConfig, conditions ConditionSource, normalizer SymptomNormalizer, opts ...Option) *Engine {
	base := []Option{
		WithScorer(score.NewScorer(cfg.Weights, cfg.Threshold)),
		WithRanker(rank.NewRanker(cfg.MaxPredictions)),
	}
	return New(conditions, normalizer, append(base, opts...)...)
}

// Predict always returns a well-formed result. Internal faults are logged
// and downgraded to an empty, zero-confidence result.
func (e *Engine) Predict(req model.PredictionRequest) model.PredictionResult {
	result, err := e.PredictE(req)
	if err != nil {
		e.logger.WithError(err).WithField("request_id", req.ID).Error("Prediction failed, returning degraded result")
	}
	return result
}

// PredictE is Predict that also reports the internal fault, if any.
// The returned result is usable in both cases.
func (e *Engine) PredictE(req model.PredictionRequest) (result model.PredictionResult, err error) {
	stage := "normalize"
	defer func() {
		if r := recover(); r != nil {
			err = &ProcessingError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
			result = e.degraded()
		}
	}()

	symptoms := e.normalizer.Normalize(req.Symptoms)

	stage = "score"
	conditions := e.conditions.All()
	for _, c := range conditions {
		if vErr := knowledge.Validate(c); vErr != nil {
			return e.degraded(), &ProcessingError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrMalformedCondition, vErr)}
		}
	}
	scored := e.scorer.Score(symptoms, req.Severity, req.Duration, req.AdditionalInfo, conditions)

	stage = "rank"
	predictions := e.ranker.Rank(scored)

	stage = "explain"
	explanation := rank.Explain(predictions, symptoms)

	status := model.StatusOK
	if len(predictions) == 0 {
		status = model.StatusNoMatch
	}

	e.logger.WithFields(logrus.Fields{
		"request_id":  req.ID,
		"symptoms":    symptoms.Len(),
		"scored":      len(scored),
		"predictions": len(predictions),
		"confidence":  rank.TopConfidence(predictions),
	}).Debug("Completed prediction")

	return model.PredictionResult{
		Predictions: predictions,
		Confidence:  rank.TopConfidence(predictions),
		Explanation: explanation,
		Timestamp:   e.now().UTC(),
		Symptoms:    symptoms.Tokens(),
		Status:      status,
	}, nil
}

// Conditions exposes the catalog the engine scores against
func (e *Engine) Conditions() []model.ConditionDefinition {
	return e.conditions.All()
}

// Threshold returns the confidence a condition must exceed to be reported
func (e *Engine) Threshold() float64 {
	return e.scorer.Threshold()
}

// Explain scores one named condition without the threshold, for
// "why (not) this condition" breakdowns. It returns ErrUnknownCondition
// for keys outside the catalog, and a ProcessingError on internal faults.
func (e *Engine) Explain(req model.PredictionRequest, key string) (sc model.ScoredCondition, err error) {
	stage := "normalize"
	defer func() {
		if r := recover(); r != nil {
			sc = model.ScoredCondition{}
			err = &ProcessingError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		var pe *ProcessingError
		if errors.As(err, &pe) {
			e.logger.WithError(err).WithField("request_id", req.ID).Error("Breakdown failed")
		}
	}()

	symptoms := e.normalizer.Normalize(req.Symptoms)

	stage = "score"
	for _, c := range e.conditions.All() {
		if c.Key != key {
			continue
		}
		if vErr := knowledge.Validate(c); vErr != nil {
			return model.ScoredCondition{}, &ProcessingError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrMalformedCondition, vErr)}
		}
		return e.scorer.ScoreCondition(symptoms, req.Severity, req.Duration, c), nil
	}
	return model.ScoredCondition{}, fmt.Errorf("%w: %q", ErrUnknownCondition, key)
}

func (e *Engine) degraded() model.PredictionResult {
	return model.PredictionResult{
		Predictions: []model.ScoredCondition{},
		Confidence:  0,
		Explanation: rank.ErrorExplanation,
		Timestamp:   e.now().UTC(),
		Status:      model.StatusError,
	}
}
