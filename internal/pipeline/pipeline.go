package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/symptomatic/internal/cache"
	"github.com/ppiankov/symptomatic/internal/engine"
	"github.com/ppiankov/symptomatic/internal/knowledge"
	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/normalize"
	"github.com/ppiankov/symptomatic/internal/validate"
)

// Pipeline orchestrates the complete prediction process
type Pipeline struct {
	validator *validate.Validator
	engine    *engine.Engine
	cache     cache.Cache // nil if disabled
	cacheNS   string      // engine fingerprint scoping cache keys
	renderer  *Renderer
	config    *model.Config
	logger    *logrus.Logger
	now       func() time.Time
}

// NewPipeline loads the configured catalog and synonym table and wires the
// engine, validator and cache around them
func NewPipeline(cfg *model.Config, logger *logrus.Logger) (*Pipeline, error) {
	catalog, err := knowledge.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	normalizer, err := normalize.LoadTable(cfg.Catalog.SynonymsPath)
	if err != nil {
		return nil, fmt.Errorf("load synonyms: %w", err)
	}

	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	eng := engine.NewFromConfig(cfg.Engine, catalog, normalizer, engine.WithLogger(logger))
	return New(eng, cache.New(cfg.Cache), cfg, logger), nil
}

// New wires a pipeline around an existing engine. c may be nil.
func New(eng *engine.Engine, c cache.Cache, cfg *model.Config, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	p := &Pipeline{
		validator: validate.NewValidator(validate.DefaultLimits()),
		engine:    eng,
		cache:     c,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
	if c != nil {
		p.cacheNS = eng.Fingerprint()
	}
	return p
}

// PredictResult contains the complete outcome for one request
type PredictResult struct {
	Request model.PredictionRequest
	Result  model.PredictionResult
	Cached  bool
}

// Engine exposes the underlying engine
func (p *Pipeline) Engine() *engine.Engine {
	return p.engine
}

// Predict validates req, serves it from cache when possible, and runs the
// engine otherwise. Validation failures are returned as validate.Errors.
// Requests without an ID are assigned one for log correlation.
func (p *Pipeline) Predict(ctx context.Context, req model.PredictionRequest) (*PredictResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	// 1. Validate request
	if err := p.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}

	// 2. Check cache
	key := cache.RequestKey(p.cacheNS, req)
	if p.cache != nil {
		if hit, ok := p.cache.Get(key); ok {
			hit.Timestamp = p.now().UTC()
			p.logger.WithField("request_id", req.ID).Debug("Served prediction from cache")
			return &PredictResult{Request: req, Result: hit, Cached: true}, nil
		}
	}

	// 3. Run engine
	result := p.engine.Predict(req)

	// 4. Store successful outcomes only; degraded results are never cached
	if p.cache != nil && result.Status != model.StatusError {
		if err := p.cache.Set(key, result, 0); err != nil {
			p.logger.WithError(err).Warn("Failed to cache prediction")
		}
	}

	return &PredictResult{Request: req, Result: result}, nil
}

// RenderResult renders the result to the specified outputs and prints a
// summary to stdout. A path of "-" writes that format to stdout instead of
// the summary.
func (p *Pipeline) RenderResult(res *PredictResult, jsonPath string, mdPath string, verbose bool) error {
	toStdout := false

	// Render JSON
	if jsonPath != "" {
		if jsonPath == "-" {
			toStdout = true
			if err := p.renderer.WriteJSON(os.Stdout, res); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
		} else {
			if err := p.renderer.RenderJSON(res, jsonPath); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
			}
		}
	}

	// Render Markdown
	if mdPath != "" {
		if mdPath == "-" {
			toStdout = true
			if _, err := io.WriteString(os.Stdout, p.renderer.Markdown(res)); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
		} else {
			if err := p.renderer.RenderMarkdown(res, mdPath); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
			}
		}
	}

	if !toStdout {
		p.renderer.RenderSummary(os.Stdout, res)
	}

	return nil
}
