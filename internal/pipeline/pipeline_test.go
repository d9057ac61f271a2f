package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/symptomatic/internal/cache"
	"github.com/ppiankov/symptomatic/internal/engine"
	"github.com/ppiankov/symptomatic/internal/knowledge"
	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/normalize"
	"github.com/ppiankov/symptomatic/internal/validate"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func coldRequest() model.PredictionRequest {
	return model.PredictionRequest{
		ID:       "req-1",
		Symptoms: "runny nose, sneezing, sore throat",
		Severity: 2,
		Duration: "2 days",
	}
}

func newTestPipeline(t *testing.T, c cache.Cache) *Pipeline {
	t.Helper()
	eng := engine.New(knowledge.Default(), normalize.Default(), engine.WithClock(func() time.Time { return fixedTime }))
	return New(eng, c, model.DefaultConfig(), nil)
}

// brokenSource serves a definition the catalog would reject
type brokenSource struct{}

func (brokenSource) All() []model.ConditionDefinition {
	return []model.ConditionDefinition{{Key: "broken", Name: "Broken"}}
}

func TestPredict_RunsEngine(t *testing.T) {
	p := newTestPipeline(t, nil)

	res, err := p.Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "req-1", res.Request.ID)
	assert.Equal(t, model.StatusOK, res.Result.Status)

	top, ok := res.Result.Top()
	require.True(t, ok)
	assert.Equal(t, "Common Cold", top.Condition)
	assert.InDelta(t, 0.55, res.Result.Confidence, 1e-9)
}

func TestPredict_AssignsRequestID(t *testing.T) {
	p := newTestPipeline(t, nil)

	req := coldRequest()
	req.ID = ""

	res, err := p.Predict(context.Background(), req)
	require.NoError(t, err)
	_, parseErr := uuid.Parse(res.Request.ID)
	assert.NoError(t, parseErr)
}

func TestPredict_ValidationError(t *testing.T) {
	p := newTestPipeline(t, nil)

	req := coldRequest()
	req.Severity = 0
	req.Duration = ""

	res, err := p.Predict(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, res)

	var errs validate.Errors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 2)
}

func TestPredict_CanceledContext(t *testing.T) {
	p := newTestPipeline(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Predict(ctx, coldRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPredict_NoMatchIsNotAnError(t *testing.T) {
	// A lone severe condition; a mild request without recognized symptoms
	// only earns the neutral duration share, 0.1 * 0.5 = 0.05.
	catalog, err := knowledge.New([]model.ConditionDefinition{{
		Key:           "anaphylaxis",
		Name:          "Anaphylaxis",
		Symptoms:      []string{"rash"},
		SeverityRange: []int{10},
	}})
	require.NoError(t, err)
	p := New(engine.New(catalog, normalize.Default()), nil, model.DefaultConfig(), nil)

	req := coldRequest()
	req.Symptoms = "my left elbow clicks"
	req.Severity = 1

	res, err := p.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNoMatch, res.Result.Status)
	assert.Empty(t, res.Result.Predictions)
	assert.Empty(t, res.Result.Symptoms)
}

func TestPredict_CacheHit(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	p := newTestPipeline(t, c)
	later := fixedTime.Add(time.Hour)
	p.now = func() time.Time { return later }

	first, err := p.Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, c.Len())

	// Equivalent request differing only in ID and duration case
	again := coldRequest()
	again.ID = "req-2"
	again.Duration = "2 DAYS"

	second, err := p.Predict(context.Background(), again)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "req-2", second.Request.ID)
	assert.Equal(t, first.Result.Predictions, second.Result.Predictions)
	assert.Equal(t, later, second.Result.Timestamp)
}

func TestPredict_DegradedResultsAreNotCached(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	eng := engine.New(brokenSource{}, normalize.Default())
	p := New(eng, c, model.DefaultConfig(), nil)

	res, err := p.Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, res.Result.Status)
	assert.Equal(t, 0, c.Len())
}

func TestNewPipeline_Defaults(t *testing.T) {
	p, err := NewPipeline(model.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Len(t, p.Engine().Conditions(), 7)
	assert.Nil(t, p.cache)
}

func TestNewPipeline_CustomFiles(t *testing.T) {
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "conditions.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`conditions:
  - key: nosebleed
    name: Nosebleed
    symptoms: [bleeding nose]
    severity_range: [1, 4]
    description: Bleeding from the nose.
    recommendations: [Pinch the soft part of the nose]
`), 0644))

	synonymsPath := filepath.Join(dir, "synonyms.yaml")
	require.NoError(t, os.WriteFile(synonymsPath, []byte(`synonyms:
  - token: bleeding nose
    forms: [nosebleed, bleeding nose, epistaxis]
`), 0644))

	cfg := model.DefaultConfig()
	cfg.Catalog.Path = catalogPath
	cfg.Catalog.SynonymsPath = synonymsPath
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = ""

	p, err := NewPipeline(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, p.cache)

	res, err := p.Predict(context.Background(), model.PredictionRequest{
		Symptoms: "Epistaxis since this morning",
		Severity: 2,
		Duration: "3 hours",
	})
	require.NoError(t, err)
	require.Len(t, res.Result.Predictions, 1)
	assert.Equal(t, "Nosebleed", res.Result.Predictions[0].Condition)
	// Severity 2 sits one step from the listed 1 and 4: 0.6 + 0.3*0.8 + 0.1*0.5
	assert.InDelta(t, 0.89, res.Result.Confidence, 1e-9)
}

func TestNewPipeline_DiskCacheScopedByEngineConfig(t *testing.T) {
	dir := t.TempDir()

	newPipeline := func(threshold float64) *Pipeline {
		cfg := model.DefaultConfig()
		cfg.Cache.Enabled = true
		cfg.Cache.Dir = dir
		cfg.Engine.Threshold = threshold
		p, err := NewPipeline(cfg, nil)
		require.NoError(t, err)
		return p
	}

	first, err := newPipeline(0.1).Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.NotEmpty(t, first.Result.Predictions)

	strict, err := newPipeline(0.9).Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.False(t, strict.Cached)
	for _, pred := range strict.Result.Predictions {
		assert.Greater(t, pred.Confidence, 0.9)
	}

	again, err := newPipeline(0.1).Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, first.Result.Predictions, again.Result.Predictions)
}

func TestNewPipeline_DiskCacheScopedByCatalog(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "conditions.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`conditions:
  - key: hay_fever
    name: Hay Fever
    symptoms: [runny nose, sneezing]
    severity_range: [1, 2, 3]
    description: Seasonal allergy.
    recommendations: [Try an antihistamine]
`), 0644))

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(dir, "cache")

	p, err := NewPipeline(cfg, nil)
	require.NoError(t, err)
	_, err = p.Predict(context.Background(), coldRequest())
	require.NoError(t, err)

	custom := *cfg
	custom.Catalog.Path = catalogPath
	p, err = NewPipeline(&custom, nil)
	require.NoError(t, err)

	res, err := p.Predict(context.Background(), coldRequest())
	require.NoError(t, err)
	assert.False(t, res.Cached)
	top, ok := res.Result.Top()
	require.True(t, ok)
	assert.Equal(t, "Hay Fever", top.Condition)
}

func TestNewPipeline_BadCatalog(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewPipeline(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestRenderResult_WritesFiles(t *testing.T) {
	p := newTestPipeline(t, nil)
	res, err := p.Predict(context.Background(), coldRequest())
	require.NoError(t, err)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	mdPath := filepath.Join(dir, "out.md")
	require.NoError(t, p.RenderResult(res, jsonPath, mdPath, false))

	assert.FileExists(t, jsonPath)
	assert.FileExists(t, mdPath)
}
