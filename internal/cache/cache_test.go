package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/symptomatic/internal/model"
)

func sampleResult() model.PredictionResult {
	return model.PredictionResult{
		Predictions: []model.ScoredCondition{{
			Condition:       "Common Cold",
			Key:             "common_cold",
			Confidence:      0.55,
			Recommendations: []string{"Get plenty of rest"},
			MatchedSymptoms: []string{"runny nose"},
		}},
		Confidence:  0.55,
		Explanation: "Based on the symptoms (runny nose), Common Cold is a possible diagnosis.",
		Timestamp:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Symptoms:    []string{"runny nose"},
		Status:      model.StatusOK,
	}
}

func TestRequestKey(t *testing.T) {
	base := model.PredictionRequest{Symptoms: "runny nose", Severity: 2, Duration: "2 days"}

	same := base
	same.ID = "other-id"
	same.AdditionalInfo = "not scored"
	same.Duration = "  2 DAYS "
	assert.Equal(t, RequestKey("ns", base), RequestKey("ns", same))

	differentSeverity := base
	differentSeverity.Severity = 3
	assert.NotEqual(t, RequestKey("ns", base), RequestKey("ns", differentSeverity))

	differentSymptoms := base
	differentSymptoms.Symptoms = "sore throat"
	assert.NotEqual(t, RequestKey("ns", base), RequestKey("ns", differentSymptoms))

	assert.Contains(t, RequestKey("ns", base), "symptomatic:v2:")
}

func TestRequestKey_ScopeSeparatesConfigurations(t *testing.T) {
	req := model.PredictionRequest{Symptoms: "runny nose", Severity: 2, Duration: "2 days"}
	assert.NotEqual(t, RequestKey("defaults", req), RequestKey("strict-threshold", req))
	assert.NotEqual(t, RequestKey("", req), RequestKey("defaults", req))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", sampleResult(), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("a", sampleResult(), 0))
	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", sampleResult(), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	_, ok := c.Get("symptomatic:v1:abc")
	assert.False(t, ok)

	require.NoError(t, c.Set("symptomatic:v1:abc", sampleResult(), 0))
	got, ok := c.Get("symptomatic:v1:abc")
	require.True(t, ok)
	assert.Equal(t, sampleResult().Predictions, got.Predictions)
	assert.True(t, sampleResult().Timestamp.Equal(got.Timestamp))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "symptomatic_v1_abc.cache", entries[0].Name())

	require.NoError(t, c.Delete("symptomatic:v1:abc"))
	require.NoError(t, c.Delete("symptomatic:v1:abc"), "deleting a missing entry is not an error")

	require.NoError(t, c.Set("x", sampleResult(), 0))
	require.NoError(t, c.Clear())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskCache_Expired(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	require.NoError(t, c.Set("k", sampleResult(), -time.Second))
	_, ok := c.Get("k")
	assert.False(t, ok)

	_, err := os.Stat(filepath.Join(dir, "k.cache"))
	assert.True(t, os.IsNotExist(err), "expired entry should be removed")
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.cache"), []byte("{not json"), 0644))

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayered(NewMemoryCache(time.Minute, time.Minute), NewDiskCache(dir, time.Hour))

	// Seed only the disk layer
	disk := NewDiskCache(dir, time.Hour)
	require.NoError(t, disk.Set("k", sampleResult(), 0))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "Common Cold", got.Predictions[0].Condition)

	// Now served from memory even if disk is gone
	require.NoError(t, disk.Clear())
	_, ok = c.Get("k")
	assert.True(t, ok)

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayered(NewMemoryCache(time.Minute, time.Minute), NewDiskCache(dir, time.Hour))
	require.NoError(t, c.Set("k", sampleResult(), 0))

	_, ok := NewDiskCache(dir, time.Hour).Get("k")
	assert.True(t, ok)

	require.NoError(t, c.Clear())
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	assert.Nil(t, New(model.CacheConfig{Enabled: false}))

	_, isMemory := New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}).(*MemoryCache)
	assert.True(t, isMemory)

	_, isLayered := New(model.CacheConfig{Enabled: true, Dir: t.TempDir(), MemoryTTL: time.Minute, DiskTTL: time.Hour}).(*LayeredCache)
	assert.True(t, isLayered)

	_, isLRU := New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute, MaxEntries: 10}).(*LRUCache)
	assert.True(t, isLRU)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(2, time.Minute)

	require.NoError(t, c.Set("a", sampleResult(), 0))
	require.NoError(t, c.Set("b", sampleResult(), 0))

	// Touch a so b becomes the eviction candidate
	_, ok := c.Get("a")
	require.True(t, ok)

	require.NoError(t, c.Set("c", sampleResult(), 0))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	require.NoError(t, c.Delete("a"))
	_, ok = c.Get("a")
	assert.False(t, ok)

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestLRUCache_Expiry(t *testing.T) {
	c := NewLRUCache(10, 20*time.Millisecond)
	require.NoError(t, c.Set("k", sampleResult(), 0))

	time.Sleep(60 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestLayered_WithLRUMemory(t *testing.T) {
	dir := t.TempDir()
	c := NewLayered(NewLRUCache(1, time.Minute), NewDiskCache(dir, time.Hour))

	require.NoError(t, c.Set("a", sampleResult(), 0))
	require.NoError(t, c.Set("b", sampleResult(), 0))

	// a was evicted from memory but survives on disk
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.StatusOK, got.Status)
}
