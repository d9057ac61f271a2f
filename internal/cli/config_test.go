package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/symptomatic/internal/model"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`engine:
  threshold: 0.25
  max_predictions: 5
cache:
  enabled: true
  memory_ttl: 5m
logging:
  format: json
`), 0644))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Engine.Threshold)
	assert.Equal(t, 5, cfg.Engine.MaxPredictions)
	assert.Equal(t, model.DefaultWeights(), cfg.Engine.Weights)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.MemoryTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.DiskTTL)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SYMPTOMATIC_ENGINE_THRESHOLD", "0.4")
	t.Setenv("SYMPTOMATIC_CACHE_DISK_TTL", "2h")

	v := newTestViper()
	v.SetEnvPrefix("SYMPTOMATIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Engine.Threshold)
	assert.Equal(t, 2*time.Hour, cfg.Cache.DiskTTL)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Symptomatic Configuration File")
	assert.Contains(t, string(data), "threshold: 0.1")

	// The generated file loads back to the defaults
	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)

	err = writeDefaultConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, model.DefaultConfig()))
	assert.Contains(t, buf.String(), "Current Configuration")
	assert.Contains(t, buf.String(), "max_predictions: 3")
}

func TestNewLogger(t *testing.T) {
	l := newLogger(model.LoggingConfig{Level: "warn", Format: "json"}, false)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = newLogger(model.LoggingConfig{Level: "nonsense", Format: "text"}, false)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	l = newLogger(model.LoggingConfig{Level: "error"}, true)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}
