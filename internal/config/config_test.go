package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable FromEnv reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CV_STORAGE", "CV_DATA_DIR", "DATABASE_URL", "REDIS_ADDR", "CV_REDIS_NAMESPACE",
		"CV_REGISTRY_URL", "CV_REGISTRY_TOKEN", "CV_RASTERIZER", "CV_DEBOUNCE",
		"CV_EXPORT_SCALE", "PORT", "CV_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"storage": "redis",
		"redis_addr": "localhost:6379",
		"debounce_ms": 250,
		"export_scale": 3,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 250, cfg.DebounceMS)
	assert.Equal(t, 3.0, cfg.ExportScale)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CV_STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/cv")
	t.Setenv("CV_DEBOUNCE", "1.5s")
	t.Setenv("CV_EXPORT_SCALE", "2.5")
	t.Setenv("PORT", "9090")
	t.Setenv("CV_VERBOSE", "true")

	cfg := FromEnv()
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "postgres://localhost/cv", cfg.DatabaseURL)
	assert.Equal(t, 1500, cfg.DebounceMS)
	assert.Equal(t, 2.5, cfg.ExportScale)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)

	t.Setenv("CV_DEBOUNCE", "300")
	assert.Equal(t, 300, FromEnv().DebounceMS)
	t.Setenv("PORT", "not-a-port")
	assert.Zero(t, FromEnv().Port)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"storage": "memory", "port": 7000, "debounce_ms": 500}`)
	t.Setenv("PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage, "file over defaults")
	assert.Equal(t, 9000, cfg.Port, "env over file")
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, RasterizerChrome, cfg.Rasterizer, "defaults fill the rest")
	assert.Equal(t, 2.0, cfg.ExportScale)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Storage, cfg.Storage)
	assert.Equal(t, time.Second, cfg.Debounce())
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("CV_STORAGE", "redis")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis_addr")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"file", Config{Storage: StorageFile}, ""},
		{"postgres without url", Config{Storage: StoragePostgres}, "database_url"},
		{"remote without url", Config{Storage: StorageRemote}, "registry_url"},
		{"unknown storage", Config{Storage: "s3"}, "unknown storage"},
		{"unknown rasterizer", Config{Rasterizer: "gpu"}, "unknown rasterizer"},
		{"negative debounce", Config{DebounceMS: -1}, "debounce_ms"},
		{"negative scale", Config{ExportScale: -2}, "export_scale"},
		{"port out of range", Config{Port: 70000}, "port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Storage: StorageMemory}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, StorageMemory, merged.Storage)
	assert.Equal(t, 1000, merged.DebounceMS)
	assert.Equal(t, 8080, merged.Port)
	assert.NotEmpty(t, merged.DataDir)
	assert.Equal(t, StorageMemory, cfg.Storage, "receiver is not modified")
	assert.Zero(t, cfg.Port)
}
