package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 8, cfg.SuggestLimit)
	assert.Equal(t, "default", cfg.Note)
	assert.Equal(t, "soapnote.db", filepath.Base(cfg.DB))
	assert.Empty(t, cfg.File)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "soapnote.yaml")
	require.NoError(t, os.WriteFile(file, []byte("modules: /data/modules\nsuggest_limit: 12\nnote: ward\n"), 0o644))
	t.Setenv("SOAPNOTE_NOTE", "clinic")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "/data/modules", cfg.Modules)
	assert.Equal(t, 12, cfg.SuggestLimit)
	assert.Equal(t, "clinic", cfg.Note, "environment overrides the file")
	assert.Equal(t, file, cfg.File)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{DB: "x.db", Modules: "modules", LogLevel: "info", LogFormat: "json", SuggestLimit: 8, Note: "default"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero limit", func(c *Config) { c.SuggestLimit = 0 }, "SUGGEST_LIMIT"},
		{"unknown level", func(c *Config) { c.LogLevel = "trace" }, "LOG_LEVEL"},
		{"unknown format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"empty db", func(c *Config) { c.DB = "" }, "DB"},
		{"empty note", func(c *Config) { c.Note = "" }, "NOTE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
