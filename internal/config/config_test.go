// SPDX-License-Identifier: EPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/regionedit/region"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadFrom(context.Background(), envconfig.MapLookuper(env))
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, "replace", cfg.RegionPolicy)
	assert.Equal(t, region.PolicyReplace, cfg.Policy())
	assert.Zero(t, cfg.SampleRate)
	assert.Equal(t, 100*time.Millisecond, cfg.SpeakerBuffer())
	assert.Equal(t, 800, cfg.PlotWidth)
	assert.Equal(t, 400, cfg.PlotHeight)
}

func TestLoadFrom_CustomValues(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, map[string]string{
		"LOG_LEVEL":         "debug",
		"LOG_FORMAT":        "json",
		"LOG_FILE":          "/var/log/regionedit.log",
		"REGION_POLICY":     "suppress",
		"SAMPLE_RATE":       "48000",
		"SPEAKER_BUFFER_MS": "250",
		"PLOT_WIDTH":        "1920",
		"PLOT_HEIGHT":       "300",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/var/log/regionedit.log", cfg.LogFile)
	assert.Equal(t, region.PolicySuppress, cfg.Policy())
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, 250*time.Millisecond, cfg.SpeakerBuffer())
	assert.Equal(t, 1920, cfg.PlotWidth)
	assert.Equal(t, 300, cfg.PlotHeight)

	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "/var/log/regionedit.log", lc.File)
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"unknown format", map[string]string{"LOG_FORMAT": "xml"}},
		{"unknown policy", map[string]string{"REGION_POLICY": "merge"}},
		{"negative rate", map[string]string{"SAMPLE_RATE": "-1"}},
		{"rate not a number", map[string]string{"SAMPLE_RATE": "fast"}},
		{"buffer too small", map[string]string{"SPEAKER_BUFFER_MS": "1"}},
		{"zero width", map[string]string{"PLOT_WIDTH": "0"}},
		{"height not a number", map[string]string{"PLOT_HEIGHT": "tall"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := load(t, tt.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config:")
		})
	}
}

func TestConfig_PolicyFallback(t *testing.T) {
	t.Parallel()

	cfg := &Config{RegionPolicy: "bogus"}
	assert.Equal(t, region.PolicyReplace, cfg.Policy())
}

func TestConfig_String(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, map[string]string{"REGION_POLICY": "suppress"})
	require.NoError(t, err)
	assert.Contains(t, cfg.String(), "RegionPolicy: suppress")
	assert.Contains(t, cfg.String(), "PlotWidth: 800")
}

// TestLoad_EnvFile modifies the process environment and cannot run in
// parallel.
func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PLOT_WIDTH=640\nREGION_POLICY=suppress\n"), 0o600))

	// Already set variables win over the file.
	t.Setenv("REGION_POLICY", "replace")
	// Registers cleanup so the value loaded from the file is removed.
	t.Setenv("PLOT_WIDTH", "")
	require.NoError(t, os.Unsetenv("PLOT_WIDTH"))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.PlotWidth)
	assert.Equal(t, region.PolicyReplace, cfg.Policy())
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
}
