package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-classdiagram/pkg/projection"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Seed, 1)
	assert.Equal(t, "Example", cfg.Seed[0].Name)
	assert.Equal(t, "attr1", cfg.Seed[0].Attributes[0].Draft().Name)
	assert.Equal(t, "void", cfg.Seed[0].Methods[0].Draft().ReturnType)

	layout, err := cfg.ProjectionLayout()
	require.NoError(t, err)
	assert.IsType(t, &projection.GridLayout{}, layout)
}

func TestParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Parse([]byte(`
log_level: DEBUG
audit_buffer: 16
layout:
  kind: circular
seed:
  - name: Person
    attributes:
      - {visibility: "-", name: age, type: int}
    methods:
      - {visibility: "#", name: greet, return_type: string, args: "name, loud"}
  - name: Empty
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 16, cfg.AuditBuffer)
	assert.Equal(t, 64, cfg.EventBuffer, "unset fields keep defaults")
	assert.Equal(t, "circular", cfg.Layout.Kind)
	assert.Equal(t, 1200.0, cfg.Layout.Width)

	require.Len(t, cfg.Seed, 2)
	m := cfg.Seed[0].Methods[0].Draft()
	assert.Equal(t, "#", m.Visibility)
	assert.Equal(t, "name, loud", m.Args)
	assert.Empty(t, cfg.Seed[1].Attributes)
}

func TestParse_EmptySeed(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Parse([]byte("seed: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Seed)
}

func TestParse_EnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Parse([]byte("log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "log_level: [", "failed to parse config"},
		{"log level", "log_level: loud", "config.log_level"},
		{"buffer", "audit_buffer: 0", "config.audit_buffer"},
		{"layout kind", "layout: {kind: spiral}", "config.layout.kind"},
		{"columns", "layout: {columns: -1}", "config.layout.columns"},
		{"seed name", "seed: [{name: ' '}]", "config.seed[0].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.AuditBuffer = 0
	cfg.EventBuffer = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors")
}

func TestLoad(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "classdiagram.yaml")
	require.NoError(t, os.WriteFile(path, []byte("event_buffer: 8\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.EventBuffer)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestParse_ZeroPaddingKept(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Parse([]byte(`
layout:
  kind: grid
  width: 300
  height: 200
  padding: 0
  columns: 3
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Layout.Padding)

	layout, err := cfg.ProjectionLayout()
	require.NoError(t, err)
	positions, err := layout.ComputeLayout([]uml.Identity{"a", "b", "c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, projection.Position{X: 50, Y: 100}, positions["a"])
}
