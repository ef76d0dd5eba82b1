package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".h", cfg.Output.HeaderExt)
	assert.Equal(t, ".cpp", cfg.Output.SourceExt)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "constgen.yaml", `
output:
  base: generated/consts
  header_ext: .hpp
inputs:
  - shaders/basic.vert
  - shaders/basic.frag
logging:
  level: debug
watch:
  debounce_ms: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "generated/consts", cfg.Output.Base)
	assert.Equal(t, ".hpp", cfg.Output.HeaderExt)
	assert.Equal(t, ".cpp", cfg.Output.SourceExt, "unset values keep defaults")
	assert.Equal(t, []string{"shaders/basic.vert", "shaders/basic.frag"}, cfg.Inputs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "constgen.toml", `
inputs = ["a.txt", "b.txt"]

[output]
base = "out/consts"
source_ext = ".cc"

[logging]
level = "info"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out/consts", cfg.Output.Base)
	assert.Equal(t, ".h", cfg.Output.HeaderExt)
	assert.Equal(t, ".cc", cfg.Output.SourceExt)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Inputs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("CONSTGEN_TEST_OUT", "build/gen")
	path := writeConfig(t, "constgen.yml", `
output:
  base: ${CONSTGEN_TEST_OUT}/consts
inputs:
  - $CONSTGEN_TEST_OUT/input.txt
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build/gen/consts", cfg.Output.Base)
	assert.Equal(t, []string{"build/gen/input.txt"}, cfg.Inputs)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, "constgen.yaml", "output:\n  base: ~/consts\ninputs: [\"~/in.txt\"]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "consts"), cfg.Output.Base)
	assert.Equal(t, []string{filepath.Join(home, "in.txt")}, cfg.Inputs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "bad.toml", "inputs = [unterminated")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"header ext", "output:\n  header_ext: h\n", "output.header_ext"},
		{"source ext", "output:\n  source_ext: \"\"\n", "output.source_ext"},
		{"same exts", "output:\n  header_ext: .h\n  source_ext: .h\n", "must differ"},
		{"exts differ only in case", "output:\n  header_ext: .hpp\n  source_ext: .HPP\n", "must differ"},
		{"log level", "logging:\n  level: loud\n", "logging.level"},
		{"log format", "logging:\n  format: xml\n", "logging.format"},
		{"debounce", "watch:\n  debounce_ms: -1\n", "watch.debounce_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "constgen.yaml", tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
