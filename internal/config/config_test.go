package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("ignore-empty", true, "")
	fs.String("value-key", "", "")
	fs.String("log-level", "", "")
	fs.StringToString("ns", nil, "")

	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.IgnoreEmpty)
	assert.Equal(t, DefaultValueKey, cfg.ValueKey)
	assert.Empty(t, cfg.AttributeTag)
	assert.True(t, cfg.KeepNamespaces)
	assert.Equal(t, PrettyAuto, cfg.Pretty)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.ValidateSchema)
	assert.Empty(t, cfg.Namespaces)
	assert.Empty(t, cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfig(t, dir, `
value_key: text
log_level: debug
attribute_tag: "@"
namespaces:
  dc: http://purl.org/dc/elements/1.1/
`)

	t.Setenv("JSONIZE_LOG_LEVEL", "warn")
	t.Setenv("JSONIZE_IGNORE_EMPTY", "false")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--log-level", "error"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfigFile, cfg.File)
	assert.Equal(t, "text", cfg.ValueKey, "file overrides default")
	assert.Equal(t, "@", cfg.AttributeTag)
	assert.False(t, cfg.IgnoreEmpty, "env overrides default")
	assert.Equal(t, "error", cfg.LogLevel, "flag overrides env and file")
	assert.Equal(t, map[string]string{"dc": "http://purl.org/dc/elements/1.1/"}, cfg.Namespaces)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "ignore_empty: false\n")

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.False(t, cfg.IgnoreEmpty)
}

func TestLoad_NamespaceFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--ns", "a=urn:a,b=urn:b"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "urn:a", "b": "urn:b"}, cfg.Namespaces)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, path, cfg.File)

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "pretty", content: "pretty: sometimes\n", errMsg: "pretty must be one of"},
		{name: "log level", content: "log_level: loud\n", errMsg: "log_level"},
		{name: "log format", content: "log_format: xml\n", errMsg: "log_format must be text or json"},
		{name: "workers", content: "workers: -1\n", errMsg: "workers must not be negative"},
		{name: "yaml", content: "workers: [\n", errMsg: "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			writeConfig(t, dir, tt.content)

			_, err := Load("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := &Config{LogLevel: "warn", LogFormat: "json"}

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.xml")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "a.xml", entry["file"])

	_, err = (&Config{LogLevel: "nope"}).NewLogger(&buf)
	assert.Error(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	assert.Same(t, logger, GetLogger(WithLogger(context.Background(), logger)))
}

func TestConfig_Indent(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, "  ", (&Config{Pretty: PrettyAlways}).Indent(&buf))
	assert.Empty(t, (&Config{Pretty: PrettyNever}).Indent(&buf))
	assert.Empty(t, (&Config{Pretty: PrettyAuto}).Indent(&buf), "buffers are not terminals")
}

func TestGetConfig(t *testing.T) {
	def := GetConfig(context.Background())
	assert.Equal(t, DefaultValueKey, def.ValueKey)
	assert.True(t, def.IgnoreEmpty)

	cfg := &Config{ValueKey: "v"}
	assert.Same(t, cfg, GetConfig(WithConfig(context.Background(), cfg)))
}
