package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonize/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"batch", "convert", "infer", "paths", "validate", "version"})
}

func TestRootCmd_ConvertWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	xmlPath := testutil.WriteFile(t, dir, "doc.xml", `<r xmlns:a="urn:a"><a:v/></r>`)
	mapPath := testutil.WriteFile(t, dir, "map.json",
		`[{"from": {"path": "/r/x:v", "type": "value"}, "to": {"path": "$.v", "type": "string"}}]`)
	testutil.WriteFile(t, dir, "jsonize.yaml", `
namespaces:
  x: urn:a
ignore_empty: false
pretty: never
`)

	out, err := execute(t, "convert", xmlPath, mapPath)
	require.NoError(t, err)
	assert.Equal(t, "{\"v\":null}\n", out)

	out, err = execute(t, "convert", xmlPath, mapPath, "--ignore-empty")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out, "flag overrides the config file")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, "version", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}

func TestRootCmd_ExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("value_key: text\n"), 0644))
	xmlPath := testutil.WriteFile(t, dir, "doc.xml", `<r><v>1</v></r>`)

	out, err := execute(t, "infer", xmlPath, "--config", cfgPath, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "$.r.v.text")
}
