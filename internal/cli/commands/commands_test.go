package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonize/internal/config"
	"jsonize/internal/testutil"
)

// run executes cmd with args and the given config in its context.
func run(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	ctx := config.WithLogger(context.Background(), testutil.NewTestLogger(t))
	if cfg != nil {
		ctx = config.WithConfig(ctx, cfg)
	}

	err := cmd.ExecuteContext(ctx)

	return out.String(), err
}

func bookFiles(t *testing.T) (dir, xmlPath, mapPath string) {
	t.Helper()

	dir = t.TempDir()
	xmlPath = testutil.WriteFile(t, dir, "book.xml", testutil.BookXML)
	mapPath = testutil.WriteFile(t, dir, "book.json", testutil.BookMap)

	return dir, xmlPath, mapPath
}

func TestConvertCommand_Stdout(t *testing.T) {
	_, xmlPath, mapPath := bookFiles(t)

	out, err := run(t, NewConvertCommand(), nil, xmlPath, mapPath)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id": 7, "title": "Dune", "authors": ["Frank Herbert", "Brian Herbert"]}`, out)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")), "compact output on a buffer")
}

func TestConvertCommand_Pretty(t *testing.T) {
	_, xmlPath, mapPath := bookFiles(t)

	cfg := config.Default()
	cfg.Pretty = config.PrettyAlways

	out, err := run(t, NewConvertCommand(), cfg, xmlPath, mapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"title\": \"Dune\"")
}

func TestConvertCommand_OutputFile(t *testing.T) {
	dir, xmlPath, mapPath := bookFiles(t)
	outPath := filepath.Join(dir, "out.json")

	_, err := run(t, NewConvertCommand(), nil, xmlPath, mapPath, "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 7, "title": "Dune", "authors": ["Frank Herbert", "Brian Herbert"]}`, string(data))
}

func TestConvertCommand_Errors(t *testing.T) {
	dir, xmlPath, mapPath := bookFiles(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "watch without output", args: []string{xmlPath, mapPath, "--watch"}, errMsg: "--watch requires --output"},
		{name: "missing args", args: []string{xmlPath}, errMsg: "accepts 2 arg(s)"},
		{name: "missing mapping", args: []string{xmlPath, filepath.Join(dir, "nope.json")}, errMsg: "nope.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, NewConvertCommand(), nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInferCommand(t *testing.T) {
	dir, xmlPath, _ := bookFiles(t)

	out, err := run(t, NewInferCommand(), nil, xmlPath)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 3)

	out, err = run(t, NewInferCommand(), nil, xmlPath, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "mappings:")
	assert.Contains(t, out, "path: $.book.title.value")

	cfg := config.Default()
	cfg.ValueKey = "text"
	cfg.AttributeTag = "_"

	mapPath := filepath.Join(dir, "inferred.toml")
	_, err = run(t, NewInferCommand(), cfg, xmlPath, "-o", mapPath)
	require.NoError(t, err)

	data, err := os.ReadFile(mapPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[mappings]]")
	assert.Contains(t, string(data), "$.book._id")
	assert.Contains(t, string(data), "$.book.title.text")
}

func TestPathsCommand(t *testing.T) {
	_, xmlPath, _ := bookFiles(t)

	out, err := run(t, NewPathsCommand(), nil, xmlPath)
	require.NoError(t, err)

	for _, want := range []string{"/book/@id", "attribute", "/book/author[2]", "sequence", "/book/title", "(5 paths)"} {
		assert.Contains(t, out, want)
	}
}

func TestBatchCommand(t *testing.T) {
	dir, _, mapPath := bookFiles(t)
	testutil.WriteFile(t, dir, "in/a.xml", testutil.BookXML)
	testutil.WriteFile(t, dir, "in/b.xml", testutil.BookXML)
	outDir := filepath.Join(dir, "out")

	out, err := run(t, NewBatchCommand(), nil, mapPath, filepath.Join(dir, "in", "*.xml"), "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "converted 2 of 2 documents")
	assert.FileExists(t, filepath.Join(outDir, "a.json"))
	assert.FileExists(t, filepath.Join(outDir, "b.json"))

	_, err = run(t, NewBatchCommand(), nil, mapPath, filepath.Join(dir, "none", "*.xml"))
	assert.ErrorContains(t, err, "no documents match")
}

func TestValidateCommand(t *testing.T) {
	dir, _, mapPath := bookFiles(t)

	out, err := run(t, NewValidateCommand(), nil, mapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "info: ")
	assert.Contains(t, out, "implicit_item_map")
	assert.Contains(t, out, "3 mapping(s) ok")

	bad := testutil.WriteFile(t, dir, "bad.yaml", `
- from: {path: /a, type: value}
  to: {path: $.a, type: string}
  transformation: uper
- from: {path: /a, type: element}
  to: {path: $.b, type: object}
`)

	_, err = run(t, NewValidateCommand(), nil, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.Contains(t, err.Error(), "did you mean upper?")
	assert.Contains(t, err.Error(), "missing_item_maps")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, NewVersionCommand("1.2.3", "abc123"), nil)
	require.NoError(t, err)
	assert.Equal(t, "jsonize v1.2.3 (abc123)\n", out)
}
