package infer

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonize/internal/interp"
	"jsonize/internal/mapping"
	"jsonize/internal/paths"
	"jsonize/internal/testutil"
	"jsonize/internal/xmldoc"
)

const shelvesXML = `<lib>
  <shelf n="1"><b>x</b><b>y</b></shelf>
  <shelf n="2"><b>z</b></shelf>
</lib>`

func parseXML(t *testing.T, data string) *xmldoc.Document {
	t.Helper()

	doc, err := xmldoc.ParseBytes([]byte(data))
	require.NoError(t, err)

	return doc
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want mapping.NodeKind
	}{
		{path: "/book", want: mapping.NodeValue},
		{path: "/book/@id", want: mapping.NodeAttribute},
		{path: "/book/author[2]", want: mapping.NodeSequence},
		{path: "/book/author[2]/name", want: mapping.NodeValue},
		{path: "/book/author[2]/@role", want: mapping.NodeAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(paths.MustParseSource(tt.path)))
		})
	}
}

func TestInfer_Book(t *testing.T) {
	doc, err := Infer(parseXML(t, testutil.BookXML), DefaultOptions())
	require.NoError(t, err)

	want := []mapping.Record{
		{
			From: mapping.Endpoint{Path: "/book/@id", Type: "attribute"},
			To:   mapping.Endpoint{Path: "$.book.id", Type: "infer"},
		},
		{
			From: mapping.Endpoint{Path: "/book/title", Type: "value"},
			To:   mapping.Endpoint{Path: "$.book.title.value", Type: "infer"},
		},
		{
			From: mapping.Endpoint{Path: "/book/author", Type: "sequence"},
			To:   mapping.Endpoint{Path: "$.book.author", Type: "array"},
			ItemMappings: []mapping.Record{{
				From: mapping.Endpoint{Path: ".", Type: "value"},
				To:   mapping.Endpoint{Path: "@.value", Type: "infer"},
			}},
		},
	}

	assert.Equal(t, want, doc.Mappings, spew.Sdump(doc))
}

func TestInfer_Options(t *testing.T) {
	src := parseXML(t, `<r xmlns="urn:d" xmlns:dc="urn:dc"><dc:title lang="en">X</dc:title><tag>a</tag><tag>b</tag></r>`)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "defaults",
			opts: DefaultOptions(),
			want: []string{"$.r.dc:title.value", "$.r.dc:title.lang", "$.r.tag[@.value]"},
		},
		{
			name: "custom tags without namespaces",
			opts: Options{ValueKey: "text", AttributeTag: "_"},
			want: []string{"$.r.title.text", "$.r.title._lang", "$.r.tag[@.text]"},
		},
		{
			name: "no value key",
			opts: Options{KeepNamespaces: true},
			want: []string{"$.r.dc:title", "$.r.dc:title.lang", "$.r.tag[@]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Infer(src, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sinkPaths(doc.Mappings))
		})
	}
}

// sinkPaths flattens records to their sink paths, item paths in brackets.
func sinkPaths(recs []mapping.Record) []string {
	var out []string

	for _, rec := range recs {
		path := rec.To.Path
		for _, item := range sinkPaths(rec.ItemMappings) {
			path += "[" + item + "]"
		}

		out = append(out, path)
	}

	return out
}

func TestBuildTree_NestedSequences(t *testing.T) {
	tree, err := BuildTree(parseXML(t, shelvesXML), nil)
	require.NoError(t, err)

	require.Len(t, tree.Nodes, 1)

	shelf := tree.Nodes[0]
	assert.Equal(t, "/lib/shelf", shelf.Path.String())
	assert.Equal(t, mapping.NodeSequence, shelf.Kind)
	require.Len(t, shelf.Items, 2)

	assert.Equal(t, "/lib/shelf/@n", shelf.Items[0].Path.String())
	assert.Equal(t, mapping.NodeAttribute, shelf.Items[0].Kind)

	b := shelf.Items[1]
	assert.Equal(t, "/lib/shelf/b", b.Path.String())
	assert.Equal(t, mapping.NodeSequence, b.Kind)
	require.Len(t, b.Items, 1)
	assert.Equal(t, mapping.NodeValue, b.Items[0].Kind)
	assert.True(t, b.Items[0].Path.Equal(b.Path))
}

func TestBuildTree_DropsContainerText(t *testing.T) {
	tree, err := BuildTree(parseXML(t, `<a>ignored<b>1</b><c/></a>`), nil)
	require.NoError(t, err)

	var got []string
	for _, n := range tree.Nodes {
		got = append(got, n.Path.String())
	}

	assert.Equal(t, []string{"/a/b", "/a/c"}, got)
}

func TestBuildTree_MixedRepetition(t *testing.T) {
	// b repeats under the second p only.
	tree, err := BuildTree(parseXML(t, `<a><p><b>1</b></p><p><b>2</b><b>3</b></p></a>`), nil)
	require.NoError(t, err)

	require.Len(t, tree.Nodes, 1)
	p := tree.Nodes[0]
	assert.Equal(t, "/a/p", p.Path.String())
	require.Len(t, p.Items, 1)
	assert.Equal(t, mapping.NodeSequence, p.Items[0].Kind)
	assert.Equal(t, "/a/p/b", p.Items[0].Path.String())
}

func TestInfer_RecordsCompile(t *testing.T) {
	doc, err := Infer(parseXML(t, shelvesXML), DefaultOptions())
	require.NoError(t, err)

	data, err := mapping.Marshal(doc, mapping.FormatYAML)
	require.NoError(t, err)

	parsed, err := mapping.Parse(data, mapping.FormatYAML)
	require.NoError(t, err)

	maps, diags, err := mapping.Compile(parsed, nil)
	require.NoError(t, err)
	assert.Empty(t, diags.Warnings)
	assert.Len(t, maps, 1)
}

func TestInfer_Idempotence(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		opts Options
		want any
	}{
		{
			name: "book",
			xml:  testutil.BookXML,
			opts: DefaultOptions(),
			want: map[string]any{"book": map[string]any{
				"id":    7,
				"title": map[string]any{"value": "Dune"},
				"author": []any{
					map[string]any{"value": "Frank Herbert"},
					map[string]any{"value": "Brian Herbert"},
				},
			}},
		},
		{
			name: "book without value key",
			xml:  testutil.BookXML,
			opts: Options{KeepNamespaces: true},
			want: map[string]any{"book": map[string]any{
				"id":     7,
				"title":  "Dune",
				"author": []any{"Frank Herbert", "Brian Herbert"},
			}},
		},
		{
			name: "nested sequences",
			xml:  shelvesXML,
			opts: DefaultOptions(),
			want: map[string]any{"lib": map[string]any{"shelf": []any{
				map[string]any{"n": 1, "b": []any{
					map[string]any{"value": "x"},
					map[string]any{"value": "y"},
				}},
				map[string]any{"n": 2, "b": []any{
					map[string]any{"value": "z"},
				}},
			}}},
		},
		{
			name: "namespaces",
			xml:  `<r xmlns="urn:d" xmlns:dc="urn:dc"><dc:title lang="en">true</dc:title></r>`,
			opts: DefaultOptions(),
			want: map[string]any{"r": map[string]any{
				"dc:title": map[string]any{"value": true, "lang": "en"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := parseXML(t, tt.xml)

			tree, err := BuildTree(src, tt.opts.Namespaces)
			require.NoError(t, err)

			maps, err := tree.NodeMaps(tt.opts)
			require.NoError(t, err)

			out, err := interp.New(interp.WithLogger(testutil.NewTestLogger(t))).Run(src, map[string]any{}, maps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestInfer_BadValueKey(t *testing.T) {
	_, err := Infer(parseXML(t, `<a>1</a>`), Options{ValueKey: "x..y"})
	require.ErrorIs(t, err, paths.ErrMalformedPath)
}
