package mapping

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonize/internal/paths"
)

func TestCompile_Book(t *testing.T) {
	maps, diags, err := Compile(bookDocument(), Builtins())
	require.NoError(t, err)
	require.Len(t, maps, 3)
	t.Log(spew.Sdump(bookDocument()))

	assert.Empty(t, diags.Warnings)

	id := maps[0]
	assert.Equal(t, XMLOrigin{Path: paths.MustParseSource("/book/@id"), Kind: NodeAttribute}, id.From())
	assert.Equal(t, Target{Path: paths.MustParseSink("$.id"), Kind: SinkInteger}, id.To())
	assert.Nil(t, id.Transform())

	title := maps[1]
	assert.Equal(t, "strip", title.TransformName())
	require.NotNil(t, title.Transform())

	out, err := title.Transform()(" Dune ")
	require.NoError(t, err)
	assert.Equal(t, "Dune", out)

	authors := maps[2]
	require.Len(t, authors.Items(), 1)
	assert.Equal(t, "value .", authors.Items()[0].From().String())
	assert.Equal(t, "string @.name", authors.Items()[0].To().String())

	assert.Equal(t, bookDocument(), Records(maps))
}

func TestCompile_ImplicitItemMap(t *testing.T) {
	doc := &Document{Mappings: []Record{
		{From: Endpoint{"/a/b", "sequence"}, To: Endpoint{"$.bs", "array"}},
	}}

	maps, diags, err := Compile(doc, nil)
	require.NoError(t, err)
	require.Len(t, maps, 1)

	items := maps[0].Items()
	require.Len(t, items, 1)
	assert.Equal(t, XMLOrigin{Path: paths.RelativeSourceRoot(), Kind: NodeValue}, items[0].From())
	assert.Equal(t, Target{Path: paths.RelativeSinkRoot(), Kind: SinkInfer}, items[0].To())

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "implicit_item_map", diags.Infos[0].Code)
	assert.Equal(t, "mappings[0]", diags.Infos[0].Location)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		code     string
		location string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "unknown path family",
			rec:      Record{From: Endpoint{"book/title", "value"}, To: Endpoint{"$.t", "string"}},
			code:     "invalid_path",
			location: "mappings[0].from",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, paths.ErrMalformedPath)
			},
		},
		{
			name:     "malformed sink",
			rec:      Record{From: Endpoint{"/a", "value"}, To: Endpoint{"$.a[", "string"}},
			code:     "invalid_path",
			location: "mappings[0].to",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, paths.ErrMalformedPath)
			},
		},
		{
			name:     "unsupported node kind",
			rec:      Record{From: Endpoint{"/a", "text"}, To: Endpoint{"$.a", "string"}},
			code:     "unsupported_kind",
			location: "mappings[0].from",
			check: func(t *testing.T, err error) {
				var uerr *UnsupportedNodeKindError
				require.ErrorAs(t, err, &uerr)
				assert.Equal(t, "text", uerr.Kind)
			},
		},
		{
			name:     "unknown transform",
			rec:      Record{From: Endpoint{"/a", "value"}, To: Endpoint{"$.a", "string"}, Transformation: "lowr"},
			code:     "unknown_transform",
			location: "mappings[0].transformation",
			check: func(t *testing.T, err error) {
				var terr *UnknownTransformError
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, []string{"lower"}, terr.Suggestions)
				assert.ErrorContains(t, err, "did you mean lower?")
			},
		},
		{
			name:     "incompatible kinds",
			rec:      Record{From: Endpoint{"/a", "value"}, To: Endpoint{"$.a", "array"}},
			code:     "incompatible_kinds",
			location: "mappings[0]",
			check: func(t *testing.T, err error) {
				var kerr *IncompatibleKindsError
				require.ErrorAs(t, err, &kerr)
				assert.Equal(t, "value", kerr.From)
				assert.Equal(t, SinkArray, kerr.To)
			},
		},
		{
			name:     "attribute kind without attribute step",
			rec:      Record{From: Endpoint{"/book/title", "attribute"}, To: Endpoint{"$.t", "string"}},
			code:     "kind_path_mismatch",
			location: "mappings[0].from",
			check: func(t *testing.T, err error) {
				var kerr *KindPathMismatchError
				require.ErrorAs(t, err, &kerr)
				assert.Equal(t, NodeAttribute, kerr.Kind)
				assert.ErrorContains(t, err, "does not end in an attribute")
			},
		},
		{
			name:     "sequence over an attribute",
			rec:      Record{From: Endpoint{"/book/@id", "sequence"}, To: Endpoint{"$.ids", "array"}},
			code:     "kind_path_mismatch",
			location: "mappings[0].from",
			check: func(t *testing.T, err error) {
				var kerr *KindPathMismatchError
				require.ErrorAs(t, err, &kerr)
				assert.Equal(t, NodeSequence, kerr.Kind)
				assert.Equal(t, "/book/@id", kerr.Path)
			},
		},
		{
			name:     "element without items",
			rec:      Record{From: Endpoint{"/a", "element"}, To: Endpoint{"$.a", "object"}},
			code:     "missing_item_maps",
			location: "mappings[0]",
			check: func(t *testing.T, err error) {
				var merr *MissingItemMapsError
				require.ErrorAs(t, err, &merr)
				assert.Equal(t, NodeElement, merr.Kind)
			},
		},
		{
			name: "nested item error",
			rec: Record{
				From: Endpoint{"/a", "sequence"},
				To:   Endpoint{"$.a", "array"},
				ItemMappings: []Record{
					{From: Endpoint{"./b", "value"}, To: Endpoint{"@.b", "string"}},
					{From: Endpoint{"./c", "value"}, To: Endpoint{"@.c", "string"}, Transformation: "nope"},
				},
			},
			code:     "unknown_transform",
			location: "mappings[0].itemMappings[1].transformation",
			check: func(t *testing.T, err error) {
				var terr *UnknownTransformError
				require.ErrorAs(t, err, &terr)
				assert.Empty(t, terr.Suggestions)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maps, diags, err := Compile(&Document{Mappings: []Record{tt.rec}}, Builtins())
			require.Error(t, err)
			assert.Nil(t, maps)

			require.Len(t, diags.Errors, 1)
			assert.Equal(t, tt.code, diags.Errors[0].Code)
			assert.Equal(t, tt.location, diags.Errors[0].Location)

			tt.check(t, err)
		})
	}
}

func TestCompile_ReportsEveryError(t *testing.T) {
	doc := &Document{Mappings: []Record{
		{From: Endpoint{"/a", "value"}, To: Endpoint{"$.a", "string"}, Transformation: "x"},
		{From: Endpoint{"/b", "value"}, To: Endpoint{"$.b", "string"}},
		{From: Endpoint{"b", "value"}, To: Endpoint{"c", "string"}},
	}}

	_, diags, err := Compile(doc, Builtins())
	require.Error(t, err)
	assert.Len(t, diags.Errors, 3)
}

func TestCompile_Warnings(t *testing.T) {
	doc := &Document{Mappings: []Record{
		{From: Endpoint{"/a", "value"}, To: Endpoint{"$.x", "string"}},
		{From: Endpoint{"/b", "value"}, To: Endpoint{"$.x", "string"}},
		{From: Endpoint{"/c", "sequence"}, To: Endpoint{"$.list", "array"}},
		{From: Endpoint{"/d", "sequence"}, To: Endpoint{"$.list", "array"}},
		{
			From:         Endpoint{"/e", "value"},
			To:           Endpoint{"$.e", "string"},
			ItemMappings: []Record{{From: Endpoint{".", "value"}, To: Endpoint{"@", "string"}}},
		},
	}}

	maps, diags, err := Compile(doc, nil)
	require.NoError(t, err)
	require.Len(t, maps, 5)

	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, "sink_overwrite", diags.Warnings[0].Code)
	assert.Equal(t, "mappings[1]", diags.Warnings[0].Location)
	assert.Equal(t, "items_ignored", diags.Warnings[1].Code)
	assert.Empty(t, maps[4].Items())
}

func TestCompile_JSONOrigin(t *testing.T) {
	doc := &Document{Mappings: []Record{
		{From: Endpoint{"$.book.title", "string"}, To: Endpoint{"$.title", "string"}},
		{
			From: Endpoint{"$.book.authors", "array"},
			To:   Endpoint{"$.names", "array"},
			ItemMappings: []Record{
				{From: Endpoint{"@.name", "string"}, To: Endpoint{"@", "string"}},
			},
		},
		{From: Endpoint{"$.book", "object"}, To: Endpoint{"$.copy", "infer"}},
	}}

	maps, _, err := Compile(doc, nil)
	require.NoError(t, err)
	require.Len(t, maps, 3)

	assert.Equal(t, JSONOrigin{Path: paths.MustParseSink("$.book.title"), Kind: SinkString}, maps[0].From())
	assert.Len(t, maps[1].Items(), 1)

	_, _, err = Compile(&Document{Mappings: []Record{
		{From: Endpoint{"$.book", "object"}, To: Endpoint{"$.copy", "array"}},
	}}, nil)
	assert.Error(t, err)
}

func TestCompile_NilDocument(t *testing.T) {
	maps, diags, err := Compile(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, maps)
	assert.True(t, diags.IsValid())
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(&Document{Mappings: []Record{{From: Endpoint{"x", "value"}, To: Endpoint{"$", "string"}}}}, nil)
	})
}
