package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var builtinNames = []string{"lower", "strip", "upper"}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "strip", want: "strip"},
		{in: "UPPER", want: "upper"},
		{in: "parse_date", want: "parsedate"},
		{in: "Parse-Date", want: "parsedate"},
		{in: "to upper", want: "toupper"},
		{in: "Straße", want: "strasse"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "", b: "abc", want: 3},
		{a: "abc", b: "", want: 3},
		{a: "kitten", b: "sitting", want: 3},
		{a: "saturday", b: "sunday", want: 3},
		{a: "lowr", b: "lower", want: 1},
		{a: "stirp", b: "strip", want: 2},
		{a: "Upper", b: "upper", want: 1},
		{a: "café", b: "cafe", want: 1},
		{a: "日本", b: "日本語", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("strip", "strip"), 1e-9)
	assert.InDelta(t, 0.8, Similarity("lowr", "lower"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestRank(t *testing.T) {
	ranked := Rank("Lower", builtinNames)
	require.Len(t, ranked, 3)

	assert.Equal(t, "lower", ranked[0].Name)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}

	tied := Rank("zzz", []string{"bbb", "aaa"})
	assert.Equal(t, "aaa", tied[0].Name)
	assert.Equal(t, "bbb", tied[1].Name)
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		known  []string
		limit  int
		want   []string
	}{
		{name: "one typo", target: "lowr", known: builtinNames, limit: 3, want: []string{"lower"}},
		{name: "transposition", target: "stirp", known: builtinNames, limit: 3, want: []string{"strip"}},
		{name: "case and separators", target: "UP_PER", known: builtinNames, limit: 3, want: []string{"upper"}},
		{name: "nothing close", target: "base64", known: builtinNames, limit: 3, want: nil},
		{name: "no known names", target: "lower", known: nil, limit: 3, want: nil},
		{name: "limit", target: "lower", known: []string{"lowered", "lowers", "lower"}, limit: 2, want: []string{"lower", "lowers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.target, tt.known, tt.limit))
		})
	}
}
