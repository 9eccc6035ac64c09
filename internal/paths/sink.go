package paths

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Sink root markers.
const (
	SinkAbsoluteRoot = "$"
	SinkRelativeRoot = "@"
)

// SinkSegmentKind discriminates the segments of a SinkPath.
type SinkSegmentKind int

const (
	_ SinkSegmentKind = iota

	SinkRoot
	SinkField
	SinkIndex
	SinkSlice
)

// Slice is a start:stop:step range. Unset bounds are reported by the Has
// flags; negative bounds count from the end.
type Slice struct {
	Start, Stop, Step          int
	HasStart, HasStop, HasStep bool
}

// SinkSegment is one step of a SinkPath.
type SinkSegment struct {
	Kind SinkSegmentKind
	// Name holds the root marker for SinkRoot and the key for SinkField.
	Name  string
	Index int
	Slice Slice
}

// SinkPath addresses a value inside a JSON-like document.
// The first segment is always a root marker.
type SinkPath struct {
	segments []SinkSegment
}

// ParseSink parses the dot/bracket notation of a sink path.
func ParseSink(text string) (SinkPath, error) {
	if text == "" {
		return SinkPath{}, malformed(text, "empty path")
	}

	if text[0] != '$' && text[0] != '@' {
		return SinkPath{}, malformed(text, "sink path must start with '$' or '@'")
	}

	var segments []SinkSegment

	for i, part := range strings.Split(text, ".") {
		name, brackets := part, ""
		if j := strings.IndexByte(part, '['); j >= 0 {
			name, brackets = part[:j], part[j:]
		}

		if strings.ContainsRune(name, ']') {
			return SinkPath{}, malformed(text, "unmatched ']'")
		}

		switch {
		case i == 0:
			if name != SinkAbsoluteRoot && name != SinkRelativeRoot {
				return SinkPath{}, malformed(text, "sink path must start with '$' or '@'")
			}

			segments = append(segments, SinkSegment{Kind: SinkRoot, Name: name})
		case name == "":
			return SinkPath{}, malformed(text, "empty segment")
		default:
			segments = append(segments, SinkSegment{Kind: SinkField, Name: name})
		}

		subscripts, err := parseSubscripts(text, brackets)
		if err != nil {
			return SinkPath{}, err
		}

		segments = append(segments, subscripts...)
	}

	return SinkPath{segments: segments}, nil
}

// MustParseSink is like ParseSink but panics on malformed input.
// It is intended for literals in tests and package-level variables.
func MustParseSink(text string) SinkPath {
	p, err := ParseSink(text)
	if err != nil {
		panic(err)
	}

	return p
}

// RelativeSinkRoot returns the bare relative marker "@".
func RelativeSinkRoot() SinkPath {
	return SinkPath{segments: []SinkSegment{{Kind: SinkRoot, Name: SinkRelativeRoot}}}
}

// AbsoluteSinkRoot returns the bare absolute marker "$".
func AbsoluteSinkRoot() SinkPath {
	return SinkPath{segments: []SinkSegment{{Kind: SinkRoot, Name: SinkAbsoluteRoot}}}
}

// parseSubscripts parses zero or more consecutive "[...]" groups.
func parseSubscripts(text, s string) ([]SinkSegment, error) {
	var out []SinkSegment

	for s != "" {
		if s[0] != '[' {
			return nil, malformed(text, "unexpected characters after ']'")
		}

		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, malformed(text, "unmatched '['")
		}

		body := s[1:end]
		if strings.ContainsRune(body, '[') {
			return nil, malformed(text, "nested '['")
		}

		seg, err := parseSubscript(text, body)
		if err != nil {
			return nil, err
		}

		out = append(out, seg)
		s = s[end+1:]
	}

	return out, nil
}

// parseSubscript parses the inside of one bracket pair. Exactly one bare
// number is an index; anything with a colon is a slice.
func parseSubscript(text, body string) (SinkSegment, error) {
	parts := strings.Split(body, ":")
	if len(parts) > 3 {
		return SinkSegment{}, malformed(text, "too many ':' in slice")
	}

	values := make([]int, len(parts))
	present := make([]bool, len(parts))

	for i, part := range parts {
		if part == "" {
			continue
		}

		n, err := parseSignedInt(part)
		if err != nil {
			return SinkSegment{}, malformed(text, fmt.Sprintf("invalid subscript %q", body))
		}

		values[i], present[i] = n, true
	}

	if len(parts) == 1 {
		if !present[0] {
			return SinkSegment{}, malformed(text, "empty subscript")
		}

		return SinkSegment{Kind: SinkIndex, Index: values[0]}, nil
	}

	sl := Slice{
		Start: values[0], HasStart: present[0],
		Stop: values[1], HasStop: present[1],
	}
	if len(parts) == 3 {
		if present[2] && values[2] == 0 {
			return SinkSegment{}, malformed(text, "slice step cannot be zero")
		}

		sl.Step, sl.HasStep = values[2], present[2]
	}

	return SinkSegment{Kind: SinkSlice, Slice: sl}, nil
}

// parseSignedInt accepts an optional '-' followed by decimal digits only.
func parseSignedInt(s string) (int, error) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, strconv.ErrSyntax
	}

	return strconv.Atoi(s)
}

// IsZero reports whether p is the zero SinkPath.
func (p SinkPath) IsZero() bool {
	return len(p.segments) == 0
}

// IsAbsolute reports whether p starts with "$".
func (p SinkPath) IsAbsolute() bool {
	return !p.IsZero() && p.segments[0].Name == SinkAbsoluteRoot
}

// IsRelative reports whether p starts with "@".
func (p SinkPath) IsRelative() bool {
	return !p.IsZero() && p.segments[0].Name == SinkRelativeRoot
}

// IsRoot reports whether p consists of its root marker only.
func (p SinkPath) IsRoot() bool {
	return len(p.segments) == 1
}

// Len returns the number of segments, root marker included.
func (p SinkPath) Len() int {
	return len(p.segments)
}

// Segments returns a copy of the segment list.
func (p SinkPath) Segments() []SinkSegment {
	return slices.Clone(p.segments)
}

// Last returns the final segment.
func (p SinkPath) Last() SinkSegment {
	return p.segments[len(p.segments)-1]
}

// Split divides p at position at. The suffix is relative.
// Splitting a single-segment path returns (p, "@").
func (p SinkPath) Split(at int) (SinkPath, SinkPath, error) {
	prefix, rest, err := splitSegments(p.segments, at, p.String())
	if err != nil {
		return SinkPath{}, SinkPath{}, err
	}

	root := RelativeSinkRoot()

	return SinkPath{segments: slices.Clone(prefix)}, SinkPath{segments: concat(root.segments, rest)}, nil
}

// Parent returns p without its final segment, or p itself at the root.
func (p SinkPath) Parent() SinkPath {
	if len(p.segments) <= 1 {
		return p
	}

	return SinkPath{segments: slices.Clone(p.segments[:len(p.segments)-1])}
}

// Append joins a relative path to the end of p.
func (p SinkPath) Append(rel SinkPath) (SinkPath, error) {
	if !rel.IsRelative() {
		return SinkPath{}, fmt.Errorf("%w: %q", ErrNotRelative, rel.String())
	}

	return SinkPath{segments: concat(p.segments, rel.segments[1:])}, nil
}

// RelativeTo replaces the ancestor prefix of p with "@".
// It returns "@" when both paths are equal.
func (p SinkPath) RelativeTo(ancestor SinkPath) (SinkPath, error) {
	if p.Equal(ancestor) {
		return RelativeSinkRoot(), nil
	}

	if !p.IsDescendantOf(ancestor) {
		return SinkPath{}, fmt.Errorf("%w: %q of %q", ErrNotDescendant, p.String(), ancestor.String())
	}

	return SinkPath{segments: concat(RelativeSinkRoot().segments, p.segments[ancestor.Len():])}, nil
}

// IsDescendantOf reports whether ancestor is a strict prefix of p.
func (p SinkPath) IsDescendantOf(ancestor SinkPath) bool {
	return hasStrictPrefix(p.segments, ancestor.segments)
}

// Equal compares the parsed structure of two paths.
func (p SinkPath) Equal(other SinkPath) bool {
	return slices.Equal(p.segments, other.segments)
}

// String renders p in dot/bracket notation.
func (p SinkPath) String() string {
	var b strings.Builder

	for _, seg := range p.segments {
		switch seg.Kind {
		case SinkRoot:
			b.WriteString(seg.Name)
		case SinkField:
			b.WriteByte('.')
			b.WriteString(seg.Name)
		case SinkIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		case SinkSlice:
			b.WriteString(seg.Slice.String())
		}
	}

	return b.String()
}

// String renders the slice in bracket notation, e.g. "[1:5:2]" or "[:3]".
func (s Slice) String() string {
	bound := func(v int, ok bool) string {
		if !ok {
			return ""
		}

		return strconv.Itoa(v)
	}

	out := "[" + bound(s.Start, s.HasStart) + ":" + bound(s.Stop, s.HasStop)
	if s.HasStep {
		out += ":" + strconv.Itoa(s.Step)
	}

	return out + "]"
}

// Bounds resolves the slice against a sequence of length n and returns the
// selected positions in order. Out-of-range bounds are clamped and a
// negative step walks backwards.
func (s Slice) Bounds(n int) []int {
	step := 1
	if s.HasStep {
		step = s.Step
	}

	if step == 0 {
		return nil
	}

	clamp := func(v, lo, hi int) int {
		return max(lo, min(v, hi))
	}

	norm := func(v int) int {
		if v < 0 {
			return v + n
		}

		return v
	}

	var start, stop int

	if step > 0 {
		start, stop = 0, n
		if s.HasStart {
			start = clamp(norm(s.Start), 0, n)
		}

		if s.HasStop {
			stop = clamp(norm(s.Stop), 0, n)
		}
	} else {
		start, stop = n-1, -1
		if s.HasStart {
			start = clamp(norm(s.Start), -1, n-1)
		}

		if s.HasStop {
			stop = clamp(norm(s.Stop), -1, n-1)
		}
	}

	var out []int
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, i)
	}

	return out
}
