package paths

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Source root markers.
const (
	SourceAbsoluteRoot = "/"
	SourceRelativeRoot = "."
)

// SourceSegment is one step of a SourcePath: an element name with an
// optional 1-based repetition index, or a terminal attribute.
// The first segment of every path holds the root marker in Name.
type SourceSegment struct {
	Name      string
	Index     int
	HasIndex  bool
	Attribute bool
}

// String renders the segment as it appears in path text.
func (s SourceSegment) String() string {
	switch {
	case s.Attribute:
		return "@" + s.Name
	case s.HasIndex:
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	default:
		return s.Name
	}
}

// SourcePath addresses an element or attribute inside an XML document.
type SourcePath struct {
	segments []SourceSegment
}

// ParseSource parses slash-separated source path text.
// Names may be unprefixed, "prefix:local" or Clark "{uri}local".
func ParseSource(text string) (SourcePath, error) {
	if text == "" {
		return SourcePath{}, malformed(text, "empty path")
	}

	var (
		root string
		body string
	)

	switch {
	case text == SourceAbsoluteRoot:
		return AbsoluteSourceRoot(), nil
	case text == SourceRelativeRoot:
		return RelativeSourceRoot(), nil
	case strings.HasPrefix(text, "./"):
		root, body = SourceRelativeRoot, text[2:]
	case strings.HasPrefix(text, "/"):
		root, body = SourceAbsoluteRoot, text[1:]
	default:
		return SourcePath{}, malformed(text, "source path must start with '/' or '.'")
	}

	parts, err := splitOutsideBraces(text, body)
	if err != nil {
		return SourcePath{}, err
	}

	segments := []SourceSegment{{Name: root}}

	for i, part := range parts {
		seg, err := parseSourceSegment(text, part)
		if err != nil {
			return SourcePath{}, err
		}

		if seg.Attribute && i != len(parts)-1 {
			return SourcePath{}, malformed(text, "attribute must be the last segment")
		}

		segments = append(segments, seg)
	}

	return SourcePath{segments: segments}, nil
}

// MustParseSource is like ParseSource but panics on malformed input.
func MustParseSource(text string) SourcePath {
	p, err := ParseSource(text)
	if err != nil {
		panic(err)
	}

	return p
}

// AbsoluteSourceRoot returns the bare "/" path.
func AbsoluteSourceRoot() SourcePath {
	return SourcePath{segments: []SourceSegment{{Name: SourceAbsoluteRoot}}}
}

// RelativeSourceRoot returns the bare "." path.
func RelativeSourceRoot() SourcePath {
	return SourcePath{segments: []SourceSegment{{Name: SourceRelativeRoot}}}
}

// splitOutsideBraces splits s on '/' while keeping Clark "{uri}" groups intact.
func splitOutsideBraces(text, s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)

	for i := range len(s) {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, malformed(text, "unmatched '}'")
			}
		case '/':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, malformed(text, "unmatched '{'")
	}

	return append(parts, s[start:]), nil
}

func parseSourceSegment(text, part string) (SourceSegment, error) {
	switch part {
	case "":
		return SourceSegment{}, malformed(text, "empty segment")
	case ".", "..":
		return SourceSegment{}, malformed(text, fmt.Sprintf("step %q is only allowed as the root marker", part))
	}

	if strings.HasPrefix(part, "@") {
		name := part[1:]
		if name == "" {
			return SourceSegment{}, malformed(text, "empty attribute name")
		}

		if strings.ContainsAny(localName(name), "[]@*") {
			return SourceSegment{}, malformed(text, fmt.Sprintf("invalid attribute name %q", name))
		}

		return SourceSegment{Name: name, Attribute: true}, nil
	}

	name, index := part, ""

	// The brackets of a repetition index always follow the local name.
	if j := strings.LastIndexByte(part, '['); j >= 0 && j > strings.LastIndexByte(part, '}') {
		if !strings.HasSuffix(part, "]") {
			return SourceSegment{}, malformed(text, "unmatched '['")
		}

		name, index = part[:j], part[j+1:len(part)-1]
	}

	local := localName(name)
	if local == "" || strings.ContainsAny(local, "[]@*") {
		return SourceSegment{}, malformed(text, fmt.Sprintf("invalid element name %q", name))
	}

	if index == "" && name != part {
		return SourceSegment{}, malformed(text, "empty index")
	}

	if name == part {
		return SourceSegment{Name: name}, nil
	}

	if strings.IndexFunc(index, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return SourceSegment{}, malformed(text, fmt.Sprintf("invalid index %q", index))
	}

	n, err := strconv.Atoi(index)
	if err != nil {
		return SourceSegment{}, malformed(text, fmt.Sprintf("invalid index %q", index))
	}

	return SourceSegment{Name: name, Index: n, HasIndex: true}, nil
}

// IsZero reports whether p is the zero SourcePath.
func (p SourcePath) IsZero() bool {
	return len(p.segments) == 0
}

// IsAbsolute reports whether p starts with "/".
func (p SourcePath) IsAbsolute() bool {
	return !p.IsZero() && p.segments[0].Name == SourceAbsoluteRoot
}

// IsRelative reports whether p starts with ".".
func (p SourcePath) IsRelative() bool {
	return !p.IsZero() && p.segments[0].Name == SourceRelativeRoot
}

// IsRoot reports whether p consists of its root marker only.
func (p SourcePath) IsRoot() bool {
	return len(p.segments) == 1
}

// Len returns the number of segments, root marker included.
func (p SourcePath) Len() int {
	return len(p.segments)
}

// Segments returns the steps after the root marker.
func (p SourcePath) Segments() []SourceSegment {
	if len(p.segments) <= 1 {
		return nil
	}

	return slices.Clone(p.segments[1:])
}

// Last returns the final segment.
func (p SourcePath) Last() SourceSegment {
	return p.segments[len(p.segments)-1]
}

// IsAttribute reports whether p ends in an attribute.
func (p SourcePath) IsAttribute() bool {
	return !p.IsZero() && p.Last().Attribute
}

// AttributeName returns the attribute name of p, namespace prefix included.
func (p SourcePath) AttributeName() (string, error) {
	if !p.IsAttribute() {
		return "", fmt.Errorf("%w: %q", ErrNotAttribute, p.String())
	}

	return p.Last().Name, nil
}

// Parent returns p without its final segment, or p itself at the root.
func (p SourcePath) Parent() SourcePath {
	if len(p.segments) <= 1 {
		return p
	}

	return SourcePath{segments: slices.Clone(p.segments[:len(p.segments)-1])}
}

// Split divides p at position at. The suffix is relative.
func (p SourcePath) Split(at int) (SourcePath, SourcePath, error) {
	prefix, rest, err := splitSegments(p.segments, at, p.String())
	if err != nil {
		return SourcePath{}, SourcePath{}, err
	}

	return SourcePath{segments: slices.Clone(prefix)}, SourcePath{segments: concat(RelativeSourceRoot().segments, rest)}, nil
}

// Append joins a relative path to the end of p.
func (p SourcePath) Append(rel SourcePath) (SourcePath, error) {
	if !rel.IsRelative() {
		return SourcePath{}, fmt.Errorf("%w: %q", ErrNotRelative, rel.String())
	}

	if p.IsAttribute() && !rel.IsRoot() {
		return SourcePath{}, malformed(p.String()+rel.String()[1:], "attribute must be the last segment")
	}

	return SourcePath{segments: concat(p.segments, rel.segments[1:])}, nil
}

// RelativeTo replaces the ancestor prefix of p with ".".
// It returns "." when both paths are equal.
func (p SourcePath) RelativeTo(ancestor SourcePath) (SourcePath, error) {
	if p.Equal(ancestor) {
		return RelativeSourceRoot(), nil
	}

	if !p.IsDescendantOf(ancestor) {
		return SourcePath{}, fmt.Errorf("%w: %q of %q", ErrNotDescendant, p.String(), ancestor.String())
	}

	return SourcePath{segments: concat(RelativeSourceRoot().segments, p.segments[ancestor.Len():])}, nil
}

// IsDescendantOf reports whether ancestor is a strict prefix of p.
func (p SourcePath) IsDescendantOf(ancestor SourcePath) bool {
	return hasStrictPrefix(p.segments, ancestor.segments)
}

// Equal compares the parsed structure of two paths.
func (p SourcePath) Equal(other SourcePath) bool {
	return slices.Equal(p.segments, other.segments)
}

// ShortenNamespaces rewrites every Clark "{uri}local" name to "prefix:local"
// using a reverse lookup in ns.
func (p SourcePath) ShortenNamespaces(ns Namespaces) (SourcePath, error) {
	out := slices.Clone(p.segments)

	for i := 1; i < len(out); i++ {
		name, err := shortenName(out[i].Name, ns)
		if err != nil {
			return SourcePath{}, fmt.Errorf("shorten %q: %w", p.String(), err)
		}

		out[i].Name = name
	}

	return SourcePath{segments: out}, nil
}

// RemoveIndices drops every repetition index.
func (p SourcePath) RemoveIndices() SourcePath {
	out := slices.Clone(p.segments)
	for i := range out {
		out[i].Index, out[i].HasIndex = 0, false
	}

	return SourcePath{segments: out}
}

// ToSinkPath bridges p into the sink family: "/" becomes "$", "." becomes
// "@", attributes are renamed to attributeTag+name and 1-based repetition
// indices become 0-based sink indices. With keepNamespaces false, prefixes
// are dropped from every name.
func (p SourcePath) ToSinkPath(attributeTag string, keepNamespaces bool) (SinkPath, error) {
	if p.IsZero() {
		return SinkPath{}, malformed("", "empty path")
	}

	root := AbsoluteSinkRoot()
	if p.IsRelative() {
		root = RelativeSinkRoot()
	}

	segments := root.segments

	for _, seg := range p.segments[1:] {
		name := seg.Name

		if keepNamespaces {
			if _, _, ok := SplitClark(name); ok {
				return SinkPath{}, malformed(p.String(), "namespaces must be shortened before conversion")
			}
		} else {
			name = localName(name)
		}

		if seg.Attribute {
			name = attributeTag + name
		}

		segments = append(segments, SinkSegment{Kind: SinkField, Name: name})

		if !seg.HasIndex {
			continue
		}

		if seg.Index <= 0 {
			return SinkPath{}, malformed(p.String(), fmt.Sprintf("repetition index %d must be at least 1", seg.Index))
		}

		segments = append(segments, SinkSegment{Kind: SinkIndex, Index: seg.Index - 1})
	}

	return SinkPath{segments: segments}, nil
}

// String renders p in slash notation.
func (p SourcePath) String() string {
	if p.IsZero() {
		return ""
	}

	if p.IsRoot() {
		return p.segments[0].Name
	}

	var b strings.Builder

	if p.IsRelative() {
		b.WriteString(SourceRelativeRoot)
	}

	for _, seg := range p.segments[1:] {
		b.WriteByte('/')
		b.WriteString(seg.String())
	}

	return b.String()
}
