package mapping

import (
	"fmt"
	"slices"

	"jsonize/internal/paths"
)

// Origin is where a NodeMap takes its value from. It is implemented by
// XMLOrigin and JSONOrigin only.
type Origin interface {
	fmt.Stringer

	origin()
}

// XMLOrigin selects nodes of a parsed XML document.
type XMLOrigin struct {
	Path paths.SourcePath
	Kind NodeKind
}

func (XMLOrigin) origin() {}

func (o XMLOrigin) String() string {
	return fmt.Sprintf("%s %s", o.Kind, o.Path)
}

// JSONOrigin selects a value of a JSON-like document, for chaining one
// sink document into another.
type JSONOrigin struct {
	Path paths.SinkPath
	Kind SinkKind
}

func (JSONOrigin) origin() {}

func (o JSONOrigin) String() string {
	return fmt.Sprintf("%s %s", o.Kind, o.Path)
}

// Target is where a NodeMap writes its value.
type Target struct {
	Path paths.SinkPath
	Kind SinkKind
}

func (t Target) String() string {
	return fmt.Sprintf("%s %s", t.Kind, t.Path)
}

// Transform converts an extracted value before it is cast. For XML
// sequences the input is the list of matched nodes.
type Transform func(any) (any, error)

// NodeMap binds one source location to one sink location.
// A NodeMap is immutable once built.
type NodeMap struct {
	from          Origin
	to            Target
	transformName string
	transform     Transform
	items         []*NodeMap
}

// NewNodeMap builds a NodeMap. Item maps are applied in the given order.
func NewNodeMap(from Origin, to Target, items ...*NodeMap) *NodeMap {
	return &NodeMap{
		from:  from,
		to:    to,
		items: slices.Clone(items),
	}
}

// WithTransform returns a copy of m that applies fn under the given name.
func (m *NodeMap) WithTransform(name string, fn Transform) *NodeMap {
	out := *m
	out.transformName = name
	out.transform = fn

	return &out
}

// From returns the origin of m.
func (m *NodeMap) From() Origin {
	return m.from
}

// To returns the target of m.
func (m *NodeMap) To() Target {
	return m.to
}

// Transform returns the attached transform, or nil.
func (m *NodeMap) Transform() Transform {
	return m.transform
}

// TransformName returns the registry name of the attached transform.
func (m *NodeMap) TransformName() string {
	return m.transformName
}

// Items returns the item maps of m.
func (m *NodeMap) Items() []*NodeMap {
	return slices.Clone(m.items)
}

func (m *NodeMap) String() string {
	return fmt.Sprintf("%s -> %s", m.from, m.to)
}

// Record returns the declarative form of m.
func (m *NodeMap) Record() Record {
	var from Endpoint

	switch o := m.from.(type) {
	case XMLOrigin:
		from = Endpoint{Path: o.Path.String(), Type: o.Kind.String()}
	case JSONOrigin:
		from = Endpoint{Path: o.Path.String(), Type: o.Kind.String()}
	}

	rec := Record{
		From:           from,
		To:             Endpoint{Path: m.to.Path.String(), Type: m.to.Kind.String()},
		Transformation: m.transformName,
	}

	for _, item := range m.items {
		rec.ItemMappings = append(rec.ItemMappings, item.Record())
	}

	return rec
}

// implicitValueItem is the item map given to a sequence declared without
// item maps: the text of each matched node is written as the array item.
func implicitValueItem() *NodeMap {
	return NewNodeMap(
		XMLOrigin{Path: paths.RelativeSourceRoot(), Kind: NodeValue},
		Target{Path: paths.RelativeSinkRoot(), Kind: SinkInfer},
	)
}
