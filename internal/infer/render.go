package infer

import (
	"fmt"

	"jsonize/internal/mapping"
	"jsonize/internal/paths"
	"jsonize/internal/xmldoc"
)

// Options control how inferred locations are named in the sink.
type Options struct {
	// ValueKey is the key element text is written under. When empty the
	// text is written at the element path itself.
	ValueKey string
	// AttributeTag is prepended to attribute names.
	AttributeTag string
	// KeepNamespaces keeps namespace prefixes in sink names.
	KeepNamespaces bool
	// Namespaces shortens namespace URIs. Nil means the table declared on
	// the document root.
	Namespaces paths.Namespaces
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ValueKey:       "value",
		KeepNamespaces: true,
	}
}

// Infer builds the mapping document of doc.
func Infer(doc *xmldoc.Document, opts Options) (*mapping.Document, error) {
	t, err := BuildTree(doc, opts.Namespaces)
	if err != nil {
		return nil, err
	}

	return t.Records(opts)
}

// Records renders t as a mapping document.
func (t *Tree) Records(opts Options) (*mapping.Document, error) {
	maps, err := t.NodeMaps(opts)
	if err != nil {
		return nil, err
	}

	return mapping.Records(maps), nil
}

// NodeMaps renders t as NodeMaps ready for interpretation.
func (t *Tree) NodeMaps(opts Options) ([]*mapping.NodeMap, error) {
	r := renderer{opts: opts}

	maps := make([]*mapping.NodeMap, 0, len(t.Nodes))

	for _, n := range t.Nodes {
		m, err := r.node(n, paths.SourcePath{})
		if err != nil {
			return nil, err
		}

		maps = append(maps, m)
	}

	return maps, nil
}

type renderer struct {
	opts Options
}

// node renders n, relative to parent unless parent is zero.
func (r renderer) node(n *Node, parent paths.SourcePath) (*mapping.NodeMap, error) {
	from := n.Path

	if !parent.IsZero() {
		rel, err := n.Path.RelativeTo(parent)
		if err != nil {
			return nil, err
		}

		from = rel
	}

	to, err := from.ToSinkPath(r.opts.AttributeTag, r.opts.KeepNamespaces)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", n.Path, err)
	}

	origin := mapping.XMLOrigin{Path: from, Kind: n.Kind}

	switch n.Kind {
	case mapping.NodeSequence:
		items, err := r.items(n)
		if err != nil {
			return nil, err
		}

		return mapping.NewNodeMap(origin, mapping.Target{Path: to, Kind: mapping.SinkArray}, items...), nil
	case mapping.NodeValue:
		to, err = r.valuePath(to)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", n.Path, err)
		}
	}

	return mapping.NewNodeMap(origin, mapping.Target{Path: to, Kind: mapping.SinkInfer}), nil
}

func (r renderer) items(seq *Node) ([]*mapping.NodeMap, error) {
	if len(seq.Items) == 0 {
		m, err := r.implicitItem()
		if err != nil {
			return nil, err
		}

		return []*mapping.NodeMap{m}, nil
	}

	items := make([]*mapping.NodeMap, 0, len(seq.Items))

	for _, item := range seq.Items {
		m, err := r.node(item, seq.Path)
		if err != nil {
			return nil, err
		}

		items = append(items, m)
	}

	return items, nil
}

// implicitItem maps the text of each repeated element.
func (r renderer) implicitItem() (*mapping.NodeMap, error) {
	to, err := r.valuePath(paths.RelativeSinkRoot())
	if err != nil {
		return nil, err
	}

	return mapping.NewNodeMap(
		mapping.XMLOrigin{Path: paths.RelativeSourceRoot(), Kind: mapping.NodeValue},
		mapping.Target{Path: to, Kind: mapping.SinkInfer},
	), nil
}

func (r renderer) valuePath(to paths.SinkPath) (paths.SinkPath, error) {
	if r.opts.ValueKey == "" {
		return to, nil
	}

	key, err := paths.ParseSink(paths.SinkRelativeRoot + "." + r.opts.ValueKey)
	if err != nil {
		return paths.SinkPath{}, fmt.Errorf("value key %q: %w", r.opts.ValueKey, err)
	}

	return to.Append(key)
}
