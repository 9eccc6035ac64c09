package interp

import (
	"errors"
	"fmt"
	"log/slog"

	"jsonize/internal/mapping"
	"jsonize/internal/paths"
	"jsonize/internal/tree"
	"jsonize/internal/xmldoc"
)

var (
	errNotArray  = errors.New("not an array")
	errNotObject = errors.New("not an object")
)

// Interpreter applies NodeMaps to source documents. It holds no per-job
// state and is safe for concurrent use.
type Interpreter struct {
	ignoreEmpty bool
	namespaces  paths.Namespaces
	logger      *slog.Logger
}

// New creates an Interpreter. Absent source nodes are skipped unless
// WithIgnoreEmpty(false) is given.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		ignoreEmpty: true,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// xmlSource is a context XML origins are evaluated against: a whole
// document or one of its elements.
type xmlSource interface {
	FindAll(p paths.SourcePath, ns paths.Namespaces) ([]*xmldoc.Node, error)
	Value(p paths.SourcePath, ns paths.Namespaces) (string, bool, error)
}

// Run applies maps to src in order, threading the sink document through
// every step. On error nothing is returned, so a job never yields partial
// output.
//
// src is an *xmldoc.Document or *xmldoc.Node for XML origins, or a JSON-like
// value (maps, slices and scalars) for JSON origins.
func (in *Interpreter) Run(src, sink any, maps []*mapping.NodeMap) (any, error) {
	ns := in.table(src)

	out := sink

	for i, m := range maps {
		next, err := in.apply(src, out, m, ns)
		if err != nil {
			return nil, fmt.Errorf("mapping %d (%s): %w", i, m, err)
		}

		out = next
	}

	in.logger.Debug("applied mappings", "count", len(maps))

	return out, nil
}

// Map applies a single NodeMap and returns the updated sink.
func (in *Interpreter) Map(src, sink any, m *mapping.NodeMap) (any, error) {
	return in.apply(src, sink, m, in.table(src))
}

func (in *Interpreter) table(src any) paths.Namespaces {
	if in.namespaces != nil {
		return in.namespaces
	}

	if doc, ok := src.(*xmldoc.Document); ok {
		return doc.LookupTable()
	}

	return paths.Namespaces{}
}

func (in *Interpreter) apply(src, sink any, m *mapping.NodeMap, ns paths.Namespaces) (any, error) {
	switch o := m.From().(type) {
	case mapping.XMLOrigin:
		xs, ok := src.(xmlSource)
		if !ok {
			return nil, fmt.Errorf("%w: %T for XML path %s", ErrUnsupportedSource, src, o.Path)
		}

		return in.mapXML(xs, sink, m, o, ns)
	case mapping.JSONOrigin:
		if _, ok := src.(xmlSource); ok {
			return nil, fmt.Errorf("%w: %T for JSON path %s", ErrUnsupportedSource, src, o.Path)
		}

		return in.mapJSON(src, sink, m, o, ns)
	default:
		return nil, fmt.Errorf("%w: origin %T", ErrUnsupportedSource, o)
	}
}

func (in *Interpreter) mapXML(src xmlSource, sink any, m *mapping.NodeMap, o mapping.XMLOrigin, ns paths.Namespaces) (any, error) {
	path := o.Path.String()

	switch o.Kind {
	case mapping.NodeValue, mapping.NodeAttribute:
		text, found, err := src.Value(o.Path, ns)
		if err != nil {
			return nil, err
		}

		var v any
		if found {
			v = text
		}

		v, err = in.transform(m, path, v)
		if err != nil {
			return nil, err
		}

		return in.writeScalar(sink, m, path, v)
	case mapping.NodeSequence:
		items := m.Items()
		if len(items) == 0 {
			return nil, &mapping.MissingItemMapsError{Path: path, Kind: o.Kind}
		}

		nodes, err := src.FindAll(o.Path, ns)
		if err != nil {
			return nil, err
		}

		nodes, err = in.transformNodes(m, path, nodes)
		if err != nil {
			return nil, err
		}

		return in.writeSequence(sink, m.To(), path, len(nodes), func(i int) (any, error) {
			return in.item(nodes[i], items, ns)
		})
	case mapping.NodeElement:
		items := m.Items()
		if len(items) == 0 {
			return nil, &mapping.MissingItemMapsError{Path: path, Kind: o.Kind}
		}

		nodes, err := src.FindAll(o.Path, ns)
		if err != nil {
			return nil, err
		}

		nodes, err = in.transformNodes(m, path, nodes)
		if err != nil {
			return nil, err
		}

		if len(nodes) == 0 {
			return in.writeAbsent(sink, m.To(), path)
		}

		acc, err := in.item(nodes[0], items, ns)
		if err != nil {
			return nil, err
		}

		return in.write(sink, m.To(), path, acc)
	default:
		return nil, &mapping.UnsupportedNodeKindError{Kind: o.Kind.String()}
	}
}

func (in *Interpreter) mapJSON(src, sink any, m *mapping.NodeMap, o mapping.JSONOrigin, ns paths.Namespaces) (any, error) {
	path := o.Path.String()

	v, err := tree.Read(src, o.Path)
	if err != nil {
		var nf *tree.PathNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}

		v = nil
	}

	v, err = in.transform(m, path, v)
	if err != nil {
		return nil, err
	}

	items := m.Items()

	switch {
	case o.Kind == mapping.SinkArray && len(items) > 0:
		var elems []any

		if v != nil {
			arr, ok := v.([]any)
			if !ok {
				return nil, &CastError{Path: path, Text: fmt.Sprint(v), Kind: o.Kind, Err: errNotArray}
			}

			elems = arr
		}

		return in.writeSequence(sink, m.To(), path, len(elems), func(i int) (any, error) {
			return in.item(elems[i], items, ns)
		})
	case o.Kind == mapping.SinkObject && len(items) > 0:
		if v == nil {
			return in.writeAbsent(sink, m.To(), path)
		}

		obj, ok := v.(map[string]any)
		if !ok {
			return nil, &CastError{Path: path, Text: fmt.Sprint(v), Kind: o.Kind, Err: errNotObject}
		}

		acc, err := in.item(obj, items, ns)
		if err != nil {
			return nil, err
		}

		return in.write(sink, m.To(), path, acc)
	default:
		return in.writeScalar(sink, m, path, v)
	}
}

// item runs item maps against ctx into a fresh object accumulator.
func (in *Interpreter) item(ctx any, items []*mapping.NodeMap, ns paths.Namespaces) (any, error) {
	var acc any = map[string]any{}

	for _, im := range items {
		next, err := in.apply(ctx, acc, im, ns)
		if err != nil {
			return nil, err
		}

		acc = next
	}

	return acc, nil
}

func (in *Interpreter) transform(m *mapping.NodeMap, path string, v any) (any, error) {
	fn := m.Transform()
	if fn == nil {
		return v, nil
	}

	out, err := fn(v)
	if err != nil {
		return nil, &TransformError{Name: m.TransformName(), Path: path, Err: err}
	}

	return out, nil
}

// transformNodes runs the transform of a sequence or element on the matched
// nodes. The transform must return a node list.
func (in *Interpreter) transformNodes(m *mapping.NodeMap, path string, nodes []*xmldoc.Node) ([]*xmldoc.Node, error) {
	if m.Transform() == nil {
		return nodes, nil
	}

	out, err := in.transform(m, path, nodes)
	if err != nil || out == nil {
		return nil, err
	}

	result, ok := out.([]*xmldoc.Node)
	if !ok {
		return nil, &TransformError{
			Name: m.TransformName(),
			Path: path,
			Err:  fmt.Errorf("expected []*xmldoc.Node, got %T", out),
		}
	}

	return result, nil
}

func (in *Interpreter) writeScalar(sink any, m *mapping.NodeMap, path string, v any) (any, error) {
	if v == nil {
		return in.writeAbsent(sink, m.To(), path)
	}

	out, err := cast(v, m.To().Kind, path)
	if err != nil {
		return nil, err
	}

	return in.write(sink, m.To(), path, out)
}

// writeAbsent handles a source that matched nothing.
func (in *Interpreter) writeAbsent(sink any, to mapping.Target, path string) (any, error) {
	if in.ignoreEmpty {
		in.logger.Debug("skipped absent source", "from", path, "to", to.Path.String())
		return sink, nil
	}

	return in.write(sink, to, path, nil)
}

// writeSequence writes n items built by build as an array at to. The array
// is created first unless the sink already holds one there.
func (in *Interpreter) writeSequence(sink any, to mapping.Target, path string, n int, build func(i int) (any, error)) (any, error) {
	if n == 0 && in.ignoreEmpty {
		in.logger.Debug("skipped empty sequence", "from", path, "to", to.Path.String())
		return sink, nil
	}

	cur, err := tree.Read(sink, to.Path)
	if _, isArray := cur.([]any); err != nil || !isArray {
		sink, err = tree.Write(sink, to.Path, []any{})
		if err != nil {
			return nil, err
		}
	}

	for i := range n {
		item, err := build(i)
		if err != nil {
			return nil, err
		}

		sink, err = tree.Write(sink, to.Path, item)
		if err != nil {
			return nil, err
		}
	}

	in.logger.Debug("mapped sequence", "from", path, "to", to.Path.String(), "items", n)

	return sink, nil
}

func (in *Interpreter) write(sink any, to mapping.Target, path string, v any) (any, error) {
	out, err := tree.Write(sink, to.Path, v)
	if err != nil {
		return nil, err
	}

	in.logger.Debug("mapped", "from", path, "to", to.Path.String())

	return out, nil
}
