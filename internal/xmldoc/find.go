package xmldoc

import (
	"jsonize/internal/paths"
)

// FindAll returns every element matched by p in document order. Relative
// paths are evaluated from n; absolute ones from the document n belongs to.
// A "[k]" index selects the k-th same-name child of each parent.
func (n *Node) FindAll(p paths.SourcePath, ns paths.Namespaces) ([]*Node, error) {
	if p.IsAttribute() {
		return nil, &paths.MalformedPathError{Path: p.String(), Reason: "path selects an attribute, not an element"}
	}

	return n.evaluate(p, ns)
}

// FindFirst returns the first element matched by p, or nil.
func (n *Node) FindFirst(p paths.SourcePath, ns paths.Namespaces) (*Node, error) {
	return first(n.FindAll(p, ns))
}

// Value returns the text of the first element, or the value of the
// attribute, selected by p.
func (n *Node) Value(p paths.SourcePath, ns paths.Namespaces) (string, bool, error) {
	if p.IsAttribute() {
		name, err := p.AttributeName()
		if err != nil {
			return "", false, err
		}

		owner, err := first(n.evaluate(p.Parent(), ns))
		if err != nil || owner == nil {
			return "", false, err
		}

		return owner.Attr(name, ns)
	}

	node, err := first(n.evaluate(p, ns))
	if err != nil || node == nil {
		return "", false, err
	}

	text, ok := node.Text()

	return text, ok, nil
}

func (n *Node) evaluate(p paths.SourcePath, ns paths.Namespaces) ([]*Node, error) {
	if p.IsZero() {
		return nil, &paths.MalformedPathError{Reason: "empty path"}
	}

	segments := p.Segments()

	if p.IsRelative() {
		return walk([]*Node{n}, segments, ns)
	}

	if len(segments) == 0 {
		return nil, nil
	}

	root := n.top()

	ok, err := root.matches(segments[0], ns)
	if err != nil || !ok {
		return nil, err
	}

	if segments[0].HasIndex && segments[0].Index != 1 {
		return nil, nil
	}

	return walk([]*Node{root}, segments[1:], ns)
}

func walk(context []*Node, segments []paths.SourceSegment, ns paths.Namespaces) ([]*Node, error) {
	for _, seg := range segments {
		uri, local, err := resolveName(seg.Name, ns, true)
		if err != nil {
			return nil, err
		}

		var next []*Node

		for _, parent := range context {
			count := 0

			for _, child := range parent.children {
				if child.name.Space != uri || child.name.Local != local {
					continue
				}

				count++

				if seg.HasIndex && count != seg.Index {
					continue
				}

				next = append(next, child)
			}
		}

		if len(next) == 0 {
			return nil, nil
		}

		context = next
	}

	return context, nil
}

func (n *Node) matches(seg paths.SourceSegment, ns paths.Namespaces) (bool, error) {
	uri, local, err := resolveName(seg.Name, ns, true)
	if err != nil {
		return false, err
	}

	return n.name.Space == uri && n.name.Local == local, nil
}

// resolveName splits a path name into namespace URI and local part.
// Unprefixed element names take the default namespace (the "" entry of ns);
// unprefixed attribute names have no namespace.
func resolveName(name string, ns paths.Namespaces, element bool) (string, string, error) {
	if uri, local, ok := paths.SplitClark(name); ok {
		return uri, local, nil
	}

	prefix, local := paths.SplitQName(name)
	if prefix == "" {
		if element {
			return ns[""], local, nil
		}

		return "", local, nil
	}

	uri, err := ns.Resolve(prefix)
	if err != nil {
		return "", "", err
	}

	return uri, local, nil
}

func first(nodes []*Node, err error) (*Node, error) {
	if err != nil || len(nodes) == 0 {
		return nil, err
	}

	return nodes[0], nil
}
