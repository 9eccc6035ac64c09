package xmldoc

import (
	"encoding/xml"
	"slices"

	"jsonize/internal/paths"
)

// Node is an element of a parsed document.
type Node struct {
	name     xml.Name
	attrs    []xml.Attr
	decls    map[string]string
	parent   *Node
	children []*Node

	text    string
	hasText bool
	// closed is set once a child element, comment or processing instruction
	// ends the leading text.
	closed bool
}

func newNode(start xml.StartElement) *Node {
	n := &Node{name: start.Name}

	for _, a := range start.Attr {
		switch {
		case a.Name.Space == xmlnsPrefix:
			n.declare(a.Name.Local, a.Value)
		case a.Name.Space == "" && a.Name.Local == xmlnsPrefix:
			n.declare("", a.Value)
		default:
			n.attrs = append(n.attrs, a)
		}
	}

	return n
}

func (n *Node) declare(prefix, uri string) {
	if n.decls == nil {
		n.decls = map[string]string{}
	}

	n.decls[prefix] = uri
}

func (n *Node) addText(data xml.CharData) {
	if n.closed {
		return
	}

	n.text += string(data)
	n.hasText = n.text != ""
}

// Name returns the element name in Clark notation.
func (n *Node) Name() string {
	return paths.Clark(n.name.Space, n.name.Local)
}

// Space returns the namespace URI of the element.
func (n *Node) Space() string {
	return n.name.Space
}

// Text returns the character data before the first child element.
func (n *Node) Text() (string, bool) {
	return n.text, n.hasText
}

// Attr returns the value of the attribute called name, which may be
// unprefixed, "prefix:local" or Clark notation. Unprefixed attribute names
// are never in a namespace.
func (n *Node) Attr(name string, ns paths.Namespaces) (string, bool, error) {
	uri, local, err := resolveName(name, ns, false)
	if err != nil {
		return "", false, err
	}

	for _, a := range n.attrs {
		if a.Name.Space == uri && a.Name.Local == local {
			return a.Value, true, nil
		}
	}

	return "", false, nil
}

// Children returns the child elements of n.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Parent returns the parent element, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// top returns the root element of the document n belongs to.
func (n *Node) top() *Node {
	for n.parent != nil {
		n = n.parent
	}

	return n
}
