package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"jsonize/internal/paths"
)

// ErrNoRoot is returned when a document has no root element.
var ErrNoRoot = errors.New("xml document has no root element")

const xmlnsPrefix = "xmlns"

// Document is a parsed XML document.
type Document struct {
	root *Node
}

// Parse reads a whole XML document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := newNode(t)

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}

				root = n
			} else {
				parent := stack[len(stack)-1]
				n.parent = parent
				parent.children = append(parent.children, n)
				parent.closed = true
			}

			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].addText(t)
			}
		case xml.Comment, xml.ProcInst:
			if len(stack) > 0 {
				stack[len(stack)-1].closed = true
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}

	return &Document{root: root}, nil
}

// ParseBytes parses an in-memory XML document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile parses the XML document stored at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xml document %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Root returns the root element.
func (d *Document) Root() *Node {
	return d.root
}

// Namespaces returns the prefixed namespaces declared on the root element.
// The default namespace is not included; see DefaultNamespace.
func (d *Document) Namespaces() paths.Namespaces {
	ns := paths.Namespaces{}

	for prefix, uri := range d.root.decls {
		if prefix != "" {
			ns[prefix] = uri
		}
	}

	return ns
}

// DefaultNamespace returns the default namespace declared on the root
// element, or "" when there is none.
func (d *Document) DefaultNamespace() string {
	return d.root.decls[""]
}

// LookupTable returns the namespace table used to resolve paths against d
// when the caller supplies none: the root's prefixed namespaces plus the
// default namespace under the empty prefix.
func (d *Document) LookupTable() paths.Namespaces {
	ns := d.Namespaces()
	if uri := d.DefaultNamespace(); uri != "" {
		ns[""] = uri
	}

	return ns
}

// FindAll returns every element matched by p, in document order. Absolute
// paths are evaluated from the document; relative ones from the root element.
func (d *Document) FindAll(p paths.SourcePath, ns paths.Namespaces) ([]*Node, error) {
	return d.root.FindAll(p, ns)
}

// FindFirst returns the first element matched by p, or nil.
func (d *Document) FindFirst(p paths.SourcePath, ns paths.Namespaces) (*Node, error) {
	return first(d.FindAll(p, ns))
}

// Value returns the text of the element, or the value of the attribute,
// selected by p. ok is false when nothing matches or the element has no text.
func (d *Document) Value(p paths.SourcePath, ns paths.Namespaces) (string, bool, error) {
	return d.root.Value(p, ns)
}
