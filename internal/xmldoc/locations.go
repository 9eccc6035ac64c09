package xmldoc

import (
	"encoding/xml"
	"strconv"

	"jsonize/internal/paths"
)

// Locations returns the absolute path of every element and attribute of d in
// document order, each element followed by its attributes. A "[k]" index is
// added only where an element has same-name siblings. Namespace URIs are
// shortened with ns.
func (d *Document) Locations(ns paths.Namespaces) ([]paths.SourcePath, error) {
	var out []paths.SourcePath

	err := d.root.locations(paths.SourceAbsoluteRoot+paths.Clark(d.root.name.Space, d.root.name.Local), ns, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (n *Node) locations(text string, ns paths.Namespaces, out *[]paths.SourcePath) error {
	err := appendLocation(text, ns, out)
	if err != nil {
		return err
	}

	for _, a := range n.attrs {
		err := appendLocation(text+"/@"+paths.Clark(a.Name.Space, a.Name.Local), ns, out)
		if err != nil {
			return err
		}
	}

	counts := make(map[xml.Name]int, len(n.children))
	for _, child := range n.children {
		counts[child.name]++
	}

	seen := make(map[xml.Name]int, len(counts))

	for _, child := range n.children {
		seen[child.name]++

		step := paths.Clark(child.name.Space, child.name.Local)
		if counts[child.name] > 1 {
			step += "[" + strconv.Itoa(seen[child.name]) + "]"
		}

		err := child.locations(text+"/"+step, ns, out)
		if err != nil {
			return err
		}
	}

	return nil
}

func appendLocation(text string, ns paths.Namespaces, out *[]paths.SourcePath) error {
	p, err := paths.ParseSource(text)
	if err != nil {
		return err
	}

	p, err = p.ShortenNamespaces(ns)
	if err != nil {
		return err
	}

	*out = append(*out, p)

	return nil
}
