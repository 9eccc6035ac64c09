package infer

import (
	"cmp"
	"fmt"
	"slices"

	"jsonize/internal/mapping"
	"jsonize/internal/paths"
	"jsonize/internal/xmldoc"
)

// Node is one resolved location of an inferred tree. Paths are absolute,
// with repetition indices removed. Only sequences have items.
type Node struct {
	Path  paths.SourcePath
	Kind  mapping.NodeKind
	Items []*Node

	order int
}

// Tree is the inferred structure of a document: the top-level leaves and
// sequences in document order.
type Tree struct {
	Nodes []*Node
}

// Classify returns the kind of an indexed location: attributes end in "@x",
// sequences in an indexed segment and everything else is a value.
func Classify(p paths.SourcePath) mapping.NodeKind {
	switch {
	case p.IsAttribute():
		return mapping.NodeAttribute
	case p.Len() > 1 && p.Last().HasIndex:
		return mapping.NodeSequence
	default:
		return mapping.NodeValue
	}
}

// BuildTree enumerates the locations of doc and resolves its sequences.
// Namespace URIs are shortened with ns, or with the table of the document
// root when ns is nil.
func BuildTree(doc *xmldoc.Document, ns paths.Namespaces) (*Tree, error) {
	if ns == nil {
		ns = doc.LookupTable()
	}

	locs, err := doc.Locations(ns)
	if err != nil {
		return nil, fmt.Errorf("enumerate locations: %w", err)
	}

	var (
		all       []*Node
		sequences []*Node
		seen      = map[string]bool{}
	)

	for i, loc := range locs {
		kind := Classify(loc)
		path := loc.RemoveIndices()

		if kind == mapping.NodeSequence {
			key := "seq " + path.String()
			if !seen[key] {
				seen[key] = true
				sequences = append(sequences, &Node{Path: path, Kind: kind, order: i})
			}

			// The same location is also a plain value candidate.
			kind = mapping.NodeValue
		}

		key := kind.String() + " " + path.String()
		if !seen[key] {
			seen[key] = true
			all = append(all, &Node{Path: path, Kind: kind, order: i})
		}
	}

	leaves := make([]*Node, 0, len(all))

	for _, n := range all {
		if isLeaf(n, all) {
			leaves = append(leaves, n)
		}
	}

	return &Tree{Nodes: resolve(sequences, leaves)}, nil
}

// isLeaf reports whether no element location lies below n. Attributes are
// always leaves.
func isLeaf(n *Node, all []*Node) bool {
	if n.Kind == mapping.NodeAttribute {
		return true
	}

	for _, other := range all {
		if other.Kind != mapping.NodeAttribute && other.Path.IsDescendantOf(n.Path) {
			return false
		}
	}

	return true
}

// resolve eliminates sequences until none is pending. Each pass takes the
// sequences with no pending sequence below them, moves the leaves under them
// into their items and turns them into leaves. Every pass removes at least
// one sequence, so the loop ends.
func resolve(sequences, leaves []*Node) []*Node {
	for len(sequences) > 0 {
		var pending, built []*Node

		for _, seq := range sequences {
			if !isInnermost(seq, sequences) {
				pending = append(pending, seq)
				continue
			}

			var rest []*Node

			for _, leaf := range leaves {
				if absorbs(seq, leaf) {
					seq.Items = append(seq.Items, leaf)
				} else {
					rest = append(rest, leaf)
				}
			}

			leaves = rest

			sortByOrder(seq.Items)
			built = append(built, seq)
		}

		sequences = pending
		leaves = append(leaves, built...)
	}

	sortByOrder(leaves)

	return leaves
}

func isInnermost(seq *Node, sequences []*Node) bool {
	for _, other := range sequences {
		if other.Path.IsDescendantOf(seq.Path) {
			return false
		}
	}

	return true
}

// absorbs reports whether leaf belongs to the items of seq. The value of the
// repeated element itself becomes the "." item.
func absorbs(seq, leaf *Node) bool {
	if leaf.Path.IsDescendantOf(seq.Path) {
		return true
	}

	return leaf.Kind == mapping.NodeValue && leaf.Path.Equal(seq.Path)
}

func sortByOrder(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return cmp.Compare(a.order, b.order)
	})
}
