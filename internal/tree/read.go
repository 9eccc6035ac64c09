package tree

import (
	"jsonize/internal/paths"
)

// Read returns the value at p inside doc. Documents are built from
// map[string]any, []any and scalars. Root markers are no-ops.
func Read(doc any, p paths.SinkPath) (any, error) {
	cur := doc

	for i, seg := range p.Segments() {
		switch seg.Kind {
		case paths.SinkRoot:
			continue
		case paths.SinkField:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, &NotIndexableError{Path: subPath(p, i+1)}
			}

			v, ok := m[seg.Name]
			if !ok {
				return nil, &PathNotFoundError{Path: subPath(p, i+1)}
			}

			cur = v
		case paths.SinkIndex:
			a, ok := cur.([]any)
			if !ok {
				return nil, &NotIndexableError{Path: subPath(p, i+1)}
			}

			idx, ok := normalizeIndex(seg.Index, len(a))
			if !ok {
				return nil, &PathNotFoundError{Path: subPath(p, i+1)}
			}

			cur = a[idx]
		case paths.SinkSlice:
			a, ok := cur.([]any)
			if !ok {
				return nil, &NotIndexableError{Path: subPath(p, i+1)}
			}

			out := []any{}
			for _, idx := range seg.Slice.Bounds(len(a)) {
				out = append(out, a[idx])
			}

			cur = out
		}
	}

	return cur, nil
}

// Exists reports whether p resolves inside doc.
func Exists(doc any, p paths.SinkPath) bool {
	_, err := Read(doc, p)

	return err == nil
}

// normalizeIndex maps a possibly negative index onto [0, n).
func normalizeIndex(idx, n int) (int, bool) {
	if idx < 0 {
		idx += n
	}

	return idx, idx >= 0 && idx < n
}

// subPath returns the first n segments of p.
func subPath(p paths.SinkPath, n int) paths.SinkPath {
	prefix, _, err := p.Split(n)
	if err != nil {
		return p
	}

	return prefix
}
