package tree

import (
	"maps"
	"slices"

	"jsonize/internal/paths"
)

// writeState classifies a write target before anything is modified.
type writeState int

const (
	// stateAppend: the target exists and holds an array.
	stateAppend writeState = iota
	// stateSet: the parent exists and can hold the final segment.
	stateSet
	// stateMissing: an intermediate container is absent and can be created.
	stateMissing
	// stateConflict: an intermediate value exists but cannot be indexed.
	stateConflict
	// stateOutOfRange: an array index along the path does not exist.
	stateOutOfRange
)

// probe describes the outcome of walking p through doc.
type probe struct {
	state writeState
	// at is the number of segments of p involved in the outcome: the
	// missing sub-path, the rejecting container or the absent index.
	at int
}

// Write returns a copy of doc with v stored at p. doc is never modified;
// only the containers along p are copied.
//
// When p already holds an array, v is appended to it. Otherwise v replaces
// whatever p holds. Missing intermediate objects are created as needed,
// and a nil doc is treated as an empty object.
func Write(doc any, p paths.SinkPath, v any) (any, error) {
	if doc == nil && !p.IsRoot() {
		doc = map[string]any{}
	}

	for {
		pr := inspect(doc, p)

		switch pr.state {
		case stateAppend:
			arr, _ := Read(doc, p)

			return setIn(doc, p.Segments()[1:], append(slices.Clip(arr.([]any)), v)), nil
		case stateSet:
			return setIn(doc, p.Segments()[1:], v), nil
		case stateMissing:
			// The parent of the missing sub-path exists, so each round
			// creates one level and moves the frontier deeper.
			doc = setIn(doc, p.Segments()[1:pr.at], map[string]any{})
		case stateConflict:
			return nil, &NotIndexableError{Path: subPath(p, pr.at)}
		case stateOutOfRange:
			return nil, &PathNotFoundError{Path: subPath(p, pr.at)}
		}
	}
}

// inspect walks p through doc without modifying it.
func inspect(doc any, p paths.SinkPath) probe {
	segs := p.Segments()
	last := len(segs) - 1

	if last == 0 {
		if _, ok := doc.([]any); ok {
			return probe{state: stateAppend}
		}

		return probe{state: stateSet}
	}

	cur := doc

	for i := 1; i <= last; i++ {
		seg := segs[i]

		switch seg.Kind {
		case paths.SinkRoot:
			continue
		case paths.SinkField:
			m, ok := cur.(map[string]any)
			if !ok {
				return probe{state: stateConflict, at: i}
			}

			next, ok := m[seg.Name]
			if !ok {
				if i == last {
					return probe{state: stateSet}
				}

				return probe{state: stateMissing, at: i + 1}
			}

			cur = next
		case paths.SinkIndex:
			a, ok := cur.([]any)
			if !ok {
				return probe{state: stateConflict, at: i}
			}

			idx, ok := normalizeIndex(seg.Index, len(a))
			if !ok {
				return probe{state: stateOutOfRange, at: i + 1}
			}

			cur = a[idx]
		case paths.SinkSlice:
			return probe{state: stateConflict, at: i + 1}
		}
	}

	if _, ok := cur.([]any); ok {
		return probe{state: stateAppend}
	}

	return probe{state: stateSet}
}

// setIn returns a copy of cur with v stored under segs. Every container
// along segs must exist except the last key of a map.
func setIn(cur any, segs []paths.SinkSegment, v any) any {
	if len(segs) == 0 {
		return v
	}

	seg := segs[0]

	switch seg.Kind {
	case paths.SinkField:
		m := cur.(map[string]any)

		out := maps.Clone(m)
		if out == nil {
			out = map[string]any{}
		}

		out[seg.Name] = setIn(m[seg.Name], segs[1:], v)

		return out
	case paths.SinkIndex:
		a := cur.([]any)
		idx, _ := normalizeIndex(seg.Index, len(a))

		out := slices.Clone(a)
		out[idx] = setIn(a[idx], segs[1:], v)

		return out
	default:
		return setIn(cur, segs[1:], v)
	}
}
