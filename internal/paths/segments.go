package paths

import "slices"

// splitSegments divides segs at the given position.
//
// at is an exclusive stop position: positive values count from the start,
// negative values from the end. A single-segment list yields
// (segs, nil) for at of 1 or -1.
func splitSegments[S any](segs []S, at int, text string) (prefix, rest []S, err error) {
	n := len(segs)

	abs := at
	if abs < 0 {
		abs = -abs
	}

	if abs < 1 || abs > n {
		return nil, nil, &IndexOutOfRangeError{Path: text, At: at, Len: n}
	}

	if n == 1 {
		return segs, nil, nil
	}

	pos := at
	if pos < 0 {
		pos += n
	}

	// The prefix must keep the root marker.
	if pos < 1 {
		return nil, nil, &IndexOutOfRangeError{Path: text, At: at, Len: n}
	}

	return segs[:pos], segs[pos:], nil
}

// hasStrictPrefix reports whether prefix is a proper prefix of segs.
func hasStrictPrefix[S comparable](segs, prefix []S) bool {
	return len(prefix) < len(segs) && slices.Equal(segs[:len(prefix)], prefix)
}

// concat returns a fresh slice holding a followed by b.
func concat[S any](a, b []S) []S {
	out := make([]S, 0, len(a)+len(b))
	out = append(out, a...)

	return append(out, b...)
}
