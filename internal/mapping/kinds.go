package mapping

import (
	"fmt"
)

//go:generate go tool stringer -type=NodeKind -linecomment -output=nodekind_string.go
//go:generate go tool stringer -type=SinkKind -linecomment -output=sinkkind_string.go

// NodeKind says what a source path selects.
type NodeKind int

const (
	_ NodeKind = iota // skip zero value, use it as a default (invalid) value for NodeKind

	NodeValue     // value
	NodeAttribute // attribute
	NodeSequence  // sequence
	NodeElement   // element

	// NodeKindTotal is a constant that represents the total number of kinds defined
	NodeKindTotal = int(iota)
)

// SinkKind says how a value is shaped when written to the sink.
type SinkKind int

const (
	_ SinkKind = iota // skip zero value, use it as a default (invalid) value for SinkKind

	SinkString  // string
	SinkInteger // integer
	SinkNumber  // number
	SinkBoolean // boolean
	SinkNull    // null
	SinkObject  // object
	SinkArray   // array
	SinkInfer   // infer

	// SinkKindTotal is a constant that represents the total number of kinds defined
	SinkKindTotal = int(iota)
)

// ParseNodeKind returns the NodeKind named by s.
func ParseNodeKind(s string) (NodeKind, error) {
	for k := NodeKind(1); int(k) < NodeKindTotal; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, &UnsupportedNodeKindError{Kind: s}
}

// ParseSinkKind returns the SinkKind named by s.
func ParseSinkKind(s string) (SinkKind, error) {
	for k := SinkKind(1); int(k) < SinkKindTotal; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, &UnsupportedNodeKindError{Kind: s}
}

// IsContainer reports whether the kind selects a node that owns item maps.
func (k NodeKind) IsContainer() bool {
	switch k {
	default:
		return false
	case NodeSequence, NodeElement:
		return true
	}
}

// IsScalar reports whether values of this kind are cast from text.
func (k SinkKind) IsScalar() bool {
	switch k {
	default:
		return false
	case SinkString, SinkInteger, SinkNumber, SinkBoolean, SinkNull, SinkInfer:
		return true
	}
}

// Accepts reports whether a source of kind k may be written as sink kind s.
func (k NodeKind) Accepts(s SinkKind) bool {
	switch k {
	case NodeSequence:
		return s == SinkArray || s == SinkInfer
	case NodeElement:
		return s == SinkObject || s == SinkInfer
	case NodeValue, NodeAttribute:
		return s.IsScalar()
	default:
		return false
	}
}

// Accepts reports whether a JSON value selected as kind k may be written as
// sink kind s. Containers keep their shape; scalars are cast.
func (k SinkKind) Accepts(s SinkKind) bool {
	switch k {
	case SinkObject, SinkArray:
		return s == k || s == SinkInfer
	case SinkInfer:
		return s > 0 && int(s) < SinkKindTotal
	default:
		return k.IsScalar() && s.IsScalar()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	if k <= 0 || int(k) >= NodeKindTotal {
		return nil, fmt.Errorf("invalid node kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	v, err := ParseNodeKind(string(text))
	if err != nil {
		return err
	}

	*k = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k SinkKind) MarshalText() ([]byte, error) {
	if k <= 0 || int(k) >= SinkKindTotal {
		return nil, fmt.Errorf("invalid sink kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SinkKind) UnmarshalText(text []byte) error {
	v, err := ParseSinkKind(string(text))
	if err != nil {
		return err
	}

	*k = v

	return nil
}
