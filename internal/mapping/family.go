package mapping

import (
	"jsonize/internal/paths"
)

//go:generate go tool stringer -type=PathFamily -linecomment -output=pathfamily_string.go

// PathFamily says which document a mapping's from.path addresses.
type PathFamily int

const (
	_ PathFamily = iota // skip zero value, use it as a default (invalid) value for PathFamily

	FamilyXML  // xml
	FamilyJSON // json

	// PathFamilyTotal is a constant that represents the total number of families defined
	PathFamilyTotal = int(iota)
)

// InferPathFamily picks the path family from the leading character of path.
func InferPathFamily(path string) (PathFamily, error) {
	if path == "" {
		return 0, &paths.MalformedPathError{Path: path, Reason: "cannot infer path family of an empty path"}
	}

	switch path[0] {
	case paths.SourceAbsoluteRoot[0], paths.SourceRelativeRoot[0]:
		return FamilyXML, nil
	case paths.SinkAbsoluteRoot[0], paths.SinkRelativeRoot[0]:
		return FamilyJSON, nil
	default:
		return 0, &paths.MalformedPathError{Path: path, Reason: "cannot infer path family"}
	}
}
