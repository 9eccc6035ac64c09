package mapping

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Endpoint is the declarative form of one side of a mapping.
type Endpoint struct {
	Path string `json:"path" yaml:"path" toml:"path"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

// Record is the declarative form of a NodeMap.
type Record struct {
	From           Endpoint `json:"from" yaml:"from" toml:"from"`
	To             Endpoint `json:"to" yaml:"to" toml:"to"`
	Transformation string   `json:"transformation,omitempty" yaml:"transformation,omitempty" toml:"transformation,omitempty"`
	ItemMappings   []Record `json:"itemMappings,omitempty" yaml:"itemMappings,omitempty" toml:"itemMappings,omitempty"`
}

// Document is a whole mapping document: an ordered list of records.
type Document struct {
	Mappings []Record `json:"mappings" yaml:"mappings" toml:"mappings"`
}

// Format names a serialization of mapping documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported mapping file extension %q", filepath.Ext(path))
	}
}

// Records converts compiled NodeMaps back into a Document.
func Records(maps []*NodeMap) *Document {
	doc := &Document{Mappings: make([]Record, 0, len(maps))}
	for _, m := range maps {
		doc.Mappings = append(doc.Mappings, m.Record())
	}

	return doc
}
