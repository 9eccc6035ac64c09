package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile loads a mapping document from path. The format is picked from
// the file extension. When validate is set the document is checked against
// the mapping schema first.
func LoadFile(path string, validate bool) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	if validate {
		doc, err := Parse(data, format)
		if err != nil {
			return nil, fmt.Errorf("mapping file %s: %w", path, err)
		}

		return doc, nil
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes and schema-validates a mapping document.
func Parse(data []byte, format Format) (*Document, error) {
	generic, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}

	err = ValidateSchema(generic)
	if err != nil {
		return nil, err
	}

	return fromGeneric(generic)
}

// Decode decodes a mapping document without schema validation.
func Decode(data []byte, format Format) (*Document, error) {
	generic, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}

	return fromGeneric(generic)
}

// decodeGeneric decodes data into the value shape encoding/json produces,
// wrapping a bare list of records as {"mappings": [...]}.
func decodeGeneric(data []byte, format Format) (any, error) {
	var raw any

	switch format {
	case FormatJSON:
		err := json.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
		}
	case FormatYAML:
		err := yaml.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
		}
	case FormatTOML:
		var table map[string]any

		err := toml.Unmarshal(data, &table)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mapping TOML: %w", err)
		}

		raw = table
	default:
		return nil, fmt.Errorf("unsupported mapping format %q", format)
	}

	if list, ok := raw.([]any); ok {
		raw = map[string]any{"mappings": list}
	}

	// Normalize through JSON so every format validates the same way.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize mapping document: %w", err)
	}

	var generic any

	err = json.Unmarshal(data, &generic)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize mapping document: %w", err)
	}

	return generic, nil
}

func fromGeneric(generic any) (*Document, error) {
	var doc Document

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapping decoder: %w", err)
	}

	err = dec.Decode(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mapping document: %w", err)
	}

	return &doc, nil
}

// Marshal serializes a Document. JSON documents are written as a bare list
// of records; YAML and TOML use the "mappings" key.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		mappings := doc.Mappings
		if mappings == nil {
			mappings = []Record{}
		}

		return json.MarshalIndent(mappings, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer

		err := toml.NewEncoder(&buf).Encode(doc)
		if err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported mapping format %q", format)
	}
}

// WriteFile writes a Document to path in the format picked from its extension.
func WriteFile(doc *Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(doc, format)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
