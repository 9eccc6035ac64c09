package mapping

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://jsonize.dev/schema/jsonize-map.schema.json"

//go:embed schema/jsonize-map.schema.json
var schemaSource []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource))
	if err != nil {
		return nil, fmt.Errorf("add mapping schema: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile mapping schema: %w", err)
	}

	return schema, nil
})

// Schema returns the JSON Schema mapping documents are validated against.
func Schema() []byte {
	return bytes.Clone(schemaSource)
}

// ValidateSchema checks a decoded mapping document (as produced by
// encoding/json into any) against the mapping schema. Every violation is
// reported as a *SchemaError, joined into one error.
func ValidateSchema(v any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	err = schema.Validate(v)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}

	var errs []error
	collectSchemaErrors(ve, &errs)

	if len(errs) == 0 {
		return &SchemaError{Location: pointerToLocation(ve.InstanceLocation), Message: ve.Message}
	}

	return errors.Join(errs...)
}

// collectSchemaErrors walks the cause tree and keeps the leaves.
func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]error) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &SchemaError{
			Location: pointerToLocation(ve.InstanceLocation),
			Message:  ve.Message,
		})

		return
	}

	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, errs)
	}
}

// pointerToLocation converts a JSON pointer such as "/mappings/0/from" into
// the record notation "mappings[0].from".
func pointerToLocation(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}

	var sb strings.Builder

	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")

		if _, err := strconv.Atoi(token); err == nil {
			sb.WriteString("[" + token + "]")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(token)
	}

	return sb.String()
}
