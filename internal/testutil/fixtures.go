package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// BookXML is a small document exercising attributes, values and sequences.
const BookXML = `<?xml version="1.0" encoding="UTF-8"?>
<book id="7">
  <title>Dune</title>
  <author>Frank Herbert</author>
  <author>Brian Herbert</author>
</book>`

// BookMap maps BookXML to {"id", "title", "authors"}.
const BookMap = `[
  {"from": {"path": "/book/@id", "type": "attribute"}, "to": {"path": "$.id", "type": "integer"}},
  {"from": {"path": "/book/title", "type": "value"}, "to": {"path": "$.title", "type": "string"}},
  {"from": {"path": "/book/author", "type": "sequence"}, "to": {"path": "$.authors", "type": "array"}}
]`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	return path
}
