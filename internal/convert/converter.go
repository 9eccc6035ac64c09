package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"jsonize/internal/infer"
	"jsonize/internal/interp"
	"jsonize/internal/mapping"
	"jsonize/internal/paths"
	"jsonize/internal/xmldoc"
)

// Converter holds the settings shared by every job. It is safe for
// concurrent use.
type Converter struct {
	registry    *mapping.TransformRegistry
	namespaces  paths.Namespaces
	ignoreEmpty bool
	validate    bool
	indent      string
	logger      *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTransforms makes fns available to mapping files next to the
// built-in transforms. A name already registered is replaced.
func WithTransforms(fns map[string]mapping.Transform) Option {
	return func(c *Converter) {
		c.registry = c.registry.With(fns)
	}
}

// WithNamespaces sets the prefix table used instead of the one declared on
// each document root. The default namespace of a document stays resolvable.
func WithNamespaces(ns paths.Namespaces) Option {
	return func(c *Converter) {
		c.namespaces = ns.Clone()
	}
}

// WithIgnoreEmpty controls whether absent source nodes are skipped.
func WithIgnoreEmpty(ignore bool) Option {
	return func(c *Converter) {
		c.ignoreEmpty = ignore
	}
}

// WithValidation controls JSON-Schema validation of mapping files.
func WithValidation(validate bool) Option {
	return func(c *Converter) {
		c.validate = validate
	}
}

// WithIndent sets the indentation of JSON output. Empty means compact.
func WithIndent(indent string) Option {
	return func(c *Converter) {
		c.indent = indent
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter with the built-in transforms, schema validation
// and ignoreEmpty enabled.
func New(opts ...Option) *Converter {
	c := &Converter{
		registry:    mapping.Builtins(),
		ignoreEmpty: true,
		validate:    true,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LoadMap reads and compiles a mapping file. Warnings are logged; any error
// diagnostic fails the load.
func (c *Converter) LoadMap(path string) ([]*mapping.NodeMap, error) {
	doc, err := mapping.LoadFile(path, c.validate)
	if err != nil {
		return nil, err
	}

	maps, diags, err := mapping.Compile(doc, c.registry)
	for _, w := range diags.Warnings {
		c.logger.Warn("mapping warning", "file", path, "diagnostic", w.String())
	}

	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	c.logger.Debug("loaded mapping", "file", path, "mappings", len(maps))

	return maps, nil
}

// Table returns the namespace table used for doc: the configured table plus
// the default namespace of doc, or the table declared on its root.
func (c *Converter) Table(doc *xmldoc.Document) paths.Namespaces {
	if c.namespaces == nil {
		return doc.LookupTable()
	}

	ns := c.namespaces.Clone()
	if _, ok := ns[""]; !ok {
		if def := doc.DefaultNamespace(); def != "" {
			ns[""] = def
		}
	}

	return ns
}

// Convert applies maps to doc, starting from sink (nil for a fresh
// document).
func (c *Converter) Convert(doc *xmldoc.Document, maps []*mapping.NodeMap, sink any) (any, error) {
	in := interp.New(
		interp.WithIgnoreEmpty(c.ignoreEmpty),
		interp.WithNamespaces(c.Table(doc)),
		interp.WithLogger(c.logger),
	)

	return in.Run(doc, sink, maps)
}

// XMLFileToDict parses the XML file at xmlPath and converts it with maps.
func (c *Converter) XMLFileToDict(xmlPath string, maps []*mapping.NodeMap, sink any) (any, error) {
	doc, err := xmldoc.ParseFile(xmlPath)
	if err != nil {
		return nil, err
	}

	out, err := c.Convert(doc, maps, sink)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", xmlPath, err)
	}

	return out, nil
}

// ToJSONFile converts xmlPath with the mapping file at mapPath and writes
// the result to outPath.
func (c *Converter) ToJSONFile(xmlPath, mapPath, outPath string) error {
	maps, err := c.LoadMap(mapPath)
	if err != nil {
		return err
	}

	return c.writeJSONFile(xmlPath, maps, outPath)
}

func (c *Converter) writeJSONFile(xmlPath string, maps []*mapping.NodeMap, outPath string) error {
	out, err := c.XMLFileToDict(xmlPath, maps, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = c.EncodeJSON(&buf, out)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(outPath), 0755)
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	err = os.WriteFile(outPath, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	return nil
}

// EncodeJSON writes v as JSON followed by a newline.
func (c *Converter) EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}

	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

// InferMap infers the mapping document of the XML file at xmlPath.
// opts.Namespaces defaults to the table Convert would use.
func (c *Converter) InferMap(xmlPath string, opts infer.Options) (*mapping.Document, error) {
	doc, err := xmldoc.ParseFile(xmlPath)
	if err != nil {
		return nil, err
	}

	if opts.Namespaces == nil {
		opts.Namespaces = c.Table(doc)
	}

	m, err := infer.Infer(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("infer %s: %w", xmlPath, err)
	}

	c.logger.Debug("inferred mapping", "file", xmlPath, "mappings", len(m.Mappings))

	return m, nil
}

// InferMapFile infers the mapping of xmlPath and writes it to outPath in
// the format given by its extension.
func (c *Converter) InferMapFile(xmlPath, outPath string, opts infer.Options) error {
	m, err := c.InferMap(xmlPath, opts)
	if err != nil {
		return err
	}

	return mapping.WriteFile(m, outPath)
}
