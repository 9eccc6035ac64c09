package mapping

import (
	"fmt"

	"jsonize/internal/diagnostic"
	"jsonize/internal/match"
	"jsonize/internal/paths"
)

// maxSuggestions is how many transform names are offered for a misspelling.
const maxSuggestions = 3

// Compile resolves a declarative Document into NodeMaps. Paths are parsed,
// kinds checked and transforms looked up in reg before any document is
// touched. Every problem is reported in the returned Diagnostics; when any of
// them is an error, no NodeMaps are returned and the joined error is non-nil.
func Compile(doc *Document, reg *TransformRegistry) ([]*NodeMap, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}
	if doc == nil {
		return nil, diags, nil
	}

	c := &compiler{reg: reg, diags: diags}

	maps := make([]*NodeMap, 0, len(doc.Mappings))
	written := map[string]string{}

	for i := range doc.Mappings {
		loc := fmt.Sprintf("mappings[%d]", i)

		m := c.record(&doc.Mappings[i], loc)
		if m == nil {
			continue
		}

		if m.to.Kind != SinkArray && m.to.Path.IsAbsolute() {
			key := m.to.Path.String()
			if prev, ok := written[key]; ok {
				diags.AddWarning("sink_overwrite",
					fmt.Sprintf("%s overwrites the value written by %s", key, prev), loc, key)
			} else {
				written[key] = loc
			}
		}

		maps = append(maps, m)
	}

	if err := diags.Err(); err != nil {
		return nil, diags, err
	}

	return maps, diags, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(doc *Document, reg *TransformRegistry) []*NodeMap {
	maps, _, err := Compile(doc, reg)
	if err != nil {
		panic(err)
	}

	return maps
}

type compiler struct {
	reg   *TransformRegistry
	diags *diagnostic.Diagnostics
}

// record compiles one record and its item mappings. It returns nil when the
// record has errors; they are already reported.
func (c *compiler) record(rec *Record, loc string) *NodeMap {
	to, toOK := c.target(rec.To, loc+".to")
	from, fromOK := c.origin(rec.From, loc+".from")

	ok := toOK && fromOK
	if ok {
		ok = c.checkKinds(from, to, loc)
	}

	var fn Transform

	if rec.Transformation != "" {
		var found bool

		fn, found = c.reg.Lookup(rec.Transformation)
		if !found {
			suggestions := match.Suggest(rec.Transformation, c.reg.Names(), maxSuggestions)
			c.diags.AddError("unknown_transform", loc+".transformation", rec.Transformation,
				&UnknownTransformError{Name: rec.Transformation, Suggestions: suggestions}, suggestions...)

			ok = false
		}
	}

	items := make([]*NodeMap, 0, len(rec.ItemMappings))

	for j := range rec.ItemMappings {
		item := c.record(&rec.ItemMappings[j], fmt.Sprintf("%s.itemMappings[%d]", loc, j))
		if item == nil {
			ok = false
			continue
		}

		items = append(items, item)
	}

	if !ok {
		return nil
	}

	items, ok = c.checkItems(from, items, loc)
	if !ok {
		return nil
	}

	m := NewNodeMap(from, to, items...)
	if fn != nil {
		m = m.WithTransform(rec.Transformation, fn)
	}

	return m
}

func (c *compiler) target(ep Endpoint, loc string) (Target, bool) {
	ok := true

	path, err := paths.ParseSink(ep.Path)
	if err != nil {
		c.diags.AddError("invalid_path", loc, ep.Path, err)
		ok = false
	}

	kind, err := ParseSinkKind(ep.Type)
	if err != nil {
		c.diags.AddError("unsupported_kind", loc, ep.Path, err)
		ok = false
	}

	return Target{Path: path, Kind: kind}, ok
}

func (c *compiler) origin(ep Endpoint, loc string) (Origin, bool) {
	family, err := InferPathFamily(ep.Path)
	if err != nil {
		c.diags.AddError("invalid_path", loc, ep.Path, err)
		return nil, false
	}

	switch family {
	case FamilyJSON:
		tgt, ok := c.target(ep, loc)

		return JSONOrigin(tgt), ok
	default:
		ok := true

		path, err := paths.ParseSource(ep.Path)
		if err != nil {
			c.diags.AddError("invalid_path", loc, ep.Path, err)
			ok = false
		}

		kind, err := ParseNodeKind(ep.Type)
		if err != nil {
			c.diags.AddError("unsupported_kind", loc, ep.Path, err)
			ok = false
		}

		if ok && path.IsAttribute() != (kind == NodeAttribute) {
			c.diags.AddError("kind_path_mismatch", loc, ep.Path,
				&KindPathMismatchError{Path: ep.Path, Kind: kind})

			ok = false
		}

		return XMLOrigin{Path: path, Kind: kind}, ok
	}
}

func (c *compiler) checkKinds(from Origin, to Target, loc string) bool {
	var (
		accepts  bool
		path     string
		fromKind string
	)

	switch o := from.(type) {
	case XMLOrigin:
		accepts = o.Kind.Accepts(to.Kind)
		path, fromKind = o.Path.String(), o.Kind.String()
	case JSONOrigin:
		accepts = o.Kind.Accepts(to.Kind)
		path, fromKind = o.Path.String(), o.Kind.String()
	}

	if !accepts {
		c.diags.AddError("incompatible_kinds", loc, path,
			&IncompatibleKindsError{Path: path, From: fromKind, To: to.Kind})
	}

	return accepts
}

// checkItems applies the item mapping rules of the origin kind: sequences
// without item mappings map the value of each match, elements need at least
// one, and scalars ignore theirs.
func (c *compiler) checkItems(from Origin, items []*NodeMap, loc string) ([]*NodeMap, bool) {
	switch o := from.(type) {
	case XMLOrigin:
		switch {
		case o.Kind == NodeSequence && len(items) == 0:
			c.diags.AddInfo("implicit_item_map", "each match is mapped by its value", loc, o.Path.String())
			return []*NodeMap{implicitValueItem()}, true
		case o.Kind == NodeElement && len(items) == 0:
			c.diags.AddError("missing_item_maps", loc, o.Path.String(),
				&MissingItemMapsError{Path: o.Path.String(), Kind: o.Kind})

			return nil, false
		case !o.Kind.IsContainer() && len(items) > 0:
			c.diags.AddWarning("items_ignored",
				fmt.Sprintf("item mappings of a %s are ignored", o.Kind), loc, o.Path.String())

			return nil, true
		}
	case JSONOrigin:
		if o.Kind.IsScalar() && len(items) > 0 {
			c.diags.AddWarning("items_ignored",
				fmt.Sprintf("item mappings of a %s are ignored", o.Kind), loc, o.Path.String())

			return nil, true
		}
	}

	return items, true
}
