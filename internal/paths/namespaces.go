package paths

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// XMLNamespace is the URI bound to the reserved "xml" prefix.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// Namespaces maps short prefixes to full namespace URIs.
// The empty prefix, when present, names the default namespace.
type Namespaces map[string]string

// Resolve returns the URI bound to prefix.
// The "xml" prefix is always resolvable.
func (ns Namespaces) Resolve(prefix string) (string, error) {
	if uri, ok := ns[prefix]; ok {
		return uri, nil
	}

	if prefix == "xml" {
		return XMLNamespace, nil
	}

	return "", &NamespaceNotFoundError{Namespace: prefix}
}

// ShortName returns the prefix bound to uri. When several prefixes share
// the same URI the lexicographically smallest one wins.
func (ns Namespaces) ShortName(uri string) (string, error) {
	for _, prefix := range slices.Sorted(maps.Keys(ns)) {
		if ns[prefix] == uri {
			return prefix, nil
		}
	}

	if uri == XMLNamespace {
		return "xml", nil
	}

	return "", &NamespaceNotFoundError{Namespace: uri}
}

// Clone returns an independent copy of ns.
func (ns Namespaces) Clone() Namespaces {
	if ns == nil {
		return Namespaces{}
	}

	return maps.Clone(ns)
}

// SplitQName splits "prefix:local" into its parts. An unprefixed name
// returns an empty prefix.
func SplitQName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}

	return "", name
}

// SplitClark splits a Clark-notation name "{uri}local".
// ok is false when name is not in Clark notation.
func SplitClark(name string) (uri, local string, ok bool) {
	if !strings.HasPrefix(name, "{") {
		return "", name, false
	}

	end := strings.IndexByte(name, '}')
	if end < 0 {
		return "", name, false
	}

	return name[1:end], name[end+1:], true
}

// Clark renders uri and local in Clark notation, or local alone when uri is empty.
func Clark(uri, local string) string {
	if uri == "" {
		return local
	}

	return fmt.Sprintf("{%s}%s", uri, local)
}

// shortenName rewrites a Clark-notation name to "prefix:local".
// Names that are not in Clark notation are returned unchanged.
func shortenName(name string, ns Namespaces) (string, error) {
	uri, local, ok := SplitClark(name)
	if !ok {
		return name, nil
	}

	prefix, err := ns.ShortName(uri)
	if err != nil {
		return "", err
	}

	if prefix == "" {
		return local, nil
	}

	return prefix + ":" + local, nil
}

// localName strips a namespace prefix or Clark URI from name.
func localName(name string) string {
	if _, local, ok := SplitClark(name); ok {
		return local
	}

	_, local := SplitQName(name)

	return local
}
