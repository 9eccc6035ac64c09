// Package xmldoc is a small read-only DOM over encoding/xml with the lookups
// jsonize needs: finding elements and attributes by paths.SourcePath,
// element text, the namespaces declared on the root and enumeration of every
// location in a document.
//
// Element text follows the usual ElementTree convention: it is the character
// data before the first child element, and it is absent when empty.
package xmldoc
