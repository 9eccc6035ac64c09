// Package convert runs whole conversion jobs: it loads and compiles mapping
// files, parses XML documents, applies the interpreter and writes JSON
// output. It also infers mapping files, converts many documents in parallel
// (one job per document) and re-runs a job when its inputs change.
package convert
