// Package main provides the CLI entrypoint for jsonize.
//
// jsonize converts XML documents into JSON driven by declarative mappings:
//   - convert applies a mapping file to a document
//   - infer derives a mapping from a sample document
//   - batch converts many documents in parallel
package main

import (
	"os"

	"jsonize/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
