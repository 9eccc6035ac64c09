// Package match ranks known names against a requested one so that a
// misspelled transformation can be answered with "did you mean ...".
//
// Names are compared after Normalize, which folds case and drops
// separators, using a rune-wise Levenshtein similarity.
package match
