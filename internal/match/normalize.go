package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize folds the case of s and removes '_', '-' and space, so that
// "Strip_Spaces" and "stripspaces" compare equal.
func Normalize(s string) string {
	folded := cases.Fold().String(s)

	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return r
	}, folded)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
