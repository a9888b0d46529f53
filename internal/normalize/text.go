package normalize

import (
	"strings"
)

var specialSpaces = strings.NewReplacer(
	"\u202f", " ", // narrow no-break space
	"\u00a0", " ", // no-break space
	"\n", " ",
)

// CleanSpecialSpaces replaces no-break spaces and newlines with a plain space.
// It does not trim or collapse anything.
func CleanSpecialSpaces(s string) string {
	return specialSpaces.Replace(s)
}

// CollapseSpace turns every run of whitespace, newlines included, into a
// single space and trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
