package css

import (
	"strings"

	"gridder/value"
)

// SplitSelectors splits comma separated selector list into individual
// selectors. Commas inside :not(...), attribute selectors and strings do not
// split.
func SplitSelectors(list string) []string {
	return value.SplitComma(list)
}

// EachSelector applies suffix to every selector of the list. When suffix
// contains "&" it is replaced by the selector ("&:first-child"), otherwise
// suffix is added as a descendant (".col" -> "<selector> .col").
func EachSelector(list, suffix string) string {
	parts := SplitSelectors(list)
	for i, sel := range parts {
		if strings.Contains(suffix, "&") {
			parts[i] = strings.ReplaceAll(suffix, "&", sel)
		} else {
			parts[i] = sel + " " + suffix
		}
	}
	return strings.Join(parts, ", ")
}
