package importer

import (
	"regexp"
	"strings"
)

var percentRe = regexp.MustCompile(`\d+%`)

// ExtractDiscount turns a free-text discount cell into a normalized
// string. Percentage tokens are kept in order of appearance and joined
// with " - "; when none are found the raw text is kept with minus signs
// stripped. A missing cell yields the empty string.
func ExtractDiscount(raw any) string {
	if !truthy(raw) {
		return ""
	}

	s := cellString(raw)
	if tokens := percentRe.FindAllString(s, -1); len(tokens) > 0 {
		return strings.Join(tokens, " - ")
	}
	return strings.TrimSpace(strings.ReplaceAll(s, "-", ""))
}
