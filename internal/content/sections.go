package content

import (
	"strings"

	"github.com/forgecraft/credentialforge/internal/langpack"
)

// canonicalSectionTitle maps a template section key to an index into
// Pack.SectionTitles' canonical seven-entry order (Overview, Background,
// Technical Details, Configuration, Implementation, Security, Next Steps).
// Keys outside this set (email/spreadsheet section names, which don't fit
// the generic document taxonomy) fall back to title-cased rendering of the
// key itself.
var canonicalSectionTitle = map[string]int{
	"overview":                 0,
	"executive_summary":        0,
	"background":               1,
	"introduction":             1,
	"technical_details":        2,
	"technical_specifications": 2,
	"technical_architecture":   2,
	"configuration":            3,
	"configuration_sheet":      3,
	"implementation":           4,
	"implementation_plan":      4,
	"security":                 5,
	"security_considerations":  5,
	"conclusion":               6,
	"next_steps":               6,
}

// sectionTitle returns the localized display title for a template section
// key, using pack's canonical section-title list where the key maps onto
// it and a humanized rendering of the key otherwise.
func sectionTitle(pack langpack.Pack, key string) string {
	if idx, ok := canonicalSectionTitle[key]; ok && idx < len(pack.SectionTitles) {
		return pack.SectionTitles[idx]
	}
	switch key {
	case "greeting":
		return pack.Greeting
	case "closing":
		return pack.Closing
	}
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

// titleCase capitalizes the first letter of each word, avoiding the
// deprecated strings.Title.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
