package content

import "strings"

// commonEnglishTokens is a small set of function words frequent enough in
// English prose that their presence in non-English output is a strong
// signal the neural model ignored the requested language.
var commonEnglishTokens = map[string]bool{
	"the": true, "and": true, "of": true, "to": true, "in": true,
	"is": true, "for": true, "with": true, "on": true, "that": true,
	"this": true, "are": true, "as": true, "by": true, "an": true,
}

// englishTokenThreshold is the fraction of words that must be recognized
// English function words before a non-English body is flagged as
// out-of-language.
const englishTokenThreshold = 0.15

// exceedsEnglishTokenThreshold reports whether body, expected to be
// language, contains enough common-English function words to suspect the
// model replied in English regardless of the request.
func exceedsEnglishTokenThreshold(body, language string) bool {
	if language == "" || language == "en" {
		return false
	}
	words := strings.Fields(body)
	if len(words) == 0 {
		return false
	}
	var hits int
	for _, w := range words {
		w = strings.ToLower(strings.Trim(w, ".,;:!?\"'()"))
		if commonEnglishTokens[w] {
			hits++
		}
	}
	return float64(hits)/float64(len(words)) > englishTokenThreshold
}
