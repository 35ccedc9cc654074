package content

import (
	"regexp"
	"strings"
)

// templatePatterns are line-level markers of leaked prompt-instruction text
// rather than genuine generated content.
var templatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^-\s*use\b`),
	regexp.MustCompile(`(?i)^-\s*ensure\b`),
	regexp.MustCompile(`(?i)^-\s*include\b`),
	regexp.MustCompile(`(?i)^-\s*avoid\b`),
	regexp.MustCompile(`(?i)^-\s*make sure\b`),
	regexp.MustCompile(`(?i)^-\s*keep\b`),
	regexp.MustCompile(`(?i)^-\s*structure\b`),
	regexp.MustCompile(`(?i)^-\s*write\b`),
	regexp.MustCompile(`(?i)^-\s*provide\b`),
	regexp.MustCompile(`(?i)^-\s*incorporate\b`),
	regexp.MustCompile(`(?i)^-\s*proofread\b`),
	regexp.MustCompile(`(?i)^-\s*note\b`),
	regexp.MustCompile(`(?i)^requirements?:`),
	regexp.MustCompile(`(?i)^content requirements?:`),
	regexp.MustCompile(`(?i)^structure guidelines?:`),
	regexp.MustCompile(`(?i)^language:`),
	regexp.MustCompile(`(?i)^length:`),
	regexp.MustCompile(`(?i)^style:`),
	regexp.MustCompile(`(?i)^context:`),
	regexp.MustCompile(`(?i)^topic:`),
	regexp.MustCompile(`(?i)^company:`),
	regexp.MustCompile(`(?i)^format:`),
	regexp.MustCompile(`(?i)^generate only\b`),
	regexp.MustCompile(`(?i)^no explanations or instructions$`),
}

// metaInstructionMarkers are substrings that, if still present after
// line-filtering, indicate the whole block is still instruction leakage.
var metaInstructionMarkers = []string{
	"generate", "requirements", "language:", "length:", "style:", "context:",
}

// clean filters neural output line-by-line against templatePatterns; if the
// result is too short or still carries a meta-instruction marker, it
// returns empty so the caller falls back to the template path.
func clean(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isTemplateLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(cleaned) < 10 {
		return ""
	}
	lower := strings.ToLower(cleaned)
	for _, marker := range metaInstructionMarkers {
		if strings.Contains(lower, marker) {
			return ""
		}
	}
	return cleaned
}

func isTemplateLine(line string) bool {
	for _, pattern := range templatePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
