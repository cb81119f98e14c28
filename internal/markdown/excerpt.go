package markdown

import (
	"regexp"
	"strings"
)

var (
	headingLineRe = regexp.MustCompile(`(?m)^#+\s.+$`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Section titles that carry a day's highlight-worthy content, tried in order.
var highlightSections = []string{"Completed", "Project Progress"}

const highlightFallbackLen = 500

// GenerateExcerpt strips heading lines, collapses runs of blank lines, and
// truncates the remainder to maxLength characters. Truncated output carries
// a literal "..." suffix, so the worst-case length is maxLength+3. Not
// word-boundary aware.
func GenerateExcerpt(content string, maxLength int) string {
	cleaned := headingLineRe.ReplaceAllString(content, "")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) <= maxLength {
		return cleaned
	}
	return string(runes[:maxLength]) + "..."
}

// ExtractHighlightContent pulls the text that represents a daily log's
// highlight: the "Completed" section, then "Project Progress", and when both
// are empty the first 500 characters of the whole body.
func ExtractHighlightContent(body string) string {
	for _, title := range highlightSections {
		if content := ExtractSection(body, title); content != "" {
			return content
		}
	}
	runes := []rune(strings.TrimSpace(body))
	if len(runes) > highlightFallbackLen {
		runes = runes[:highlightFallbackLen]
	}
	return string(runes)
}
