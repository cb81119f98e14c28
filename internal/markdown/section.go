// Package markdown extracts structured data from free-form Markdown bodies:
// ATX-heading sections, list items, and excerpts.
package markdown

import (
	"regexp"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	listItemRe = regexp.MustCompile(`^[-*]\s*(\[[ xX]\])?\s*(.+)$`)
)

// Section is one ATX-heading section of a Markdown body. Ephemeral: produced
// by ParseSections, never persisted.
type Section struct {
	Title string
	Level int
	Lines []string
}

// ParseSections splits a body into its ordered heading sections in a single
// pass. Text before the first heading belongs to no section. A section ends
// at the next heading of any level.
func ParseSections(body string) []Section {
	var sections []Section
	for _, line := range strings.Split(body, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			sections = append(sections, Section{Title: m[2], Level: len(m[1])})
			continue
		}
		if len(sections) > 0 {
			last := &sections[len(sections)-1]
			last.Lines = append(last.Lines, line)
		}
	}
	return sections
}

// ExtractSection returns the trimmed interior of the first section whose
// heading matches title case-insensitively, or "" when no such heading
// exists.
func ExtractSection(body, title string) string {
	for _, s := range ParseSections(body) {
		if strings.EqualFold(s.Title, title) {
			return strings.TrimSpace(strings.Join(s.Lines, "\n"))
		}
	}
	return ""
}

// ExtractListItems returns the text of every `-`/`*` list item in the named
// section, in document order. A leading checkbox marker is stripped; checked
// and unchecked items are treated identically. Duplicates are kept.
func ExtractListItems(body, title string) []string {
	section := ExtractSection(body, title)
	if section == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(section, "\n") {
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[2]))
		}
	}
	return items
}
