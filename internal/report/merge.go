package report

import (
	"regexp"
	"strings"

	"github.com/mkraev/worklog/internal/markdown"
)

var headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// preservedSections are the user-editable sections of a report together with
// the placeholder the generator emits for them. Comparison against the
// placeholder is plain string equality: a user who types the exact
// placeholder back is indistinguishable from one who wrote nothing.
var preservedSections = []struct {
	title       string
	placeholder string
}{
	{HeadingSummary, placeholderSummary},
	{HeadingRisks, placeholderBullet},
	{HeadingNextWeek, placeholderBullet},
}

// Merge reconciles a previously persisted report body with a freshly
// regenerated aggregation. User-authored text in the Summary, Risks &
// Blockers, and Next Week Plan sections is carried over; every other section
// is derived data and always comes from the fresh aggregation, even if the
// user edited it. Merging the generator's own output is a no-op, so repeated
// regeneration is stable.
func Merge(existingBody string, fresh Aggregation) string {
	if strings.TrimSpace(existingBody) == "" {
		return fresh.Content
	}

	out := fresh.Content
	for _, s := range preservedSections {
		authored := markdown.ExtractSection(existingBody, s.title)
		if authored != s.placeholder {
			out = replaceSection(out, s.title, authored)
		}
	}
	return out
}

// replaceSection splices interior under the heading matching title: the
// heading line is kept, followed by a blank line, the new interior, and a
// blank line; the old section body is skipped up to the next heading of any
// level. When the heading is absent the body is returned unchanged.
func replaceSection(body, title, interior string) string {
	lines := strings.Split(body, "\n")

	var out []string
	i := 0
	for ; i < len(lines); i++ {
		if m := headingLineRe.FindStringSubmatch(lines[i]); m != nil && strings.EqualFold(m[2], title) {
			break
		}
		out = append(out, lines[i])
	}
	if i == len(lines) {
		return body
	}

	out = append(out, lines[i], "")
	if interior != "" {
		out = append(out, strings.Split(interior, "\n")...)
	}
	out = append(out, "")

	for i++; i < len(lines); i++ {
		if headingLineRe.MatchString(lines[i]) {
			break
		}
	}
	out = append(out, lines[i:]...)

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}
