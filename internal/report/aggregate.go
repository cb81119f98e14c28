// Package report derives Weekly Reports from Daily Logs and reconciles
// regenerated report bodies with user-authored edits.
package report

import (
	"sort"
	"strings"

	"github.com/mkraev/worklog/internal/document"
	"github.com/mkraev/worklog/internal/markdown"
)

// Section heading literals of a Weekly Report body. The merge logic keys on
// these strings, so they must stay byte-for-byte stable across releases for
// round-trip compatibility with existing workspaces.
const (
	HeadingSummary    = "Summary (one sentence)"
	HeadingHighlights = "Highlights"
	HeadingProjects   = "Project Progress"
	HeadingDailies    = "Daily Summaries"
	HeadingRisks      = "Risks & Blockers"
	HeadingNextWeek   = "Next Week Plan"

	reportTitleSuffix = "Weekly Report"
)

// Literal fallback sentences rendered when a derived section has no data.
const (
	noHighlights = "There were no highlighted entries this week."
	noProjects   = "There were no associated projects this week."
	noDailies    = "There were no Daily Logs this week."
	noContent    = "(no content)"
)

// User-editable section placeholders. A section whose extracted text equals
// its placeholder is treated as untouched by the user.
const (
	placeholderSummary = ""
	placeholderBullet  = "-"
)

const excerptLength = 200

// HighlightEntry is one highlighted daily rendered into the report.
type HighlightEntry struct {
	Date    string
	Content string
}

// DailySummary is the per-day projection rendered into the report.
type DailySummary struct {
	Date      string
	Projects  []string
	Tags      []string
	Highlight bool
	Excerpt   string
}

// Aggregation is the sole output of Aggregate and, together with a prior
// report body, the sole input to Merge.
type Aggregation struct {
	Meta           document.WeeklyMeta
	Content        string
	Projects       []string
	Highlights     []HighlightEntry
	DailySummaries []DailySummary
}

// Aggregate derives a fully regenerated Weekly Report from the given Daily
// Logs. It is pure and total: every empty branch renders a literal fallback,
// so it never fails, including on no input at all.
func Aggregate(dailies []*document.Document, meta document.WeeklyMeta) Aggregation {
	sorted := make([]*document.Document, len(dailies))
	copy(sorted, dailies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Daily.Date < sorted[j].Daily.Date
	})

	projects := []string{}
	seen := make(map[string]struct{})
	for _, d := range sorted {
		for _, p := range d.Daily.Projects {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			projects = append(projects, p)
		}
	}

	highlights := []HighlightEntry{}
	summaries := []DailySummary{}
	for _, d := range sorted {
		if d.Daily.Highlight {
			highlights = append(highlights, HighlightEntry{
				Date:    d.Daily.Date,
				Content: markdown.ExtractHighlightContent(d.Body),
			})
		}
		summaries = append(summaries, DailySummary{
			Date:      d.Daily.Date,
			Projects:  d.Daily.Projects,
			Tags:      d.Daily.Tags,
			Highlight: d.Daily.Highlight,
			Excerpt:   markdown.GenerateExcerpt(d.Body, excerptLength),
		})
	}

	outMeta := meta
	outMeta.Projects = projects

	return Aggregation{
		Meta:           outMeta,
		Content:        render(outMeta.Week, projects, highlights, summaries),
		Projects:       projects,
		Highlights:     highlights,
		DailySummaries: summaries,
	}
}

// render produces the fixed, ordered section layout of a report body.
func render(week string, projects []string, highlights []HighlightEntry, summaries []DailySummary) string {
	var b strings.Builder

	b.WriteString("# Week " + week + " " + reportTitleSuffix + "\n\n")

	// Empty placeholder: heading followed by two blank lines.
	b.WriteString("## " + HeadingSummary + "\n\n\n")

	b.WriteString("## " + HeadingHighlights + "\n\n")
	if len(highlights) == 0 {
		b.WriteString(noHighlights + "\n\n")
	}
	for _, h := range highlights {
		b.WriteString("### " + h.Date + "\n\n")
		if h.Content != "" {
			b.WriteString(h.Content + "\n\n")
		}
	}

	b.WriteString("## " + HeadingProjects + "\n\n")
	if len(projects) == 0 {
		b.WriteString(noProjects + "\n\n")
	}
	for _, p := range projects {
		b.WriteString("### " + p + "\n\n")
		b.WriteString("- Progress this week:\n- Current status:\n- Next week plan:\n\n")
	}

	b.WriteString("## " + HeadingDailies + "\n\n")
	if len(summaries) == 0 {
		b.WriteString(noDailies + "\n\n")
	}
	for _, s := range summaries {
		b.WriteString("### " + s.Date)
		if s.Highlight {
			b.WriteString(" ⭐")
		}
		if len(s.Projects) > 0 {
			b.WriteString(" [" + strings.Join(s.Projects, ", ") + "]")
		}
		b.WriteString("\n\n")
		if s.Excerpt != "" {
			b.WriteString(s.Excerpt + "\n\n")
		} else {
			b.WriteString(noContent + "\n\n")
		}
	}

	b.WriteString("## " + HeadingRisks + "\n\n" + placeholderBullet + "\n\n")
	b.WriteString("## " + HeadingNextWeek + "\n\n" + placeholderBullet + "\n")

	return strings.TrimRight(b.String(), "\n") + "\n"
}
