package report

import (
	"strings"
	"testing"

	"github.com/mkraev/worklog/internal/document"
)

func daily(date string, highlight bool, projects []string, body string) *document.Document {
	week, _ := document.ISOWeek(date)
	return &document.Document{
		Kind: document.KindDaily,
		Daily: &document.DailyMeta{
			Date:      date,
			Week:      week,
			Projects:  projects,
			Tags:      []string{},
			Highlight: highlight,
		},
		Body: body,
	}
}

func weekMeta(t *testing.T, week string) document.WeeklyMeta {
	t.Helper()
	start, end, err := document.WeekBounds(week)
	if err != nil {
		t.Fatalf("WeekBounds(%s): %v", week, err)
	}
	return document.WeeklyMeta{Week: week, StartDate: start, EndDate: end}
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil, weekMeta(t, "2026-W03"))
	if len(agg.Projects) != 0 || len(agg.Highlights) != 0 || len(agg.DailySummaries) != 0 {
		t.Errorf("empty input must yield empty collections: %+v", agg)
	}
	if !strings.Contains(agg.Content, "no Daily Logs this week") {
		t.Errorf("missing empty-dailies fallback:\n%s", agg.Content)
	}
	if !strings.Contains(agg.Content, "no highlighted entries this week") {
		t.Errorf("missing empty-highlights fallback:\n%s", agg.Content)
	}
	if !strings.Contains(agg.Content, "no associated projects this week") {
		t.Errorf("missing empty-projects fallback:\n%s", agg.Content)
	}
}

func TestAggregate_HighlightSelection(t *testing.T) {
	dailies := []*document.Document{
		daily("2026-01-16", false, nil, "## Completed\n\nregular day\n"),
		daily("2026-01-15", true, nil, "## Completed\n\nshipped the thing\n"),
	}
	agg := Aggregate(dailies, weekMeta(t, "2026-W03"))

	if len(agg.Highlights) != 1 {
		t.Fatalf("highlights = %d, want 1", len(agg.Highlights))
	}
	if agg.Highlights[0].Date != "2026-01-15" {
		t.Errorf("highlight date = %q", agg.Highlights[0].Date)
	}
	if agg.Highlights[0].Content != "shipped the thing" {
		t.Errorf("highlight content = %q", agg.Highlights[0].Content)
	}
	if !strings.Contains(agg.Content, "Week 2026-W03") {
		t.Errorf("missing week title:\n%s", agg.Content)
	}
	if len(agg.DailySummaries) != 2 {
		t.Errorf("summaries = %d, want 2 (every daily, not just highlights)", len(agg.DailySummaries))
	}
}

func TestAggregate_SortsByDate(t *testing.T) {
	dailies := []*document.Document{
		daily("2026-01-16", false, nil, "b"),
		daily("2026-01-12", false, nil, "a"),
		daily("2026-01-14", false, nil, "c"),
	}
	agg := Aggregate(dailies, weekMeta(t, "2026-W03"))
	got := []string{
		agg.DailySummaries[0].Date,
		agg.DailySummaries[1].Date,
		agg.DailySummaries[2].Date,
	}
	if got[0] != "2026-01-12" || got[1] != "2026-01-14" || got[2] != "2026-01-16" {
		t.Errorf("order = %v", got)
	}
}

func TestAggregate_ProjectsFirstSeenOrder(t *testing.T) {
	dailies := []*document.Document{
		daily("2026-01-12", false, []string{"zeta", "alpha"}, ""),
		daily("2026-01-13", false, []string{"alpha", "midway"}, ""),
	}
	agg := Aggregate(dailies, weekMeta(t, "2026-W03"))
	want := []string{"zeta", "alpha", "midway"}
	if len(agg.Projects) != 3 {
		t.Fatalf("projects = %v", agg.Projects)
	}
	for i := range want {
		if agg.Projects[i] != want[i] {
			t.Errorf("projects = %v, want %v (first-seen order, not sorted)", agg.Projects, want)
			break
		}
	}
	if agg.Meta.Projects[0] != "zeta" {
		t.Errorf("meta projects not replaced: %v", agg.Meta.Projects)
	}
	// Project subsections carry the three bullet placeholders.
	if !strings.Contains(agg.Content, "### zeta\n\n- Progress this week:\n- Current status:\n- Next week plan:") {
		t.Errorf("missing project placeholder bullets:\n%s", agg.Content)
	}
}

func TestAggregate_DailySummaryRendering(t *testing.T) {
	dailies := []*document.Document{
		daily("2026-01-12", true, []string{"worklog"}, "## Notes\n\ndid some work\n"),
		daily("2026-01-13", false, nil, ""),
	}
	agg := Aggregate(dailies, weekMeta(t, "2026-W03"))

	if !strings.Contains(agg.Content, "### 2026-01-12 ⭐ [worklog]") {
		t.Errorf("missing decorated daily heading:\n%s", agg.Content)
	}
	if !strings.Contains(agg.Content, "(no content)") {
		t.Errorf("missing no-content fallback for empty daily:\n%s", agg.Content)
	}
	if agg.DailySummaries[0].Excerpt != "did some work" {
		t.Errorf("excerpt = %q", agg.DailySummaries[0].Excerpt)
	}
}

func TestAggregate_ExcerptBounded(t *testing.T) {
	long := strings.Repeat("work notes ", 60)
	agg := Aggregate([]*document.Document{daily("2026-01-12", false, nil, long)}, weekMeta(t, "2026-W03"))
	excerpt := agg.DailySummaries[0].Excerpt
	if len([]rune(excerpt)) > excerptLength+3 {
		t.Errorf("excerpt too long: %d", len([]rune(excerpt)))
	}
	if !strings.HasSuffix(excerpt, "...") {
		t.Errorf("long excerpt must end with ellipsis: %q", excerpt)
	}
}

func TestAggregate_SectionOrder(t *testing.T) {
	agg := Aggregate(nil, weekMeta(t, "2026-W03"))
	headings := []string{
		"# Week 2026-W03 Weekly Report",
		"## " + HeadingSummary,
		"## " + HeadingHighlights,
		"## " + HeadingProjects,
		"## " + HeadingDailies,
		"## " + HeadingRisks,
		"## " + HeadingNextWeek,
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(agg.Content, h)
		if idx < 0 {
			t.Fatalf("missing heading %q:\n%s", h, agg.Content)
		}
		if idx <= last {
			t.Errorf("heading %q out of order", h)
		}
		last = idx
	}
	if !strings.HasSuffix(agg.Content, "\n") || strings.HasSuffix(agg.Content, "\n\n") {
		t.Errorf("content must end with exactly one newline")
	}
}
