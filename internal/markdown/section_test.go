package markdown

import (
	"reflect"
	"strings"
	"testing"
)

const sampleBody = `intro text before any heading

## Completed

- Task 1
- [ ] Unchecked
- [x] Checked

## Notes

Some prose.
More prose.

### Completed

nested duplicate, must be ignored
`

func TestExtractSection_Basic(t *testing.T) {
	got := ExtractSection(sampleBody, "Notes")
	want := "Some prose.\nMore prose."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractSection_FirstMatchWins(t *testing.T) {
	got := ExtractSection(sampleBody, "Completed")
	if strings.Contains(got, "nested duplicate") {
		t.Errorf("matched the second heading: %q", got)
	}
	if !strings.Contains(got, "Task 1") {
		t.Errorf("missing first section content: %q", got)
	}
}

func TestExtractSection_CaseInsensitive(t *testing.T) {
	if got := ExtractSection(sampleBody, "nOtEs"); !strings.Contains(got, "Some prose.") {
		t.Errorf("case-insensitive match failed: %q", got)
	}
}

func TestExtractSection_Missing(t *testing.T) {
	if got := ExtractSection(sampleBody, "Absent"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestExtractSection_ClosesAtAnyLevel(t *testing.T) {
	body := "## Outer\n\ncontent\n\n### Inner\n\ninner content\n"
	got := ExtractSection(body, "Outer")
	if got != "content" {
		t.Errorf("got %q, want %q", got, "content")
	}
}

func TestExtractListItems(t *testing.T) {
	got := ExtractListItems(sampleBody, "Completed")
	want := []string{"Task 1", "Unchecked", "Checked"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractListItems_StarMarkerAndDuplicates(t *testing.T) {
	body := "## Plan\n\n* alpha\n* alpha\n- beta\n"
	got := ExtractListItems(body, "Plan")
	want := []string{"alpha", "alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractListItems_MissingSection(t *testing.T) {
	if got := ExtractListItems(sampleBody, "Absent"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestParseSections_PreambleIgnored(t *testing.T) {
	sections := ParseSections(sampleBody)
	if len(sections) != 3 {
		t.Fatalf("len = %d, want 3", len(sections))
	}
	if sections[0].Title != "Completed" || sections[0].Level != 2 {
		t.Errorf("first section = %+v", sections[0])
	}
	if sections[2].Level != 3 {
		t.Errorf("third section level = %d, want 3", sections[2].Level)
	}
}

func TestGenerateExcerpt_Short(t *testing.T) {
	got := GenerateExcerpt("# Heading\n\nshort text", 200)
	if got != "short text" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateExcerpt_TruncationBound(t *testing.T) {
	long := strings.Repeat("abcde ", 100)
	got := GenerateExcerpt(long, 200)
	if len([]rune(got)) != 203 {
		t.Errorf("len = %d, want 203", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis suffix: %q", got)
	}
}

func TestGenerateExcerpt_ExactBoundaryNoEllipsis(t *testing.T) {
	exact := strings.Repeat("x", 200)
	got := GenerateExcerpt(exact, 200)
	if got != exact {
		t.Errorf("content at the boundary must be returned unchanged")
	}
}

func TestGenerateExcerpt_CollapsesBlankRuns(t *testing.T) {
	got := GenerateExcerpt("a\n\n\n\n\nb", 200)
	if got != "a\n\nb" {
		t.Errorf("got %q, want %q", got, "a\n\nb")
	}
}

func TestExtractHighlightContent_PrefersCompleted(t *testing.T) {
	body := "## Completed\n\ndone things\n\n## Project Progress\n\nprogress notes\n"
	if got := ExtractHighlightContent(body); got != "done things" {
		t.Errorf("got %q", got)
	}
}

func TestExtractHighlightContent_FallsBackToProgress(t *testing.T) {
	body := "## Project Progress\n\nprogress notes\n"
	if got := ExtractHighlightContent(body); got != "progress notes" {
		t.Errorf("got %q", got)
	}
}

func TestExtractHighlightContent_BodyFallback(t *testing.T) {
	body := strings.Repeat("y", 600)
	got := ExtractHighlightContent(body)
	if len([]rune(got)) != 500 {
		t.Errorf("len = %d, want 500", len([]rune(got)))
	}
}
