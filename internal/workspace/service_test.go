package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkraev/worklog/internal/apperr"
	"github.com/mkraev/worklog/internal/document"
	"github.com/mkraev/worklog/internal/markdown"
	"github.com/mkraev/worklog/internal/report"
	"github.com/mkraev/worklog/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestWorkspace(t)
	db := testutil.TestDB(t)
	return NewService(store, db)
}

func TestCreateDaily(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	detail, err := svc.CreateDaily(ctx, "2026-01-15", []string{"worklog"}, []string{"golang"}, true)
	if err != nil {
		t.Fatalf("CreateDaily: %v", err)
	}
	if detail.Path != "dailies/2026-01-15.md" {
		t.Errorf("path = %q", detail.Path)
	}
	if detail.Daily.Week != "2026-W03" {
		t.Errorf("week = %q", detail.Daily.Week)
	}
	if !strings.Contains(detail.Body, "## Completed") {
		t.Errorf("template missing: %q", detail.Body)
	}

	// The file round-trips through the codec.
	got, err := svc.GetDocument(ctx, detail.Path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Daily.Date != "2026-01-15" || !got.Daily.Highlight {
		t.Errorf("meta = %+v", got.Daily)
	}
}

func TestCreateDaily_RejectsDuplicate(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateDaily(ctx, "2026-01-15", nil, nil, false); err != nil {
		t.Fatalf("CreateDaily: %v", err)
	}
	_, err := svc.CreateDaily(ctx, "2026-01-15", nil, nil, false)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateDaily_InvalidDate(t *testing.T) {
	svc := testService(t)
	_, err := svc.CreateDaily(context.Background(), "garbage", nil, nil, false)
	if !errors.Is(err, document.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestCreateProject(t *testing.T) {
	svc := testService(t)
	detail, err := svc.CreateProject(context.Background(), "Work Log", "mkraev/worklog", "", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if detail.Path != "projects/work-log.md" {
		t.Errorf("path = %q", detail.Path)
	}
	if detail.Project.Status != "Planning" || detail.Project.Type != "software" {
		t.Errorf("defaults not applied: %+v", detail.Project)
	}
}

func TestGenerateWeekly_FreshReport(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	day, err := svc.CreateDaily(ctx, "2026-01-15", []string{"worklog"}, nil, true)
	if err != nil {
		t.Fatalf("CreateDaily: %v", err)
	}
	// Give the daily real content.
	content := strings.Replace(day.Content, "## Completed\n", "## Completed\n\nshipped the codec\n", 1)
	if _, err := svc.UpdateDocument(ctx, day.Path, []byte(content), ""); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	detail, err := svc.GenerateWeekly(ctx, "2026-W03")
	if err != nil {
		t.Fatalf("GenerateWeekly: %v", err)
	}
	if detail.Weekly.StartDate != "2026-01-12" || detail.Weekly.EndDate != "2026-01-18" {
		t.Errorf("bounds = %+v", detail.Weekly)
	}
	if len(detail.Weekly.Projects) != 1 || detail.Weekly.Projects[0] != "worklog" {
		t.Errorf("projects = %v", detail.Weekly.Projects)
	}
	if !strings.Contains(detail.Body, "shipped the codec") {
		t.Errorf("highlight content missing:\n%s", detail.Body)
	}
}

func TestGenerateWeekly_Idempotent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateDaily(ctx, "2026-01-12", nil, nil, false); err != nil {
		t.Fatal(err)
	}

	first, err := svc.GenerateWeekly(ctx, "2026-W03")
	if err != nil {
		t.Fatalf("GenerateWeekly: %v", err)
	}
	second, err := svc.GenerateWeekly(ctx, "2026-W03")
	if err != nil {
		t.Fatalf("second GenerateWeekly: %v", err)
	}
	if first.Content != second.Content {
		t.Errorf("regeneration with no changes must be byte-identical:\n%q\nvs\n%q", first.Content, second.Content)
	}
}

func TestGenerateWeekly_PreservesEditsAcrossNewDailies(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateDaily(ctx, "2026-01-12", nil, nil, false); err != nil {
		t.Fatal(err)
	}
	initial, err := svc.GenerateWeekly(ctx, "2026-W03")
	if err != nil {
		t.Fatalf("GenerateWeekly: %v", err)
	}

	// User writes a summary into the persisted report.
	const edited = "Landed the merge engine end to end."
	doc, err := document.Parse([]byte(initial.Content))
	if err != nil {
		t.Fatal(err)
	}
	doc.Body = strings.Replace(doc.Body,
		"## "+report.HeadingSummary+"\n\n\n",
		"## "+report.HeadingSummary+"\n\n"+edited+"\n\n", 1)
	updated, err := document.Serialize(doc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateDocument(ctx, initial.Path, updated, ""); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	// A new daily arrives and the report is regenerated.
	if _, err := svc.CreateDaily(ctx, "2026-01-13", nil, nil, false); err != nil {
		t.Fatal(err)
	}
	merged, err := svc.GenerateWeekly(ctx, "2026-W03")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	if got := markdown.ExtractSection(merged.Body, report.HeadingSummary); got != edited {
		t.Errorf("summary = %q, want %q", got, edited)
	}
	if !strings.Contains(merged.Body, "2026-01-13") {
		t.Errorf("new daily missing from regenerated report:\n%s", merged.Body)
	}
}

func TestCreateWeekly_RejectsPresent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateWeekly(ctx, "2026-W03"); err != nil {
		t.Fatalf("CreateWeekly: %v", err)
	}
	_, err := svc.CreateWeekly(ctx, "2026-W03")
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	// Generate still works on a present report.
	if _, err := svc.GenerateWeekly(ctx, "2026-W03"); err != nil {
		t.Fatalf("GenerateWeekly on present report: %v", err)
	}
}

func TestGenerateWeekly_EmptyWeek(t *testing.T) {
	svc := testService(t)
	detail, err := svc.GenerateWeekly(context.Background(), "2026-W10")
	if err != nil {
		t.Fatalf("GenerateWeekly: %v", err)
	}
	if !strings.Contains(detail.Body, "no Daily Logs this week") {
		t.Errorf("missing empty-week fallback:\n%s", detail.Body)
	}
}

func TestGenerateWeekly_InvalidWeek(t *testing.T) {
	svc := testService(t)
	if _, err := svc.GenerateWeekly(context.Background(), "bogus"); err == nil {
		t.Fatal("invalid week id must fail")
	}
}

func TestUpdateDocument_ChecksumConflict(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	detail, err := svc.CreateDaily(ctx, "2026-01-15", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.UpdateDocument(ctx, detail.Path, []byte(detail.Content), "stale-checksum")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if _, err := svc.UpdateDocument(ctx, detail.Path, []byte(detail.Content), detail.Checksum); err != nil {
		t.Fatalf("matching checksum must pass: %v", err)
	}
}

func TestUpdateDocument_RejectsInvalidContent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	detail, err := svc.CreateDaily(ctx, "2026-01-15", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.UpdateDocument(ctx, detail.Path, []byte("no frontmatter"), "")
	if !errors.Is(err, document.ErrMalformedFrontmatter) {
		t.Fatalf("err = %v, want ErrMalformedFrontmatter", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	detail, err := svc.CreateDaily(ctx, "2026-01-15", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteDocument(ctx, detail.Path); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := svc.GetDocument(ctx, detail.Path); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	items, total, err := svc.ListDocuments(ctx, "daily", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("index still lists deleted document")
	}
}

func TestListDocuments(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	_, _ = svc.CreateDaily(ctx, "2026-01-12", nil, nil, false)
	_, _ = svc.CreateDaily(ctx, "2026-01-15", nil, nil, false)
	_, _ = svc.CreateProject(ctx, "worklog", "mkraev/worklog", "", "")

	dailies, total, err := svc.ListDocuments(ctx, "daily", 10, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 2 || len(dailies) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(dailies))
	}
	if dailies[0].Date != "2026-01-15" {
		t.Errorf("dailies must sort newest first")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Work Log":     "work-log",
		"API v2!":      "api-v2",
		"  spaced  ":   "spaced",
		"ALL CAPS":     "all-caps",
		"@#$%":         "project",
		"already-fine": "already-fine",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
