package workspace

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mkraev/worklog/internal/apperr"
	"github.com/mkraev/worklog/internal/checksum"
	"github.com/mkraev/worklog/internal/document"
	"github.com/mkraev/worklog/internal/index"
	"github.com/mkraev/worklog/internal/report"
	"github.com/mkraev/worklog/internal/storage"
)

// Body skeletons for newly created records.
const (
	dailyTemplate   = "## Completed\n\n## Project Progress\n\n## Notes\n"
	projectTemplate = "## Goals\n\n## Milestones\n\n## Notes\n"
)

// Detail is the full representation of a work record.
type Detail struct {
	Path      string                `json:"path"`
	Kind      string                `json:"kind"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Body      string                `json:"body"`
	Checksum  string                `json:"checksum"`
	Daily     *document.DailyMeta   `json:"daily,omitempty"`
	Weekly    *document.WeeklyMeta  `json:"weekly,omitempty"`
	Project   *document.ProjectMeta `json:"project,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ListItem is a lightweight item in a list response.
type ListItem struct {
	Path      string    `json:"path"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Date      string    `json:"date,omitempty"`
	Week      string    `json:"week,omitempty"`
	Projects  []string  `json:"projects"`
	Tags      []string  `json:"tags"`
	Highlight bool      `json:"highlight"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage, codec, aggregation, and index operations.
type Service struct {
	store storage.Provider
	db    *index.DB
}

// NewService creates a new workspace service.
func NewService(store storage.Provider, db *index.DB) *Service {
	return &Service{store: store, db: db}
}

// GetDocument reads and parses a record from storage.
func (s *Service) GetDocument(_ context.Context, path string) (*Detail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	return buildDetail(path, data, doc), nil
}

// CreateDocument validates and writes a new record at path.
func (s *Service) CreateDocument(_ context.Context, path string, content []byte) (*Detail, error) {
	doc, err := document.Parse(content)
	if err != nil {
		return nil, err
	}
	if s.store.Exists(path) {
		return nil, apperr.ErrAlreadyExists
	}
	return s.persist(path, doc)
}

// UpdateDocument writes updated content with optimistic concurrency: when
// ifMatch is non-empty it must equal the checksum of the stored content.
func (s *Service) UpdateDocument(_ context.Context, path string, content []byte, ifMatch string) (*Detail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	doc, err := document.Parse(content)
	if err != nil {
		return nil, err
	}
	return s.persist(path, doc)
}

// DeleteDocument removes a record from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteDocument(path)
}

// ListDocuments returns paginated records, optionally filtered by kind.
func (s *Service) ListDocuments(_ context.Context, kind string, limit, offset int) ([]ListItem, int, error) {
	rows, total, err := s.db.ListDocuments(kind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ListItem, len(rows))
	for i, r := range rows {
		items[i] = ListItem{
			Path:      r.Path,
			Kind:      r.Kind,
			Title:     r.Title,
			Date:      r.Date,
			Week:      r.Week,
			Projects:  nonNilSlice(r.Projects),
			Tags:      nonNilSlice(r.Tags),
			Highlight: r.Highlight,
			Checksum:  r.Checksum,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// ListDailies returns Daily Logs, newest date first.
func (s *Service) ListDailies(ctx context.Context, limit, offset int) ([]ListItem, int, error) {
	return s.ListDocuments(ctx, string(document.KindDaily), limit, offset)
}

// ListWeeks returns Weekly Reports, newest week first.
func (s *Service) ListWeeks(ctx context.Context, limit, offset int) ([]ListItem, int, error) {
	return s.ListDocuments(ctx, string(document.KindWeekly), limit, offset)
}

// ListProjects returns Project records ordered by title.
func (s *Service) ListProjects(ctx context.Context, limit, offset int) ([]ListItem, int, error) {
	return s.ListDocuments(ctx, string(document.KindProject), limit, offset)
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// DailiesForWeek returns the indexed Daily Logs of an ISO week, oldest first.
func (s *Service) DailiesForWeek(_ context.Context, week string) ([]index.DocumentRow, error) {
	if _, _, err := document.WeekBounds(week); err != nil {
		return nil, err
	}
	return s.db.DailiesForWeek(week)
}

// CreateDaily creates a Daily Log for the given date with the standard body
// skeleton. The ISO week is derived from the date.
func (s *Service) CreateDaily(_ context.Context, date string, projects, tags []string, highlight bool) (*Detail, error) {
	normalized, err := document.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	week, err := document.ISOWeek(normalized)
	if err != nil {
		return nil, err
	}
	path := DailyPath(normalized)
	if s.store.Exists(path) {
		return nil, apperr.ErrAlreadyExists
	}

	doc := &document.Document{
		Kind: document.KindDaily,
		Daily: &document.DailyMeta{
			Date:         normalized,
			Week:         week,
			Projects:     nonNilSlice(projects),
			Tags:         nonNilSlice(tags),
			Highlight:    highlight,
			GithubIssues: []string{},
			GithubPRs:    []string{},
		},
		Body:       dailyTemplate,
		SourcePath: path,
	}
	return s.persist(path, doc)
}

// CreateProject creates a Project record. Status and type fall back to
// their defaults when empty.
func (s *Service) CreateProject(_ context.Context, name, githubRepo, status, projectType string) (*Detail, error) {
	if name == "" {
		return nil, &document.ParseError{Err: document.ErrMissingField, Field: "project.name"}
	}
	if githubRepo == "" {
		return nil, &document.ParseError{Err: document.ErrMissingField, Field: "project.github_repo"}
	}
	if status == "" {
		status = "Planning"
	}
	if projectType == "" {
		projectType = "software"
	}
	path := ProjectPath(name)
	if s.store.Exists(path) {
		return nil, apperr.ErrAlreadyExists
	}

	doc := &document.Document{
		Kind: document.KindProject,
		Project: &document.ProjectMeta{
			Name:       name,
			GithubRepo: githubRepo,
			Status:     status,
			Type:       projectType,
		},
		Body:       projectTemplate,
		SourcePath: path,
	}
	return s.persist(path, doc)
}

// CreateWeekly creates the report for a week that has none yet. A report
// that is already present is never overwritten by create; use
// GenerateWeekly to regenerate it.
func (s *Service) CreateWeekly(ctx context.Context, week string) (*Detail, error) {
	if s.store.Exists(WeeklyPath(week)) {
		return nil, apperr.ErrAlreadyExists
	}
	return s.GenerateWeekly(ctx, week)
}

// GenerateWeekly derives the Weekly Report for week from that week's Daily
// Logs. When a report already exists its user-authored sections (Summary,
// Risks & Blockers, Next Week Plan) are preserved and every derived section
// is regenerated. Concurrent regeneration of the same week is not guarded:
// the last writer wins, and callers needing stronger guarantees must
// serialize at the integration boundary.
func (s *Service) GenerateWeekly(_ context.Context, week string) (*Detail, error) {
	start, end, err := document.WeekBounds(week)
	if err != nil {
		return nil, err
	}
	meta := document.WeeklyMeta{Week: week, StartDate: start, EndDate: end}

	rows, err := s.db.DailiesForWeek(week)
	if err != nil {
		return nil, err
	}
	dailies := make([]*document.Document, 0, len(rows))
	for _, r := range rows {
		data, err := s.store.Read(r.Path)
		if err != nil {
			return nil, err
		}
		doc, err := document.Parse(data)
		if err != nil {
			return nil, err
		}
		dailies = append(dailies, doc)
	}

	agg := report.Aggregate(dailies, meta)

	path := WeeklyPath(week)
	body := agg.Content
	if s.store.Exists(path) {
		data, err := s.store.Read(path)
		if err != nil {
			return nil, err
		}
		existing, err := document.Parse(data)
		if err != nil {
			return nil, err
		}
		body = report.Merge(existing.Body, agg)
	}

	weeklyMeta := agg.Meta
	doc := &document.Document{
		Kind:       document.KindWeekly,
		Weekly:     &weeklyMeta,
		Body:       body,
		SourcePath: path,
	}
	return s.persist(path, doc)
}

// persist serializes doc, writes it to path, and indexes it.
func (s *Service) persist(path string, doc *document.Document) (*Detail, error) {
	data, err := document.Serialize(doc)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(path, data); err != nil {
		return nil, err
	}
	cs := checksum.Sum(data)
	if err := s.db.UpsertDocument(index.RowFromDocument(path, doc, cs), doc.Body); err != nil {
		return nil, err
	}
	return buildDetail(path, data, doc), nil
}

func buildDetail(path string, data []byte, doc *document.Document) *Detail {
	return &Detail{
		Path:      path,
		Kind:      string(doc.Kind),
		Title:     doc.Title(),
		Content:   string(data),
		Body:      doc.Body,
		Checksum:  checksum.Sum(data),
		Daily:     doc.Daily,
		Weekly:    doc.Weekly,
		Project:   doc.Project,
		UpdatedAt: time.Now(),
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
