// Package document implements the frontmatter codec for work records:
// Markdown files with a YAML metadata block, covering Daily Logs,
// Weekly Reports, and Projects.
package document

// Kind discriminates the three document variants.
type Kind string

// Document kinds, resolved at parse time from the frontmatter.
const (
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindProject Kind = "project"
)

// DailyMeta is the metadata of a Daily Log.
type DailyMeta struct {
	Date         string   `json:"date"` // YYYY-MM-DD, unique within a workspace
	Week         string   `json:"week"` // ISO week id YYYY-Www, derived from Date
	Projects     []string `json:"projects"` // insertion-ordered set of project names
	Tags         []string `json:"tags"`
	Highlight    bool     `json:"highlight"`
	GithubIssues []string `json:"github_issues"`
	GithubPRs    []string `json:"github_prs"`
}

// WeeklyMeta is the metadata of a Weekly Report. EndDate is always
// StartDate + 6 days (Monday through Sunday of the ISO week).
type WeeklyMeta struct {
	Week      string   `json:"week"` // YYYY-Www, unique within a workspace
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Projects  []string `json:"projects"` // derived from the week's dailies, not authored
}

// ProjectMeta is the metadata of a Project record.
type ProjectMeta struct {
	Name       string `json:"name"`
	GithubRepo string `json:"github_repo"`
	Status     string `json:"status"`
	Type       string `json:"type"`
}

// Document is a tagged union over the three record kinds. Exactly one of
// Daily, Weekly, Project is non-nil, matching Kind.
type Document struct {
	Kind    Kind
	Daily   *DailyMeta
	Weekly  *WeeklyMeta
	Project *ProjectMeta

	// Body is the Markdown body, trimmed of surrounding blank lines.
	Body string

	// SourcePath is an opaque handle set by the caller; the codec never
	// interprets it.
	SourcePath string
}

// Title returns a human-readable display name for the document.
func (d *Document) Title() string {
	switch d.Kind {
	case KindDaily:
		return d.Daily.Date
	case KindWeekly:
		return "Week " + d.Weekly.Week
	case KindProject:
		return d.Project.Name
	}
	return ""
}
