package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delim = "---"

// Parse decodes raw file bytes into a typed Document. The input must start
// with a YAML frontmatter block fenced by --- lines; the document kind is
// discriminated by the "type" field (daily, weekly) or the presence of a
// "project" mapping. Validation fills optional fields with their defaults.
func Parse(raw []byte) (*Document, error) {
	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{Body: strings.TrimSpace(body)}

	switch fm["type"] {
	case "daily":
		doc.Kind = KindDaily
		doc.Daily, err = validateDaily(fm)
	case "weekly":
		doc.Kind = KindWeekly
		doc.Weekly, err = validateWeekly(fm)
	default:
		if _, ok := fm["project"]; ok {
			doc.Kind = KindProject
			doc.Project, err = validateProject(fm)
			break
		}
		return nil, unknownKind()
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Serialize encodes a Document back to file bytes: the frontmatter mapping
// in deterministic key order, fenced by ---, exactly one blank line, the
// body, and a single trailing newline.
func Serialize(doc *Document) ([]byte, error) {
	var fm any
	switch doc.Kind {
	case KindDaily:
		m := doc.Daily
		fm = dailyFrontmatter{
			Type:      "daily",
			Date:      m.Date,
			Week:      m.Week,
			Projects:  emptyIfNil(m.Projects),
			Tags:      emptyIfNil(m.Tags),
			Highlight: m.Highlight,
			Github: githubFrontmatter{
				Issues: emptyIfNil(m.GithubIssues),
				PRs:    emptyIfNil(m.GithubPRs),
			},
		}
	case KindWeekly:
		m := doc.Weekly
		fm = weeklyFrontmatter{
			Type:      "weekly",
			Week:      m.Week,
			StartDate: m.StartDate,
			EndDate:   m.EndDate,
			Projects:  emptyIfNil(m.Projects),
		}
	case KindProject:
		m := doc.Project
		fm = projectFrontmatter{
			Project: projectFields{
				Name:       m.Name,
				GithubRepo: m.GithubRepo,
				Status:     m.Status,
				Type:       m.Type,
			},
		}
	default:
		return nil, unknownKind()
	}

	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("document: encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: encode frontmatter: %w", err)
	}
	buf.WriteString(delim + "\n\n")

	if body := strings.TrimSpace(doc.Body); body != "" {
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Frontmatter wire types. Struct field order fixes the serialized key order
// per document kind.
type dailyFrontmatter struct {
	Type      string            `yaml:"type"`
	Date      string            `yaml:"date"`
	Week      string            `yaml:"week"`
	Projects  []string          `yaml:"projects"`
	Tags      []string          `yaml:"tags"`
	Highlight bool              `yaml:"highlight"`
	Github    githubFrontmatter `yaml:"github"`
}

type githubFrontmatter struct {
	Issues []string `yaml:"issues"`
	PRs    []string `yaml:"prs"`
}

type weeklyFrontmatter struct {
	Type      string   `yaml:"type"`
	Week      string   `yaml:"week"`
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
	Projects  []string `yaml:"projects"`
}

type projectFrontmatter struct {
	Project projectFields `yaml:"project"`
}

type projectFields struct {
	Name       string `yaml:"name"`
	GithubRepo string `yaml:"github_repo"`
	Status     string `yaml:"status"`
	Type       string `yaml:"type"`
}

// splitFrontmatter separates the YAML block (between leading --- fences)
// from the Markdown body. Unlike a generic notes parser there is no
// fallback: a record without a leading fence is malformed.
func splitFrontmatter(raw []byte) (map[string]any, string, error) {
	trimmed := bytes.TrimLeft(raw, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, "", malformed()
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, "", malformed()
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, "", malformed()
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, body, nil
}

func validateDaily(fm map[string]any) (*DailyMeta, error) {
	raw, ok := fm["date"]
	if !ok {
		return nil, missingField("date")
	}
	date, err := NormalizeDate(raw)
	if err != nil {
		return nil, err
	}

	week := stringField(fm, "week")
	if week == "" {
		week, err = ISOWeek(date)
		if err != nil {
			return nil, err
		}
	}

	meta := &DailyMeta{
		Date:      date,
		Week:      week,
		Projects:  stringList(fm["projects"]),
		Tags:      stringList(fm["tags"]),
		Highlight: boolField(fm, "highlight"),
	}
	if gh, ok := fm["github"].(map[string]any); ok {
		meta.GithubIssues = stringList(gh["issues"])
		meta.GithubPRs = stringList(gh["prs"])
	} else {
		meta.GithubIssues = []string{}
		meta.GithubPRs = []string{}
	}
	return meta, nil
}

func validateWeekly(fm map[string]any) (*WeeklyMeta, error) {
	week := stringField(fm, "week")
	if week == "" {
		return nil, missingField("week")
	}

	start := stringField(fm, "start_date")
	end := stringField(fm, "end_date")
	if start == "" || end == "" {
		var err error
		start, end, err = WeekBounds(week)
		if err != nil {
			return nil, err
		}
	}

	return &WeeklyMeta{
		Week:      week,
		StartDate: start,
		EndDate:   end,
		Projects:  stringList(fm["projects"]),
	}, nil
}

func validateProject(fm map[string]any) (*ProjectMeta, error) {
	p, ok := fm["project"].(map[string]any)
	if !ok {
		return nil, missingField("project")
	}
	name := stringField(p, "name")
	if name == "" {
		return nil, missingField("project.name")
	}
	repo := stringField(p, "github_repo")
	if repo == "" {
		return nil, missingField("project.github_repo")
	}

	status := stringField(p, "status")
	if status == "" {
		status = "Planning"
	}
	ptype := stringField(p, "type")
	if ptype == "" {
		ptype = "software"
	}
	return &ProjectMeta{Name: name, GithubRepo: repo, Status: status, Type: ptype}, nil
}

// NormalizeDate coerces a date-like value (string or time.Time, which is
// what yaml.v3 yields for unquoted dates) to YYYY-MM-DD.
func NormalizeDate(v any) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02"), nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006/01/02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02"), nil
			}
		}
		return "", invalidDate(s)
	default:
		return "", invalidDate(fmt.Sprintf("%v", v))
	}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
