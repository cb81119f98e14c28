// Package workspace implements the work-record lifecycle over the file
// store and the index: creating dailies and projects, and generating
// weekly reports with merge-on-regenerate.
package workspace

import (
	"regexp"
	"strings"
)

// Workspace layout. One directory per record kind.
const (
	DailyDir   = "dailies"
	WeekDir    = "weeks"
	ProjectDir = "projects"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9-]+`)

// DailyPath returns the workspace-relative path of a daily log.
func DailyPath(date string) string {
	return DailyDir + "/" + date + ".md"
}

// WeeklyPath returns the workspace-relative path of a weekly report.
func WeeklyPath(week string) string {
	return WeekDir + "/" + week + ".md"
}

// ProjectPath returns the workspace-relative path of a project record.
func ProjectPath(name string) string {
	return ProjectDir + "/" + Slugify(name) + ".md"
}

// Slugify converts a project name to a file-name-safe slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStripRe.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "project"
	}
	return s
}
