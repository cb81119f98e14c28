package api

import (
	"github.com/mkraev/worklog/internal/workspace"
)

// CreateDocumentRequest is the request body for creating a record from raw
// Markdown content.
type CreateDocumentRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// UpdateDocumentRequest is the request body for updating a record.
type UpdateDocumentRequest struct {
	Content string `json:"content"`
}

// CreateDailyRequest is the request body for creating a Daily Log.
type CreateDailyRequest struct {
	Date      string   `json:"date"`
	Projects  []string `json:"projects"`
	Tags      []string `json:"tags"`
	Highlight bool     `json:"highlight"`
}

// CreateProjectRequest is the request body for creating a Project record.
type CreateProjectRequest struct {
	Name       string `json:"name"`
	GithubRepo string `json:"github_repo"`
	Status     string `json:"status"`
	Type       string `json:"type"`
}

// Detail is the full record response type (aliased from the domain layer).
type Detail = workspace.Detail

// ListItem is a lightweight item in a list response (aliased from the
// domain layer).
type ListItem = workspace.ListItem

// DocumentListResponse wraps paginated record listings.
type DocumentListResponse struct {
	Documents []ListItem `json:"documents"`
	Total     int        `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
