// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes worklog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkraev/worklog/internal/workspace"
)

// Server wraps the MCP server with worklog tools.
type Server struct {
	mcp *server.MCPServer
	svc *workspace.Service
}

// New creates a new MCP server with all worklog tools registered.
func New(svc *workspace.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Worklog",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_worklog",
		mcp.WithDescription("Full-text search through work records (Daily Logs, Weekly Reports, Projects)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchWorklog)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the full content of a work record."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the record (e.g. dailies/2026-01-15.md)")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("create_daily_log",
		mcp.WithDescription("Create a Daily Log for the given date with the standard section skeleton. "+
			"Fill in the sections afterwards by reading and updating the record. Read the format "+
			"contract first via the get_document_contract tool or the worklog://document-format resource."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithString("projects", mcp.Description("Optional comma-separated project names")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tags")),
		mcp.WithBoolean("highlight", mcp.Description("Mark the log as a highlight for the weekly report")),
	), s.createDailyLog)

	s.mcp.AddTool(mcp.NewTool("list_week",
		mcp.WithDescription("List the Daily Logs belonging to an ISO week, oldest first."),
		mcp.WithString("week", mcp.Required(), mcp.Description("ISO week in YYYY-Www format (e.g. 2026-W03)")),
	), s.listWeek)

	s.mcp.AddTool(mcp.NewTool("generate_weekly_report",
		mcp.WithDescription("Generate or regenerate the Weekly Report for an ISO week from that week's "+
			"Daily Logs. User-edited Summary, Risks & Blockers, and Next Week Plan sections are preserved."),
		mcp.WithString("week", mcp.Required(), mcp.Description("ISO week in YYYY-Www format (e.g. 2026-W03)")),
	), s.generateWeeklyReport)

	s.mcp.AddTool(mcp.NewTool("get_document_contract",
		mcp.WithDescription("Returns the canonical work record format contract. "+
			"Call this before creating or updating records to ensure correct structure."),
	), s.getDocumentContract)

	// Resource: record format contract.
	s.mcp.AddResource(
		mcp.NewResource("worklog://document-format", "Work Record Format Contract",
			mcp.WithResourceDescription("Canonical Markdown record format that all work records must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocumentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchWorklog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.GetDocument(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(detail.Content), nil
}

func (s *Server) createDailyLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projects := splitList(req.GetString("projects", ""))
	tags := splitList(req.GetString("tags", ""))
	highlight := req.GetBool("highlight", false)

	detail, err := s.svc.CreateDaily(ctx, date, projects, tags, highlight)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", detail.Path)), nil
}

// splitList parses a comma-separated argument into its non-empty items.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (s *Server) listWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireString("week")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rows, err := s.svc.DailiesForWeek(ctx, week)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no daily logs found for " + week), nil
	}
	var paths []string
	for _, r := range rows {
		paths = append(paths, r.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) generateWeeklyReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireString("week")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.GenerateWeekly(ctx, week)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(detail.Content), nil
}

func (s *Server) getDocumentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readDocumentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "worklog://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
