// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes highlight operations for LLM integration via stdio transport.
// Highlights captured through it are always attributed to "claude".
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/store"
)

// Server wraps the MCP server with highlight tools.
type Server struct {
	mcp *server.MCPServer
	svc *hlservice.Service
}

// New creates a new MCP server with all highlight tools registered.
func New(svc *hlservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"hl",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("hl_add",
		mcp.WithDescription("Capture a highlight. Author is automatically set to 'claude'."),
		mcp.WithString("content", mcp.Required(), mcp.Description("The highlight: quote, idea, insight, or note")),
		mcp.WithString("source", mcp.Description("Where this came from (URL, book, paper, conversation)")),
	), s.addHighlight)

	s.mcp.AddTool(mcp.NewTool("hl_search",
		mcp.WithDescription("Search highlights by keyword across content and source."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 20)")),
	), s.searchHighlights)

	s.mcp.AddTool(mcp.NewTool("hl_show",
		mcp.WithDescription("Show full details of a highlight entry by ID."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Entry ID")),
	), s.showHighlight)

	s.mcp.AddTool(mcp.NewTool("hl_recent",
		mcp.WithDescription("List recent highlights. Optionally filter by author ('user' or 'claude')."),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 20)")),
		mcp.WithString("author", mcp.Description("Filter by author: 'user' or 'claude'")),
	), s.recentHighlights)

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

func (s *Server) addHighlight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source := req.GetString("source", "")

	entry, err := s.svc.Add(ctx, content, hlservice.AuthorClaude, source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Saved highlight #%d", entry.ID)), nil
}

func (s *Server) searchHighlights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", store.DefaultLimit)

	results, err := s.svc.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No highlights found for: %s", query)), nil
	}
	return mcp.NewToolResultText(formatEntryList(fmt.Sprintf("Found %d results:", len(results)), results)), nil
}

func (s *Server) showHighlight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.Get(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if entry == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No entry with id %d", id)), nil
	}
	return mcp.NewToolResultText(hlservice.FormatFull(entry)), nil
}

func (s *Server) recentHighlights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", store.DefaultLimit)
	author := req.GetString("author", "")

	results, err := s.svc.Recent(ctx, limit, author)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No highlights yet."), nil
	}
	return mcp.NewToolResultText(formatEntryList(fmt.Sprintf("%d recent highlights:", len(results)), results)), nil
}

func formatEntryList(header string, entries []store.Entry) string {
	lines := []string{header, ""}
	for i := range entries {
		lines = append(lines, hlservice.FormatShort(&entries[i]))
	}
	return strings.Join(lines, "\n")
}
