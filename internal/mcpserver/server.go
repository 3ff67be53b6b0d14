// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the Atlas research library to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/evidencemed/atlas/internal/corpus"
	"github.com/evidencemed/atlas/internal/models"
	"github.com/evidencemed/atlas/internal/search"
	"github.com/evidencemed/atlas/internal/searchservice"
)

// Server wraps the MCP server with Atlas tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *searchservice.Service
	corpus *corpus.Corpus
}

// New creates a new MCP server with all Atlas tools registered.
func New(svc *searchservice.Service, c *corpus.Corpus) *Server {
	s := &Server{svc: svc, corpus: c}

	s.mcp = server.NewMCPServer(
		"Atlas",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_library",
		mcp.WithDescription("Search conditions, compounds, therapies, and studies by keyword. "+
			"Results are ordered by match quality (exact title, title prefix, substring, then token match)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchLibrary)

	s.mcp.AddTool(mcp.NewTool("list_studies",
		mcp.WithDescription("List research studies with optional free-text query and facet filters. "+
			"All given filters must hold at once. Results are paginated."),
		mcp.WithString("query", mcp.Description("Optional free-text query")),
		mcp.WithString("type", mcp.Description("Study type: in-vitro, animal, observational, rct, or meta-analysis")),
		mcp.WithString("evidence", mcp.Description("Evidence level: high, moderate, or preliminary")),
		mcp.WithString("compound", mcp.Description("Compound name, matched case-insensitively")),
		mcp.WithNumber("page", mcp.Description("Page number, 1-based")),
	), s.listStudies)

	s.mcp.AddTool(mcp.NewTool("get_compound",
		mcp.WithDescription("Get a compound by id with related compounds and its studies resolved."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Compound id (e.g. curcumin)")),
	), s.getCompound)

	s.mcp.AddTool(mcp.NewTool("condition_categories",
		mcp.WithDescription("List health condition categories with per-category condition counts."),
	), s.conditionCategories)

	// Resource: corpus summary.
	s.mcp.AddResource(
		mcp.NewResource("atlas://corpus-summary", "Corpus Summary",
			mcp.WithResourceDescription("Overview of the loaded research corpus: record counts and vocabularies."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCorpusSummaryResource,
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

func (s *Server) searchLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := s.svc.Search(ctx, query)
	if len(results) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listStudies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := searchservice.StudyQuery{
		Query:    req.GetString("query", ""),
		Compound: req.GetString("compound", ""),
		Page:     req.GetInt("page", 1),
	}
	if t, err := models.ParseStudyType(req.GetString("type", "")); err == nil {
		q.Type = t
	}
	if lvl, err := models.ParseEvidenceLevel(req.GetString("evidence", "")); err == nil {
		q.Evidence = lvl
	}

	page := s.svc.ListStudies(ctx, q)
	out, _ := json.MarshalIndent(map[string]any{
		"studies":     page.Studies,
		"total_items": page.TotalItems,
		"total_pages": page.TotalPages,
		"page":        page.Page,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCompound(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.GetCompound(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) conditionCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts := s.svc.CategoryCounts(ctx)
	type entry struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	out := make([]entry, 0, len(search.Categories))
	for _, cat := range search.Categories {
		out = append(out, entry{ID: cat.ID, Label: cat.Label, Count: counts[cat.ID]})
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) readCorpusSummaryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "atlas://corpus-summary",
			MIMEType: "text/markdown",
			Text:     CorpusSummary(s.corpus),
		},
	}, nil
}
