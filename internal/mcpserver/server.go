// Package mcpserver implements "sjq serve-mcp" (): an MCP
// stdio tool server exposing the query engine as a single tool, sjq_query.
// This is a convenience surface over internal/pipeline, not a new engine
// mode — every call runs the same compiler and stage chain the CLI uses,
// just against an in-memory buffer instead of a streamed file.
package mcpserver

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/semaphore"

	"github.com/kompass-sh/sjq/internal/config"
	"github.com/kompass-sh/sjq/internal/pipeline"
	"github.com/kompass-sh/sjq/internal/querylang"
)

const toolName = "sjq_query"

// QueryParams is the sjq_query tool's input schema.
type QueryParams struct {
	Input string `json:"input" jsonschema:"the raw JSON text to query"`
	Query string `json:"query" jsonschema:"the sjq DSL query to run against input"`
	Pretty bool `json:"pretty,omitempty" jsonschema:"multi-line indented JSON output"`
	Strict bool `json:"strict,omitempty" jsonschema:"fail instead of silently dropping a missing path"`
	MaxTextLength int `json:"max_text_length,omitempty" jsonschema:"cap on string/number/identifier token length"`
}

// Server wraps the MCP server plus the concurrency limiter bounding
// simultaneous engine runs (): each tool call is one
// independent engine run with its own State and call stack, never sharing a
// Path, Filter, or pipeline instance with another.
type Server struct {
	mcp *mcp.Server
	sem *semaphore.Weighted
	cache *querylang.Cache
}

// New builds the MCP server and registers the sjq_query tool. limit bounds
// concurrent engine runs; zero defaults to runtime.NumCPU().
func New(limit int) *Server {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	impl := &mcp.Implementation{Name: "sjq", Version: "0.1.0"}
	srv := mcp.NewServer(impl, nil)

	s := &Server{mcp: srv, sem: semaphore.NewWeighted(int64(limit)), cache: querylang.NewCache()}

	mcp.AddTool(srv, &mcp.Tool{
			Name: toolName,
			Description: "Run a streaming JSON query (sjq DSL) against inline JSON text and return the emitted values.",
		}, s.handleQuery)

	return s
}

// Run blocks serving tool calls over stdio until the context is canceled or
// the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) handleQuery(ctx context.Context, req *mcp.CallToolRequest, args QueryParams) (*mcp.CallToolResult, any, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, fmt.Errorf("acquire run slot: %w", err)
	}
	defer s.sem.Release(1)

	log := config.NewLogger("mcpserver")
	runID := config.NewRunID()
	log.Debug("sjq_query invoked", "run_id", runID, "query", args.Query)

	maxTextLength := args.MaxTextLength
	if maxTextLength <= 0 {
		maxTextLength = config.DefaultProfile().MaxTextLength
	}

	var out strings.Builder
	err := pipeline.Run(ctx, pipeline.Options{
			Query: args.Query,
			Input: strings.NewReader(args.Input),
			Output: &out,
			Pretty: args.Pretty,
			Strict: args.Strict,
			MaxTextLength: maxTextLength,
			Cache: s.cache,
	})
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out.String()}},
	}, nil, nil
}
