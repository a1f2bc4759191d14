// Package server implements the MCP editor-integration server: an
// editor extension talks to it over stdio to validate configuration text
// or files without shelling out to the batch CLI.
package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/confsentry/confsentry/core"
	"github.com/confsentry/confsentry/core/ast"
	"github.com/confsentry/confsentry/core/report"
	"github.com/confsentry/confsentry/core/rules"
)

// maxOutputBytes is the maximum response size before truncation (1 MB).
const maxOutputBytes = 1 << 20

// Server is the confsentry MCP editor server.
type Server struct {
	version      string
	allowedPaths []string
	ruleSet      *rules.RuleSet
	schema       *ast.Schema

	mu    sync.RWMutex
	cache *core.FileResult
}

// New creates a new MCP server. If allowedPaths is empty, any path is
// allowed for the validate tool's {path} mode.
func New(version string, allowedPaths []string, ruleSet *rules.RuleSet, schema *ast.Schema) *Server {
	resolved := make([]string, 0, len(allowedPaths))
	for _, p := range allowedPaths {
		abs, err := filepath.Abs(p)
		if err == nil {
			resolved = append(resolved, abs)
		}
	}
	return &Server{
		version:      version,
		allowedPaths: resolved,
		ruleSet:      ruleSet,
		schema:       schema,
	}
}

// Serve starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *Server) Serve() error {
	srv := mcpserver.NewMCPServer(
		"confsentry",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
	)

	s.registerTools(srv)
	s.registerResources(srv)

	return mcpserver.ServeStdio(srv)
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("validate",
			mcp.WithDescription("Validate device configuration, either a file path or inline text"),
			mcp.WithString("path", mcp.Description("Absolute path to a configuration file")),
			mcp.WithString("text", mcp.Description("Inline configuration text to validate")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleValidate,
	)

	srv.AddTool(
		mcp.NewTool("get_ast",
			mcp.WithDescription("Return the parse tree from the last validate call"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetAST,
	)
}

func (s *Server) registerResources(srv *mcpserver.MCPServer) {
	srv.AddResource(
		mcp.NewResource("confsentry://last-result", "Last Validation Result",
			mcp.WithResourceDescription("Rule results from the most recent validate call"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleResourceLastResult,
	)
}

func (s *Server) isPathAllowed(path string) error {
	if len(s.allowedPaths) == 0 {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}

	for _, allowed := range s.allowedPaths {
		rel, err := filepath.Rel(allowed, abs)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(rel, "..") {
			return nil
		}
	}

	return fmt.Errorf("path %q is outside allowed workspaces", path)
}

func (s *Server) handleValidate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	text := request.GetString("text", "")

	if path == "" && text == "" {
		return mcp.NewToolResultError("one of path or text is required"), nil
	}

	var (
		fr  core.FileResult
		err error
	)
	if path != "" {
		if pathErr := s.isPathAllowed(path); pathErr != nil {
			return mcp.NewToolResultError(pathErr.Error()), nil
		}
		fr, err = core.ScanFile(path, s.ruleSet, s.schema)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("validate failed: %v", err)), nil
		}
	} else {
		fr = core.ScanText("inline", text, s.ruleSet, s.schema)
	}

	s.mu.Lock()
	s.cache = &fr
	s.mu.Unlock()

	reporter := report.NewJSONReporter(s.version)
	data, err := reporter.Generate(fr.Results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(truncate(string(data))), nil
}

func (s *Server) handleGetAST(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	if cache == nil {
		return mcp.NewToolResultError("no validation results available — run the validate tool first"), nil
	}

	data, err := ast.MarshalForest(cache.Forest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ast marshalling failed: %v", err)), nil
	}

	return mcp.NewToolResultText(truncate(string(data))), nil
}

func (s *Server) handleResourceLastResult(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	if cache == nil {
		return nil, fmt.Errorf("no validation results available")
	}

	reporter := report.NewJSONReporter(s.version)
	data, err := reporter.Generate(cache.Results)
	if err != nil {
		return nil, fmt.Errorf("generating result JSON: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     truncate(string(data)),
		},
	}, nil
}

// truncate limits output to maxOutputBytes, appending a truncation notice
// if needed.
func truncate(s string) string {
	if len(s) <= maxOutputBytes {
		return s
	}
	return s[:maxOutputBytes] + "\n... [truncated: output exceeded 1MB limit]"
}
