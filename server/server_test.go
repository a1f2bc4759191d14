package server

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/confsentry/confsentry/core/rules"
)

func newTestServer() *Server {
	return New("test", nil, rules.BuiltinRules(), nil)
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestHandleValidate_RequiresPathOrText(t *testing.T) {
	s := newTestServer()
	res, err := s.handleValidate(context.Background(), toolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected an error result when neither path nor text is given")
	}
}

func TestHandleValidate_TextModeReportsFailures(t *testing.T) {
	s := newTestServer()
	res, err := s.handleValidate(context.Background(), toolRequest(map[string]any{
		"text": "line vty 0 4\n transport input telnet\n",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %+v", res)
	}

	text := textContent(t, res)
	if !strings.Contains(text, "CFG-VTY-TELNET") {
		t.Fatalf("expected telnet rule id in output, got %s", text)
	}
}

func TestHandleGetAST_RequiresPriorValidate(t *testing.T) {
	s := newTestServer()
	res, err := s.handleGetAST(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected an error result before any validate call")
	}
}

func TestHandleGetAST_ReturnsForestAfterValidate(t *testing.T) {
	s := newTestServer()
	if _, err := s.handleValidate(context.Background(), toolRequest(map[string]any{
		"text": "hostname r1\n",
	})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := s.handleGetAST(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %+v", res)
	}
	if !strings.Contains(textContent(t, res), "hostname r1") {
		t.Fatalf("expected hostname node in ast dump")
	}
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("expected content in tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}
