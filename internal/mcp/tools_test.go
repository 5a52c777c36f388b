package mcp

import (
	"path/filepath"
	"testing"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabboard/pkg/board"
	"tabboard/pkg/store"
)

// newTestServer creates a *Server over a board service backed by a temp file
// gateway.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	gw := store.NewFileGateway(filepath.Join(t.TempDir(), "board.json"), nil)
	svc := board.NewService(gw, board.NewResolver(nil), time.Now)
	srv := New(svc, nil)
	require.NotNil(t, srv)
	return srv
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult returns true when the result carries IsError=true.
func isErrorResult(r *mcplib.CallToolResult) bool {
	return r != nil && r.IsError
}

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

func TestNewRegistersTools(t *testing.T) {
	srv := newTestServer(t)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.logger)
	assert.Len(t, srv.tools(), 6)
}

// ─── create / get ─────────────────────────────────────────────────────────────

func TestHandleCreateMessage(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleCreateMessage(t.Context(), toolReq(map[string]any{
		"title":    "hi",
		"content":  "hello board",
		"category": "Second Messages",
		"author":   "alice",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	text := firstText(t, result)
	assert.Contains(t, text, "tab2-msg0")
	assert.Contains(t, text, "hello board")
}

func TestHandleCreateMessageMissingContent(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.handleCreateMessage(t.Context(), toolReq(map[string]any{
		"title": "hi",
	}))
	require.NoError(t, err)
	assert.True(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "content")
}

func TestHandleGetMessage(t *testing.T) {
	srv := newTestServer(t)
	_, err := srv.handleCreateMessage(t.Context(), toolReq(map[string]any{
		"title": "t", "content": "body",
	}))
	require.NoError(t, err)

	result, err := srv.handleGetMessage(t.Context(), toolReq(map[string]any{
		"messageId": "tab1-msg0",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "body")
}

func TestHandleGetMessageErrors(t *testing.T) {
	srv := newTestServer(t)

	// missing argument
	result, err := srv.handleGetMessage(t.Context(), mcplib.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, isErrorResult(result))

	// malformed id
	result, err = srv.handleGetMessage(t.Context(), toolReq(map[string]any{
		"messageId": "garbage",
	}))
	require.NoError(t, err)
	assert.True(t, isErrorResult(result))

	// no message at that position
	result, err = srv.handleGetMessage(t.Context(), toolReq(map[string]any{
		"messageId": "tab1-msg99",
	}))
	require.NoError(t, err)
	assert.True(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "tab1-msg99")
}

// ─── list ─────────────────────────────────────────────────────────────────────

func TestHandleGetMessages(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{"one", "two", "three"} {
		_, err := srv.handleCreateMessage(t.Context(), toolReq(map[string]any{
			"title": "t", "content": body,
		}))
		require.NoError(t, err)
	}

	result, err := srv.handleGetMessages(t.Context(), mcplib.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	text := firstText(t, result)
	assert.Contains(t, text, "one")
	assert.Contains(t, text, "three")

	// MCP numbers arrive as float64
	result, err = srv.handleGetMessages(t.Context(), toolReq(map[string]any{
		"limit": float64(1), "page": float64(2),
	}))
	require.NoError(t, err)
	text = firstText(t, result)
	assert.NotContains(t, text, "one")
	assert.Contains(t, text, "two")
}

func TestHandleGetMessagesUnknownCategory(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.handleGetMessages(t.Context(), toolReq(map[string]any{
		"category": "Nope",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "[]")
}

// ─── update / delete ──────────────────────────────────────────────────────────

func TestHandleUpdateMessageMove(t *testing.T) {
	srv := newTestServer(t)
	_, err := srv.handleCreateMessage(t.Context(), toolReq(map[string]any{
		"title": "t", "content": "body",
	}))
	require.NoError(t, err)

	result, err := srv.handleUpdateMessage(t.Context(), toolReq(map[string]any{
		"messageId": "tab1-msg0",
		"content":   "moved body",
		"category":  "Third Messages",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	text := firstText(t, result)
	// the stale request id is echoed while tabId reflects the destination
	assert.Contains(t, text, "tab1-msg0")
	assert.Contains(t, text, `"tabId":"3"`)
}

func TestHandleDeleteMessage(t *testing.T) {
	srv := newTestServer(t)
	_, err := srv.handleCreateMessage(t.Context(), toolReq(map[string]any{
		"title": "t", "content": "body",
	}))
	require.NoError(t, err)

	result, err := srv.handleDeleteMessage(t.Context(), toolReq(map[string]any{
		"messageId": "tab1-msg0",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "tab1-msg0")

	// second delete of the same id is a not-found error result
	result, err = srv.handleDeleteMessage(t.Context(), toolReq(map[string]any{
		"messageId": "tab1-msg0",
	}))
	require.NoError(t, err)
	assert.True(t, isErrorResult(result))
}

// ─── categories ───────────────────────────────────────────────────────────────

func TestHandleGetCategories(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.handleGetCategories(t.Context(), mcplib.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	text := firstText(t, result)
	assert.Contains(t, text, "First Messages")
	assert.Contains(t, text, "Tenth Messages")
}
