package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"tabboard/pkg/board"
)

const (
	serverName    = "tabboard-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout (default, suitable for local agent
	// integrations).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP, for remote agents or multiple
	// concurrent clients.
	TransportHTTP Transport = "http"
)

// Server exposes the board operations as MCP tools.
type Server struct {
	mcp    *mcpsrv.MCPServer
	svc    *board.Service
	logger *slog.Logger
}

// New creates an MCP server backed by the given board service. The server
// is populated with all tools but does not start listening until one of the
// Serve* methods is called.
func New(svc *board.Service, lg *slog.Logger) *Server {
	if lg == nil {
		lg = slog.Default()
	}
	s := &Server{svc: svc, logger: lg}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
	)
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}
	s.mcp = mcpServer
	return s
}

func instructions() string {
	return `You are connected to a tabboard MCP server.

The board stores text messages grouped into named category tabs. Message
ids have the form tab<tabKey>-msg<index> and are positional: deleting or
moving a message shifts the indices of later messages in the same tab, so
re-list after mutations rather than reusing old ids.

Available tools:
- get_messages: list messages, optionally filtered by category and paginated
- get_message: fetch one message by id
- create_message: add a message to a category (default: the first tab)
- update_message: change a message's content and/or move it to another category
- delete_message: remove a message
- get_categories: list the configured category tabs
`
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolGetMessages(),
		s.toolGetMessage(),
		s.toolCreateMessage(),
		s.toolUpdateMessage(),
		s.toolDeleteMessage(),
		s.toolGetCategories(),
	}
}

// resultText wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr wraps an error in a CallToolResult with IsError=true. Errors
// never propagate past the tool boundary as Go errors.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument. The MCP protocol serialises
// numbers as float64.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}
