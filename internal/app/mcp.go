package app

import (
	"context"
	"log/slog"

	"tabboard/internal/mcp"
)

// startMCP starts the MCP server in a goroutine when enabled, returning a
// channel that carries a fatal MCP error. The channel stays open and silent
// when MCP is disabled.
func (a *App) startMCP(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	if !a.eff.Config.MCP.Enabled {
		return errCh
	}

	srv := mcp.New(a.svc, slog.Default())
	go func() {
		var err error
		switch mcp.Transport(a.eff.Config.MCP.Transport) {
		case mcp.TransportHTTP:
			addr := a.eff.Config.MCP.Address
			if addr == "" {
				addr = ":8090"
			}
			err = srv.ServeHTTP(ctx, addr)
		default:
			err = srv.ServeStdio(ctx)
		}
		if err != nil {
			errCh <- err
		}
	}()
	return errCh
}
