package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"tabboard/internal/snapshot"
	"tabboard/pkg/board"
	"tabboard/pkg/config"
	"tabboard/pkg/models"
	"tabboard/pkg/store"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff       config.EffectiveConfigResult
	version   string
	commit    string
	buildDate string

	gw  store.Gateway
	svc *board.Service

	srv *http.Server
}

// New initializes resources that do not require a running context (storage
// gateway, resolver, service). It does not start the HTTP server, the MCP
// server or the snapshot scheduler; call Run to start those and block until
// shutdown.
func New(eff config.EffectiveConfigResult, version, commit, buildDate string) (*App, error) {
	_ = godotenv.Load(".env")

	// validate effective config early and fail fast
	if err := validateConfig(eff); err != nil {
		return nil, err
	}

	table := make([]models.Category, 0, len(eff.Config.Board.Tabs))
	for _, t := range eff.Config.Board.Tabs {
		table = append(table, models.Category{ID: t.Key, Name: t.Name})
	}
	res := board.NewResolver(table)

	gw, err := openGateway(eff, res.TabKeys())
	if err != nil {
		return nil, err
	}

	svc := board.NewService(gw, res, time.Now)
	svc.MaxContentBytes = int64(eff.Config.Board.MaxContentSize)

	return &App{
		eff:       eff,
		version:   version,
		commit:    commit,
		buildDate: buildDate,
		gw:        gw,
		svc:       svc,
	}, nil
}

// Service returns the board service, mainly for tests and embedded use.
func (a *App) Service() *board.Service { return a.svc }

// openGateway builds the document gateway per the configured backend.
func openGateway(eff config.EffectiveConfigResult, tabKeys []string) (store.Gateway, error) {
	switch eff.Config.Storage.Backend {
	case "", "file":
		return store.NewFileGateway(eff.FilePath, tabKeys), nil
	case "pebble":
		gw, err := store.OpenPebbleGateway(eff.DBPath, tabKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to open pebble at %s: %w", eff.DBPath, err)
		}
		return gw, nil
	case "pebble+file":
		primary, err := store.OpenPebbleGateway(eff.DBPath, tabKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to open pebble at %s: %w", eff.DBPath, err)
		}
		secondary := store.NewFileGateway(eff.FilePath, tabKeys)
		return store.NewFallbackGateway(primary, secondary), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", eff.Config.Storage.Backend)
	}
}

// Run starts the snapshot scheduler, the MCP server (if enabled) and the
// HTTP server, and blocks until ctx is canceled or a fatal server error
// occurs.
func (a *App) Run(ctx context.Context) error {
	stopSnapshots, err := snapshot.Start(ctx, a.eff.Config.Snapshot, a.svc, a.gw)
	if err != nil {
		return err
	}
	defer stopSnapshots()

	mcpErrCh := a.startMCP(ctx)

	a.printBanner()

	errCh := a.startHTTP(ctx)

	select {
	case <-ctx.Done():
		a.shutdown()
		return nil
	case err := <-errCh:
		a.closeGateway()
		return err
	case err := <-mcpErrCh:
		a.shutdown()
		return err
	}
}

// shutdown drains the HTTP server and closes the gateway.
func (a *App) shutdown() {
	if a.srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(sctx)
	}
	a.closeGateway()
}

func (a *App) closeGateway() {
	if a.gw != nil {
		_ = a.gw.Close()
	}
}
