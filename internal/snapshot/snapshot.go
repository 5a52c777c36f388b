// Package snapshot periodically writes timestamped copies of the board
// document to a backup directory on a cron schedule.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adhocore/gronx"

	"tabboard/pkg/board"
	"tabboard/pkg/config"
	"tabboard/pkg/logger"
	"tabboard/pkg/store"
)

const stampLayout = "20060102T150405Z"

// Start starts the snapshot scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, cfg config.SnapshotConfig, svc *board.Service, gw store.Gateway) (context.CancelFunc, error) {
	if !cfg.Enabled {
		logger.Info("snapshot_disabled")
		return func() {}, nil
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "./snapshots"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Error("snapshot_dir_create_failed", "dir", dir, "error", err)
		return nil, err
	}

	// map empty cron to default daily @02:00
	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "0 2 * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("snapshot_invalid_cron", "cron", cfg.Cron)
		return nil, fmt.Errorf("invalid snapshot cron expression: %s", cfg.Cron)
	}

	logger.Info("snapshot_enabled", "cron", cronExpr, "dir", dir, "keep", cfg.Keep)
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, cronExpr, dir, cfg.Keep, svc, gw)
	return cancel, nil
}

// runScheduler uses gronx to compute the next tick for the configured cron
// expression and sleeps until that time.
func runScheduler(ctx context.Context, cronExpr, dir string, keep int, svc *board.Service, gw store.Gateway) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("snapshot_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("snapshot_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
			if err := RunOnce(ctx, dir, keep, svc, gw); err != nil {
				logger.Error("snapshot_run_error", "error", err)
			}
		case <-ctx.Done():
			logger.Info("snapshot_scheduler_stopping")
			return
		}
	}
}

// RunOnce takes a single snapshot of the current document and prunes old
// snapshot files beyond the keep limit.
func RunOnce(ctx context.Context, dir string, keep int, svc *board.Service, gw store.Gateway) error {
	doc, err := svc.Document(ctx)
	if err != nil {
		return fmt.Errorf("snapshot load: %w", err)
	}

	stamp := time.Now().UTC().Format(stampLayout)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}

	path := filepath.Join(dir, "board-"+stamp+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}

	// when the gateway keeps snapshots natively, store one there too
	if pg, ok := gw.(*store.PebbleGateway); ok {
		if err := pg.SaveSnapshot(stamp, doc); err != nil {
			logger.Warn("snapshot_db_save_failed", "stamp", stamp, "error", err)
		}
	}

	logger.Info("snapshot_written", "path", path)
	return prune(dir, keep)
}

// prune removes the oldest snapshot files so that at most keep remain.
// keep <= 0 disables pruning.
func prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("snapshot prune: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "board-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	// stamps sort lexicographically in time order
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			logger.Warn("snapshot_prune_failed", "file", name, "error", err)
		}
	}
	return nil
}
