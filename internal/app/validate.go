package app

import (
	"fmt"
	"os"

	"tabboard/pkg/config"
)

// validateConfig performs quick, fail-fast validation of the effective
// configuration before starting long-running services. Keep checks light
// and focused so callers can surface user-friendly errors.
func validateConfig(eff config.EffectiveConfigResult) error {
	backend := eff.Config.Storage.Backend

	switch backend {
	case "", "file":
		if eff.FilePath == "" {
			return fmt.Errorf("document file path is empty: set --file flag, TABBOARD_FILE_PATH env, or storage.file_path in config")
		}
	case "pebble":
		if eff.DBPath == "" {
			return fmt.Errorf("database path is empty: set --db flag, TABBOARD_DB_PATH env, or storage.db_path in config")
		}
	case "pebble+file":
		if eff.DBPath == "" || eff.FilePath == "" {
			return fmt.Errorf("pebble+file backend needs both storage.db_path and storage.file_path")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", backend)
	}

	// TLS cert/key presence check if one is set
	cert := eff.Config.Server.TLS.CertFile
	key := eff.Config.Server.TLS.KeyFile
	if (cert != "" && key == "") || (cert == "" && key != "") {
		return fmt.Errorf("incomplete TLS configuration: both server.tls.cert_file and server.tls.key_file must be set")
	}
	if cert != "" {
		if _, err := os.Stat(cert); err != nil {
			return fmt.Errorf("tls cert file not accessible: %w", err)
		}
		if _, err := os.Stat(key); err != nil {
			return fmt.Errorf("tls key file not accessible: %w", err)
		}
	}

	// tab keys must be unique and non-empty when configured
	seen := map[string]struct{}{}
	for _, t := range eff.Config.Board.Tabs {
		if t.Key == "" {
			return fmt.Errorf("board.tabs entries need a non-empty key")
		}
		if _, dup := seen[t.Key]; dup {
			return fmt.Errorf("duplicate board tab key: %q", t.Key)
		}
		seen[t.Key] = struct{}{}
	}

	// MCP transport must be known when enabled
	if eff.Config.MCP.Enabled {
		switch eff.Config.MCP.Transport {
		case "", "stdio", "http":
		default:
			return fmt.Errorf("unknown mcp transport: %q (want stdio or http)", eff.Config.MCP.Transport)
		}
	}

	return nil
}
