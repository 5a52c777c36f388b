package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tabboard/pkg/logger"
	"tabboard/pkg/models"
)

// FileGateway persists the document as a single JSON file. Saves are
// write-to-temp-then-rename so a crash mid-write never corrupts the stored
// document.
type FileGateway struct {
	path    string
	tabKeys []string
}

// NewFileGateway returns a gateway writing to path. tabKeys seeds the
// default document returned when the file does not exist yet.
func NewFileGateway(path string, tabKeys []string) *FileGateway {
	return &FileGateway{path: path, tabKeys: tabKeys}
}

func (g *FileGateway) Load(ctx context.Context) (models.Document, error) {
	b, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("document_default", "path", g.path)
			return defaultDocument(g.tabKeys), nil
		}
		loadFailures.WithLabelValues("file").Inc()
		return models.Document{}, fmt.Errorf("read document %s: %w", g.path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		loadFailures.WithLabelValues("file").Inc()
		return models.Document{}, fmt.Errorf("decode document %s: %w", g.path, err)
	}
	loads.WithLabelValues("file").Inc()
	return doc, nil
}

func (g *FileGateway) Save(ctx context.Context, doc models.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		saveFailures.WithLabelValues("file").Inc()
		return fmt.Errorf("create document dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".document-*.tmp")
	if err != nil {
		saveFailures.WithLabelValues("file").Inc()
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		saveFailures.WithLabelValues("file").Inc()
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		saveFailures.WithLabelValues("file").Inc()
		return fmt.Errorf("sync temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		saveFailures.WithLabelValues("file").Inc()
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpName, g.path); err != nil {
		_ = os.Remove(tmpName)
		saveFailures.WithLabelValues("file").Inc()
		return fmt.Errorf("replace document %s: %w", g.path, err)
	}
	saves.WithLabelValues("file").Inc()
	logger.Debug("document_saved", "backend", "file", "path", g.path, "bytes", len(b))
	return nil
}

func (g *FileGateway) Close() error { return nil }
