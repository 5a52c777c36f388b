package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"tabboard/pkg/logger"
	"tabboard/pkg/models"
)

// documentKey is the fixed key the whole board document lives under.
const documentKey = "board:document"

// PebbleGateway persists the document in a Pebble database. The document is
// still written whole on every save; Pebble buys durable, synced writes and
// room for snapshot keys alongside the live document.
type PebbleGateway struct {
	db      *pebble.DB
	tabKeys []string
}

// OpenPebbleGateway opens (or creates) a Pebble database at path.
func OpenPebbleGateway(path string, tabKeys []string) (*PebbleGateway, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	logger.Info("pebble_opened", "path", path)
	return &PebbleGateway{db: db, tabKeys: tabKeys}, nil
}

func (g *PebbleGateway) Load(ctx context.Context) (models.Document, error) {
	v, closer, err := g.db.Get([]byte(documentKey))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			logger.Info("document_default", "backend", "pebble")
			return defaultDocument(g.tabKeys), nil
		}
		loadFailures.WithLabelValues("pebble").Inc()
		return models.Document{}, fmt.Errorf("load document: %w", err)
	}
	defer closer.Close()
	var doc models.Document
	if err := json.Unmarshal(v, &doc); err != nil {
		loadFailures.WithLabelValues("pebble").Inc()
		return models.Document{}, fmt.Errorf("decode document: %w", err)
	}
	loads.WithLabelValues("pebble").Inc()
	return doc, nil
}

func (g *PebbleGateway) Save(ctx context.Context, doc models.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := g.db.Set([]byte(documentKey), b, pebble.Sync); err != nil {
		saveFailures.WithLabelValues("pebble").Inc()
		return fmt.Errorf("save document: %w", err)
	}
	saves.WithLabelValues("pebble").Inc()
	logger.Debug("document_saved", "backend", "pebble", "bytes", len(b))
	return nil
}

// SaveSnapshot writes a timestamped copy of the document under a snapshot
// key, leaving the live document untouched.
func (g *PebbleGateway) SaveSnapshot(stamp string, doc models.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	key := []byte("board:snapshot:" + stamp)
	if err := g.db.Set(key, b, pebble.Sync); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (g *PebbleGateway) Close() error {
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	logger.Info("pebble_closed")
	return err
}
