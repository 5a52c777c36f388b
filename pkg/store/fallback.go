package store

import (
	"context"

	"tabboard/pkg/logger"
	"tabboard/pkg/models"
)

// FallbackGateway reads and writes through a primary gateway and falls back
// to a secondary one when the primary fails. The reference deployment pairs
// a database primary with a file secondary so the board stays usable when
// the database is unreachable. Saves go to the primary first; on failure
// the secondary absorbs the write so the update is not lost, and the
// operation still reports success.
type FallbackGateway struct {
	primary   Gateway
	secondary Gateway
}

// NewFallbackGateway wires primary with secondary as its fallback.
func NewFallbackGateway(primary, secondary Gateway) *FallbackGateway {
	return &FallbackGateway{primary: primary, secondary: secondary}
}

func (g *FallbackGateway) Load(ctx context.Context) (models.Document, error) {
	doc, err := g.primary.Load(ctx)
	if err == nil {
		return doc, nil
	}
	logger.Warn("primary_load_failed", "error", err)
	fallbacks.WithLabelValues("load").Inc()
	return g.secondary.Load(ctx)
}

func (g *FallbackGateway) Save(ctx context.Context, doc models.Document) error {
	if err := g.primary.Save(ctx, doc); err != nil {
		logger.Warn("primary_save_failed", "error", err)
		fallbacks.WithLabelValues("save").Inc()
		return g.secondary.Save(ctx, doc)
	}
	return nil
}

func (g *FallbackGateway) Close() error {
	err := g.primary.Close()
	if cerr := g.secondary.Close(); err == nil {
		err = cerr
	}
	return err
}
