package store

import (
	"context"
	"time"

	"tabboard/pkg/models"
)

// Gateway abstracts whole-document persistence. Load must return a
// well-formed default document when no prior document exists; Save replaces
// the stored document in full. There are no partial updates.
type Gateway interface {
	Load(ctx context.Context) (models.Document, error)
	Save(ctx context.Context, doc models.Document) error
	Close() error
}

// defaultDocument builds the document handed out when the backing store is
// empty: every configured tab as an empty sequence plus a fresh lastSaved
// stamp.
func defaultDocument(tabKeys []string) models.Document {
	return models.NewDocument(tabKeys, time.Now().Format(models.LastSavedLayout))
}
