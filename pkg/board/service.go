package board

import (
	"context"
	"fmt"
	"time"

	"tabboard/pkg/logger"
	"tabboard/pkg/models"
	"tabboard/pkg/store"
	"tabboard/pkg/telemetry"
)

// Service binds the pure repository transforms to a document gateway. Every
// mutation is one load, one in-memory transform, one save; there is no
// cross-operation transaction or lock, so concurrent writers race at the
// granularity of whole-document replacement (last save wins). Callers that
// need multi-writer safety must serialize around the gateway themselves.
type Service struct {
	gw   store.Gateway
	repo *Repository

	// MaxContentBytes rejects create/update content larger than this many
	// bytes. Zero disables the check.
	MaxContentBytes int64
}

// NewService returns a service over the gateway and resolver. now may be
// nil; it exists so tests can pin timestamps.
func NewService(gw store.Gateway, res *Resolver, now func() time.Time) *Service {
	return &Service{gw: gw, repo: NewRepository(res, now)}
}

// Repository exposes the underlying pure transforms.
func (s *Service) Repository() *Repository { return s.repo }

func (s *Service) load(ctx context.Context) (models.Document, error) {
	end := telemetry.StartSpan(ctx, "doc.load")
	defer end()
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return doc, nil
}

func (s *Service) save(ctx context.Context, doc models.Document) error {
	end := telemetry.StartSpan(ctx, "doc.save")
	defer end()
	if err := s.gw.Save(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Service) checkContent(content string) error {
	if s.MaxContentBytes > 0 && int64(len(content)) > s.MaxContentBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, len(content), s.MaxContentBytes)
	}
	return nil
}

// ListMessages loads the document and returns the filtered message views.
func (s *Service) ListMessages(ctx context.Context, f Filter) ([]models.Message, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(doc, f), nil
}

// GetMessage returns a single message view by id.
func (s *Service) GetMessage(ctx context.Context, id string) (models.Message, error) {
	if id == "" {
		return models.Message{}, fmt.Errorf("%w: messageId", ErrMissingField)
	}
	doc, err := s.load(ctx)
	if err != nil {
		return models.Message{}, err
	}
	return s.repo.Get(doc, id)
}

// CreateMessage appends a new message. title and content are required;
// author is accepted for interface compatibility but never persisted (the
// stored document has nowhere to put it).
func (s *Service) CreateMessage(ctx context.Context, title, content, category, author string) (models.Message, error) {
	if title == "" {
		return models.Message{}, fmt.Errorf("%w: title", ErrMissingField)
	}
	if content == "" {
		return models.Message{}, fmt.Errorf("%w: content", ErrMissingField)
	}
	if err := s.checkContent(content); err != nil {
		return models.Message{}, err
	}
	doc, err := s.load(ctx)
	if err != nil {
		return models.Message{}, err
	}
	next, msg, err := s.repo.Create(doc, title, content, category)
	if err != nil {
		return models.Message{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return models.Message{}, err
	}
	logger.Info("message_created", "id", msg.ID, "tab", msg.TabID)
	return msg, nil
}

// UpdateMessage patches content and/or moves the message between tabs.
func (s *Service) UpdateMessage(ctx context.Context, id string, p Patch, author string) (models.Message, error) {
	if id == "" {
		return models.Message{}, fmt.Errorf("%w: messageId", ErrMissingField)
	}
	if err := s.checkContent(p.Content); err != nil {
		return models.Message{}, err
	}
	doc, err := s.load(ctx)
	if err != nil {
		return models.Message{}, err
	}
	next, msg, err := s.repo.Update(doc, id, p)
	if err != nil {
		return models.Message{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return models.Message{}, err
	}
	logger.Info("message_updated", "id", id, "tab", msg.TabID)
	return msg, nil
}

// DeleteMessage removes a message and returns the deletion receipt.
func (s *Service) DeleteMessage(ctx context.Context, id string) (models.DeletionReceipt, error) {
	if id == "" {
		return models.DeletionReceipt{}, fmt.Errorf("%w: messageId", ErrMissingField)
	}
	doc, err := s.load(ctx)
	if err != nil {
		return models.DeletionReceipt{}, err
	}
	next, receipt, err := s.repo.Delete(doc, id)
	if err != nil {
		return models.DeletionReceipt{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return models.DeletionReceipt{}, err
	}
	logger.Info("message_deleted", "id", id, "tab", receipt.TabID)
	return receipt, nil
}

// Categories returns the configured tab entries. No document access.
func (s *Service) Categories() []models.Category {
	return s.repo.Resolver().Categories()
}

// Document returns the raw stored document.
func (s *Service) Document(ctx context.Context) (models.Document, error) {
	return s.load(ctx)
}

// ReplaceDocument overwrites the stored document wholesale. This is the raw
// persistence endpoint of the surrounding HTTP layer.
func (s *Service) ReplaceDocument(ctx context.Context, doc models.Document) error {
	return s.save(ctx, doc)
}
