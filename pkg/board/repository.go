package board

import (
	"fmt"
	"strconv"
	"time"

	"tabboard/pkg/models"
)

// titleLimit is the number of leading characters of content used as the
// derived title.
const titleLimit = 50

// Filter narrows a List call. Category is an exact case-insensitive name
// match; Limit/Page slice the concatenated result, Page being 1-based.
type Filter struct {
	Category string
	Limit    int
	Page     int
}

// Patch carries the optional fields of an update. Empty strings mean "not
// provided"; a category change moves the message between tabs.
type Patch struct {
	Title    string
	Content  string
	Category string
}

// Repository implements the message operations as pure transforms over a
// document: every mutation clones the input and returns the new document,
// so a failed save never leaves partial state behind.
type Repository struct {
	res *Resolver
	now func() time.Time
}

// NewRepository returns a repository over the given resolver. now may be
// nil, in which case time.Now is used.
func NewRepository(res *Resolver, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{res: res, now: now}
}

// Resolver returns the category resolver the repository was built with.
func (r *Repository) Resolver() *Resolver { return r.res }

// deriveTitle returns the first titleLimit characters of content, marking
// truncation with a trailing ellipsis. Titles are always derived, never
// stored.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}

func (r *Repository) view(doc models.Document, tabKey string, index int) models.Message {
	content := doc.Tabs[tabKey].Messages[index]
	return models.Message{
		ID:       EncodeID(tabKey, index),
		Title:    deriveTitle(content),
		Content:  content,
		Category: r.res.NameForKey(tabKey),
		TabID:    tabKey,
	}
}

// List returns message views in ascending tab-key order, then ascending
// index. An unknown category yields an empty list, never an error. Legacy
// scalar tabs hold no addressable messages and are skipped.
func (r *Repository) List(doc models.Document, f Filter) []models.Message {
	var keys []string
	if f.Category != "" {
		k := r.res.KeyForName(f.Category)
		if k == "" {
			return []models.Message{}
		}
		if _, ok := doc.Tabs[k]; ok {
			keys = []string{k}
		}
	} else {
		for _, k := range doc.SortedTabKeys() {
			if _, err := strconv.Atoi(k); err == nil {
				keys = append(keys, k)
			}
		}
	}

	out := []models.Message{}
	for _, k := range keys {
		tab := doc.Tabs[k]
		if tab.Legacy {
			continue
		}
		for i := range tab.Messages {
			out = append(out, r.view(doc, k, i))
		}
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.Limit
		if start >= len(out) {
			return []models.Message{}
		}
		end := start + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out
}

// Get returns the view for a single message id.
func (r *Repository) Get(doc models.Document, id string) (models.Message, error) {
	key, idx, err := DecodeID(id)
	if err != nil {
		return models.Message{}, err
	}
	tab, ok := doc.Tabs[key]
	if !ok || tab.Legacy || idx >= tab.Len() {
		return models.Message{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.view(doc, key, idx), nil
}

// Create appends content to the resolved tab and returns the new document
// plus the created view. An unknown or absent category falls back to tab
// "1"; an absent tab is initialized and a legacy scalar tab is coerced to a
// sequence before the append. lastSaved is deliberately left untouched,
// matching the stored format's historical behavior.
func (r *Repository) Create(doc models.Document, title, content, category string) (models.Document, models.Message, error) {
	key := "1"
	if category != "" {
		if k := r.res.KeyForName(category); k != "" {
			key = k
		}
	}

	next := doc.Clone()
	tab := next.Tabs[key].Coerced()
	tab.Messages = append(tab.Messages, content)
	next.Tabs[key] = tab

	idx := len(tab.Messages) - 1
	msg := r.view(next, key, idx)
	msg.CreatedAt = r.now().UTC().Format(time.RFC3339)
	return next, msg, nil
}

// Update replaces content in place and/or moves the message to another tab
// when the category resolves to a different key. A move removes the message
// from its source index (shifting later indices down, which invalidates any
// other outstanding ids for that tab) and appends to the destination.
// lastSaved is refreshed on every successful update. The returned view
// echoes the request id even when a move made it stale, and echoes the
// given title rather than re-deriving one.
func (r *Repository) Update(doc models.Document, id string, p Patch) (models.Document, models.Message, error) {
	key, idx, err := DecodeID(id)
	if err != nil {
		return models.Document{}, models.Message{}, err
	}
	tab, ok := doc.Tabs[key]
	if !ok || tab.Legacy || idx >= tab.Len() {
		return models.Document{}, models.Message{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := doc.Clone()
	content := next.Tabs[key].Messages[idx]
	if p.Content != "" {
		content = p.Content
		next.Tabs[key].Messages[idx] = content
	}

	destKey := key
	if p.Category != "" {
		if k := r.res.KeyForName(p.Category); k != "" && k != key {
			destKey = k
			src := next.Tabs[key]
			src.Messages = append(src.Messages[:idx], src.Messages[idx+1:]...)
			next.Tabs[key] = src
			dest := next.Tabs[destKey].Coerced()
			dest.Messages = append(dest.Messages, content)
			next.Tabs[destKey] = dest
		}
	}

	now := r.now()
	next.LastSaved = now.Format(models.LastSavedLayout)
	msg := models.Message{
		ID:        id,
		Title:     p.Title,
		Content:   content,
		Category:  r.res.NameForKey(destKey),
		TabID:     destKey,
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}
	return next, msg, nil
}

// Delete removes the message at the id's index, shifting later indices in
// that tab down by one, and refreshes lastSaved.
func (r *Repository) Delete(doc models.Document, id string) (models.Document, models.DeletionReceipt, error) {
	key, idx, err := DecodeID(id)
	if err != nil {
		return models.Document{}, models.DeletionReceipt{}, err
	}
	tab, ok := doc.Tabs[key]
	if !ok || tab.Legacy || idx >= tab.Len() {
		return models.Document{}, models.DeletionReceipt{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := doc.Clone()
	src := next.Tabs[key]
	src.Messages = append(src.Messages[:idx], src.Messages[idx+1:]...)
	next.Tabs[key] = src

	now := r.now()
	next.LastSaved = now.Format(models.LastSavedLayout)
	receipt := models.DeletionReceipt{
		MessageID: id,
		TabID:     key,
		Category:  r.res.NameForKey(key),
		DeletedAt: now.UTC().Format(time.RFC3339),
	}
	return next, receipt, nil
}
