package board

import (
	"strings"

	"tabboard/pkg/models"
)

// DefaultTabs returns the built-in tab table: ten tabs keyed "1" through
// "10". The table is configuration, not data; tabs are never created or
// renamed at runtime.
func DefaultTabs() []models.Category {
	return []models.Category{
		{ID: "1", Name: "First Messages"},
		{ID: "2", Name: "Second Messages"},
		{ID: "3", Name: "Third Messages"},
		{ID: "4", Name: "Fourth Messages"},
		{ID: "5", Name: "Fifth Messages"},
		{ID: "6", Name: "Sixth Messages"},
		{ID: "7", Name: "Seventh Messages"},
		{ID: "8", Name: "Eighth Messages"},
		{ID: "9", Name: "Ninth Messages"},
		{ID: "10", Name: "Tenth Messages"},
	}
}

// Resolver maps category names to tab keys and back over a fixed, ordered
// tab table. The table is a slice rather than a map so scan order is
// stable: when names collide, the later entry wins.
type Resolver struct {
	table []models.Category
}

// NewResolver builds a resolver over the given table, falling back to the
// default tabs when the table is empty.
func NewResolver(table []models.Category) *Resolver {
	if len(table) == 0 {
		table = DefaultTabs()
	}
	return &Resolver{table: append([]models.Category(nil), table...)}
}

// KeyForName resolves a category name (case-insensitive) to its tab key.
// Returns "" when no entry matches; callers keep their current or default
// tab key in that case.
func (r *Resolver) KeyForName(name string) string {
	key := ""
	for _, c := range r.table {
		if strings.EqualFold(c.Name, name) {
			key = c.ID
		}
	}
	return key
}

// NameForKey returns the display name for a tab key. Keys outside the
// configured table get a synthesized "Tab <key>" label so documents with
// extra tabs still render.
func (r *Resolver) NameForKey(key string) string {
	name := ""
	for _, c := range r.table {
		if c.ID == key {
			name = c.Name
		}
	}
	if name == "" {
		return "Tab " + key
	}
	return name
}

// Categories returns the configured tab entries in table order. It never
// consults a document.
func (r *Resolver) Categories() []models.Category {
	return append([]models.Category(nil), r.table...)
}

// TabKeys returns the configured tab keys in table order, used to seed a
// fresh document.
func (r *Resolver) TabKeys() []string {
	keys := make([]string, 0, len(r.table))
	for _, c := range r.table {
		keys = append(keys, c.ID)
	}
	return keys
}
