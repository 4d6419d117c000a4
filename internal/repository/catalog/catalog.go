// Package catalog holds the immutable in-memory source catalog.
package catalog

import "github.com/conntour/spacesearch/internal/domain"

// Catalog is the fixed set of sources built once at startup. It is never
// mutated afterwards and is therefore safe for unsynchronized concurrent
// reads from request handlers.
type Catalog struct {
	items []domain.EmbeddedSource
	byID  map[int]int // source id -> index into items
}

// New builds a catalog from embedded sources. The input order is preserved
// as the catalog order.
func New(items []domain.EmbeddedSource) *Catalog {
	byID := make(map[int]int, len(items))
	for i, it := range items {
		byID[it.Source.ID] = i
	}
	return &Catalog{items: items, byID: byID}
}

// GetAll returns every source without embeddings, in catalog order.
func (c *Catalog) GetAll() []domain.Source {
	sources := make([]domain.Source, len(c.items))
	for i, it := range c.items {
		sources[i] = it.Source
	}
	return sources
}

// GetByIDs resolves sources by id. Ids that do not exist in the catalog are
// simply absent from the result map.
func (c *Catalog) GetByIDs(ids []int) map[int]domain.Source {
	found := make(map[int]domain.Source, len(ids))
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			found[id] = c.items[i].Source
		}
	}
	return found
}

// GetAllWithEmbedding returns every source paired with its embedding
// (nil Vector for sources that never embedded), in catalog order.
// The returned slice is shared and must not be modified.
func (c *Catalog) GetAllWithEmbedding() []domain.EmbeddedSource {
	return c.items
}

// Len returns the total number of sources.
func (c *Catalog) Len() int {
	return len(c.items)
}

// EmbeddedCount returns how many sources carry an embedding.
func (c *Catalog) EmbeddedCount() int {
	n := 0
	for _, it := range c.items {
		if it.Vector != nil {
			n++
		}
	}
	return n
}
