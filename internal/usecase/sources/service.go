// Package sources exposes the catalog listing.
package sources

import "github.com/conntour/spacesearch/internal/domain"

// CatalogReader lists catalog sources.
type CatalogReader interface {
	GetAll() []domain.Source
}

// Service serves the full source listing.
type Service struct {
	catalog CatalogReader
}

// New creates a sources service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// GetAll returns every source without embeddings, in catalog order.
func (s *Service) GetAll() []domain.Source {
	return s.catalog.GetAll()
}
