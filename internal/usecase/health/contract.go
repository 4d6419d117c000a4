package health

import "context"

// CatalogInfo reports catalog readiness.
type CatalogInfo interface {
	Len() int
	EmbeddedCount() int
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
