// Package ingest builds the source catalog from the external feed,
// reusing previously cached embeddings where the feed did not change.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/conntour/spacesearch/internal/domain"
	"github.com/conntour/spacesearch/internal/metrics"
	"github.com/conntour/spacesearch/internal/repository/embcache"
	"github.com/conntour/spacesearch/internal/repository/feed"
)

// ImageEmbedder vectorizes a source's image.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, url string) (domain.EmbeddingResult, error)
}

// Embedder vectorizes text; used for sources without an image link.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Config holds the build inputs.
type Config struct {
	FeedPath  string
	CachePath string
}

// Service runs the one-shot catalog build at startup.
type Service struct {
	cfg    Config
	images ImageEmbedder
	texts  Embedder
	logger *zap.Logger
}

// New creates an ingest service.
func New(cfg Config, images ImageEmbedder, texts Embedder, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, images: images, texts: texts, logger: logger}
}

// Build parses the feed and pairs every source with an embedding. A failed
// embedding leaves the source in the catalog without a vector; it is never
// fatal. Freshly computed vectors are persisted in a single batched cache
// save at the end of the build.
func (s *Service) Build(ctx context.Context) ([]domain.EmbeddedSource, error) {
	sources, err := feed.Load(s.cfg.FeedPath)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	s.logger.Info("Loaded feed", zap.String("path", s.cfg.FeedPath), zap.Int("sources", len(sources)))

	var cached map[int][]float32
	if embcache.IsValid(s.cfg.CachePath, s.cfg.FeedPath) {
		cached = embcache.Load(s.cfg.CachePath, s.logger)
	} else {
		s.logger.Info("Embedding cache invalid or missing, recomputing",
			zap.String("path", s.cfg.CachePath))
	}

	ws := embcache.NewWorkingSet(cached, metrics.EmbeddingCacheTotal)

	items := make([]domain.EmbeddedSource, 0, len(sources))
	embedded := 0
	for _, src := range sources {
		vec, err := ws.GetOrCompute(src.ID, func() ([]float32, error) {
			return s.embedSource(ctx, src)
		})
		if err != nil {
			s.logger.Warn("Failed to embed source, keeping it without a vector",
				zap.Int("source_id", src.ID),
				zap.String("name", src.Name),
				zap.Error(err),
			)
			vec = nil
		}
		if vec != nil {
			embedded++
		}
		items = append(items, domain.EmbeddedSource{Source: src, Vector: vec})
	}

	if ws.Dirty() {
		embcache.Save(ws.Vectors(), s.cfg.CachePath, s.logger)
	}

	s.logger.Info("Catalog build complete",
		zap.Int("sources", len(items)),
		zap.Int("embedded", embedded),
	)
	return items, nil
}

// embedSource vectorizes the source image, or its text metadata when the
// feed carried no image link.
func (s *Service) embedSource(ctx context.Context, src domain.Source) ([]float32, error) {
	var result domain.EmbeddingResult
	var err error
	if src.ImageURL != nil {
		result, err = s.images.EmbedImage(ctx, *src.ImageURL)
	} else {
		result, err = s.texts.Embed(ctx, src.Name+" "+src.Description)
	}
	if err != nil {
		return nil, err
	}
	return result.Embedding, nil
}
