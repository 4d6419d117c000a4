package domain

// Source is a single catalog item built from the external feed.
// Sources are immutable after catalog construction.
type Source struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	LaunchDate  string  `json:"launch_date"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	Status      string  `json:"status"`
}

// SearchResult is a source with its per-query confidence score.
// Confidence is relative to the candidate pool of one query, not an
// absolute similarity measure.
type SearchResult struct {
	Source
	Confidence float64 `json:"confidence"`
}

// EmbeddedSource pairs a source with its embedding vector.
// Vector is nil for sources that never produced an embedding.
type EmbeddedSource struct {
	Source Source
	Vector []float32
}
