package domain

import "errors"

var (
	// ErrHistoryNotFound signals a missing history record.
	ErrHistoryNotFound = errors.New("history record not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
