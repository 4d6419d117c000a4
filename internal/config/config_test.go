package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 0},
		Embedding: EmbeddingConfig{Model: "clip-vit-base"},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingModel(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_DefaultLimitAboveMax(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Embedding: EmbeddingConfig{Model: "clip-vit-base"},
		Search:    SearchConfig{DefaultLimit: 200, MaxLimit: 100},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default_limit > max_limit")
	}

	expected := "search.default_limit (200) must not exceed search.max_limit (100)"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Search.DefaultLimit != 15 {
		t.Errorf("expected DefaultLimit=15, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("expected MaxLimit=100, got %d", cfg.Search.MaxLimit)
	}
	if cfg.History.DefaultPageSize != 10 {
		t.Errorf("expected DefaultPageSize=10, got %d", cfg.History.DefaultPageSize)
	}
	if cfg.History.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.History.MaxPageSize)
	}
	if cfg.Catalog.FeedPath == "" {
		t.Error("expected non-empty default feed path")
	}
	if cfg.Catalog.CachePath == "" {
		t.Error("expected non-empty default cache path")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog: CatalogConfig{FeedPath: "custom/feed.json", CachePath: "custom/emb.cache"},
		Search:  SearchConfig{DefaultLimit: 25, MaxLimit: 50},
		History: HistoryConfig{DefaultPageSize: 5, MaxPageSize: 20},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Catalog.FeedPath != "custom/feed.json" {
		t.Errorf("expected FeedPath='custom/feed.json', got %q", cfg.Catalog.FeedPath)
	}
	if cfg.Search.DefaultLimit != 25 {
		t.Errorf("expected DefaultLimit=25, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.History.MaxPageSize != 20 {
		t.Errorf("expected MaxPageSize=20, got %d", cfg.History.MaxPageSize)
	}
}
