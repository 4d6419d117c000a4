package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/conntour/spacesearch/internal/domain"
	"github.com/conntour/spacesearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

// embeddingResponse mirrors the OpenAI-compatible API embedding response.
type embeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

func embeddingServer(t *testing.T, vec []float32, inspect func(r *http.Request, body []byte)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if inspect != nil {
			body, _ := io.ReadAll(r.Body)
			inspect(r, body)
		}

		resp := embeddingResponse{Object: "list", Model: "test-model"}
		resp.Data = append(resp.Data, struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}{
			Object:    "embedding",
			Embedding: vec,
			Index:     0,
		})
		resp.Usage.PromptTokens = 10
		resp.Usage.TotalTokens = 10

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestEmbedder(serverURL string) *Embedder {
	return NewEmbedder(&Config{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		Model:      "test-model",
		Dimensions: 4,
		Logger:     zap.NewNop(),
	})
}

func TestEmbedder_Embed(t *testing.T) {
	expectedVec := []float32{0.1, 0.2, 0.3, 0.4}
	server := embeddingServer(t, expectedVec, nil)
	defer server.Close()

	emb := newTestEmbedder(server.URL)

	result, err := emb.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(result.Embedding) != len(expectedVec) {
		t.Fatalf("expected %d dimensions, got %d", len(expectedVec), len(result.Embedding))
	}
	for i := range expectedVec {
		if result.Embedding[i] != expectedVec[i] {
			t.Errorf("dim %d: expected %f, got %f", i, expectedVec[i], result.Embedding[i])
		}
	}
	if result.TotalTokens != 10 {
		t.Errorf("expected 10 total tokens, got %d", result.TotalTokens)
	}
}

func TestEmbedder_EmbedImage(t *testing.T) {
	expectedVec := []float32{0.5, 0.5}
	var gotBody imageEmbRequest
	server := embeddingServer(t, expectedVec, func(_ *http.Request, body []byte) {
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("unmarshal request body: %v", err)
		}
	})
	defer server.Close()

	emb := newTestEmbedder(server.URL)

	result, err := emb.EmbedImage(context.Background(), "https://img.example.com/mars.jpg")
	if err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}
	if len(result.Embedding) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(result.Embedding))
	}
	if len(gotBody.Input) != 1 || gotBody.Input[0].ImageURL != "https://img.example.com/mars.jpg" {
		t.Errorf("unexpected request input: %+v", gotBody.Input)
	}
	if gotBody.Model != "test-model" {
		t.Errorf("unexpected model %q", gotBody.Model)
	}
}

func TestEmbedder_EmbedImage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail": "model overloaded"}`))
	}))
	defer server.Close()

	emb := newTestEmbedder(server.URL)

	_, err := emb.EmbedImage(context.Background(), "https://img.example.com/mars.jpg")
	if err == nil {
		t.Fatal("expected error for API failure")
	}
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestEmbedder_Embed_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": [], "usage": {"prompt_tokens": 0, "total_tokens": 0}}`))
	}))
	defer server.Close()

	emb := newTestEmbedder(server.URL)

	_, err := emb.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for empty data")
	}
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"with detail", `{"detail": "quota exceeded"}`, "quota exceeded"},
		{"without detail", `{"error": "nope"}`, ""},
		{"invalid json", `not-json`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractDetail([]byte(tc.body)); got != tc.expected {
				t.Errorf("extractDetail(%q) = %q, want %q", tc.body, got, tc.expected)
			}
		})
	}
}
