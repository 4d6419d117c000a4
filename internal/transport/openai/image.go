package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/conntour/spacesearch/internal/domain"
)

// imageClient posts multimodal embedding requests directly; go-openai only
// models text input for the embeddings endpoint.
type imageClient struct {
	apiKey     string
	url        string
	model      string
	dimensions int
	client     *http.Client
}

func newImageClient(apiKey, baseURL, model string, dimensions int) *imageClient {
	return &imageClient{
		apiKey:     apiKey,
		url:        strings.TrimRight(baseURL, "/") + "/embeddings",
		model:      model,
		dimensions: dimensions,
		client:     http.DefaultClient,
	}
}

type imageInput struct {
	ImageURL string `json:"image_url"`
}

type imageEmbRequest struct {
	Model      string       `json:"model"`
	Input      []imageInput `json:"input"`
	Dimensions int          `json:"dimensions,omitempty"`
}

type imageEmbResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *imageClient) embed(ctx context.Context, imageURL string) (domain.EmbeddingResult, error) {
	body, err := json.Marshal(imageEmbRequest{
		Model:      c.model,
		Input:      []imageInput{{ImageURL: imageURL}},
		Dimensions: c.dimensions,
	})
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("image embedding request: %w", domain.ErrEmbeddingProviderError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if detail := extractDetail(raw); detail != "" {
			return domain.EmbeddingResult{}, fmt.Errorf("image embedding API error %d: %s: %w",
				resp.StatusCode, detail, domain.ErrEmbeddingProviderError)
		}
		return domain.EmbeddingResult{}, fmt.Errorf("image embedding API error %d: %w",
			resp.StatusCode, domain.ErrEmbeddingProviderError)
	}

	var result imageEmbResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("decode image embedding response: %w", err)
	}
	if len(result.Data) == 0 {
		return domain.EmbeddingResult{}, fmt.Errorf("empty image embedding response: %w", domain.ErrEmbeddingProviderError)
	}

	return domain.EmbeddingResult{
		Embedding:    result.Data[0].Embedding,
		PromptTokens: result.Usage.PromptTokens,
		TotalTokens:  result.Usage.TotalTokens,
	}, nil
}
