package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiEmbeddingModel is the embedding model used when none is
// configured.
const DefaultGeminiEmbeddingModel = "text-embedding-004"

// GeminiEmbedder is an alternative Embedder backed by the Gemini embedding
// API, for hosts that do not run the SBERT sidecar. Gemini does not
// guarantee unit-length vectors, so the embedder L2-normalizes them itself
// to satisfy the Embedder contract.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates a Gemini-backed embedder. An empty model name
// selects DefaultGeminiEmbeddingModel.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

// Embed batch-embeds the texts and returns unit-length vectors in input order.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	em := e.client.EmbeddingModel(e.model)

	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, &Error{Service: "embedding", Message: "Gemini request failed", Cause: err}
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, &Error{
			Service: "embedding",
			Message: fmt.Sprintf("expected %d vectors, got %d", len(texts), len(resp.Embeddings)),
		}
	}

	vectors := make([][]float64, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		vectors[i] = l2Normalize(embedding.Values)
	}
	return vectors, nil
}

// Close releases the underlying API client.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// l2Normalize converts the provider's float32 vector to a unit-length
// float64 vector. A zero vector stays zero.
func l2Normalize(values []float32) []float64 {
	vector := make([]float64, len(values))
	var norm float64
	for i, v := range values {
		vector[i] = float64(v)
		norm += vector[i] * vector[i]
	}
	if norm == 0 {
		return vector
	}
	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}
