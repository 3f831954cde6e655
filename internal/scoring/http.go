package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the default HTTP request timeout for collaborator calls.
const DefaultTimeout = 30 * time.Second

// HTTPEmbedder calls the sentence-embedding sidecar service over HTTP.
// The service contract: POST {"texts": [...]} returns {"embeddings":
// [[...], ...], "dim": N, "model": "..."} with one L2-normalized vector per
// input string, in the same order.
type HTTPEmbedder struct {
	endpoint string
	client   *http.Client
}

// embedRequest is the wire request for the embedding service.
type embedRequest struct {
	Texts []string `json:"texts"`
}

// embedResponse is the wire response from the embedding service.
type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Dim        int         `json:"dim"`
	Model      string      `json:"model"`
}

// NewHTTPEmbedder creates an embedder pointed at the given /embed endpoint.
// A nil client uses a default client with DefaultTimeout.
func NewHTTPEmbedder(endpoint string, client *http.Client) *HTTPEmbedder {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPEmbedder{endpoint: endpoint, client: client}
}

// Embed requests one vector per input text. The response order matches the
// request order; a count mismatch is an error.
func (e *HTTPEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	body, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, &Error{Service: "embedding", Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Service: "embedding", Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &Error{Service: "embedding", Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Service: "embedding", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Service: "embedding", Message: "failed to decode response", Cause: err}
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, &Error{
			Service: "embedding",
			Message: fmt.Sprintf("expected %d vectors, got %d", len(texts), len(parsed.Embeddings)),
		}
	}
	return parsed.Embeddings, nil
}

// HTTPRelevanceScorer calls the external ML scoring service over HTTP.
// The service contract: POST {"cosine": ..., "sbert": ..., "hard_skills":
// N, "soft_skills": N, "experience": N} returns {"ml_score": ...}.
type HTTPRelevanceScorer struct {
	endpoint string
	client   *http.Client
}

// relevanceRequest is the wire request for the ML scorer.
type relevanceRequest struct {
	Cosine     float64 `json:"cosine"`
	SBERT      float64 `json:"sbert"`
	HardSkills int     `json:"hard_skills"`
	SoftSkills int     `json:"soft_skills"`
	Experience int     `json:"experience"`
}

// relevanceResponse is the wire response from the ML scorer.
type relevanceResponse struct {
	MLScore float64 `json:"ml_score"`
}

// NewHTTPRelevanceScorer creates a scorer pointed at the given predict
// endpoint. A nil client uses a default client with DefaultTimeout.
func NewHTTPRelevanceScorer(endpoint string, client *http.Client) *HTTPRelevanceScorer {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPRelevanceScorer{endpoint: endpoint, client: client}
}

// Score requests a relevance score for one candidate's features. Any
// non-success status or transport error is returned as an error; the
// caller decides the fallback.
func (s *HTTPRelevanceScorer) Score(ctx context.Context, features Features) (float64, error) {
	body, err := json.Marshal(relevanceRequest{
		Cosine:     features.BaseSimilarity,
		SBERT:      features.SecondarySimilarity,
		HardSkills: features.HardSkillCount,
		SoftSkills: features.SoftSkillCount,
		Experience: features.YearsOfExperience,
	})
	if err != nil {
		return 0, &Error{Service: "ml-scorer", Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, &Error{Service: "ml-scorer", Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, &Error{Service: "ml-scorer", Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &Error{Service: "ml-scorer", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed relevanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, &Error{Service: "ml-scorer", Message: "failed to decode response", Cause: err}
	}
	return parsed.MLScore, nil
}
