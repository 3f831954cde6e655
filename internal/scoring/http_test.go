package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"job description", "resume one"}, req.Texts)

		_ = json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float64{{1, 0}, {0, 1}},
			Dim:        2,
			Model:      "test-model",
		})
	}))
	defer server.Close()

	embedder := NewHTTPEmbedder(server.URL, server.Client())
	vectors, err := embedder.Embed(context.Background(), []string{"job description", "resume one"})

	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, vectors)
}

func TestHTTPEmbedder_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float64{{1, 0}}})
	}))
	defer server.Close()

	embedder := NewHTTPEmbedder(server.URL, server.Client())
	_, err := embedder.Embed(context.Background(), []string{"a", "b"})

	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "embedding", svcErr.Service)
	assert.Contains(t, svcErr.Message, "expected 2 vectors")
}

func TestHTTPEmbedder_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	embedder := NewHTTPEmbedder(server.URL, server.Client())
	_, err := embedder.Embed(context.Background(), []string{"a"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPEmbedder_ServiceUnreachable(t *testing.T) {
	embedder := NewHTTPEmbedder("http://127.0.0.1:0/embed", nil)

	_, err := embedder.Embed(context.Background(), []string{"a"})

	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "embedding", svcErr.Service)
	assert.Error(t, errors.Unwrap(svcErr))
}

func TestHTTPRelevanceScorer_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req relevanceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.InDelta(t, 0.42, req.Cosine, 1e-12)
		assert.InDelta(t, 0.77, req.SBERT, 1e-12)
		assert.Equal(t, 5, req.HardSkills)
		assert.Equal(t, 2, req.SoftSkills)
		assert.Equal(t, 7, req.Experience)

		_ = json.NewEncoder(w).Encode(relevanceResponse{MLScore: 0.83})
	}))
	defer server.Close()

	scorer := NewHTTPRelevanceScorer(server.URL, server.Client())
	score, err := scorer.Score(context.Background(), Features{
		BaseSimilarity:      0.42,
		SecondarySimilarity: 0.77,
		HardSkillCount:      5,
		SoftSkillCount:      2,
		YearsOfExperience:   7,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.83, score, 1e-12)
}

func TestHTTPRelevanceScorer_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	scorer := NewHTTPRelevanceScorer(server.URL, server.Client())
	_, err := scorer.Score(context.Background(), Features{})

	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "ml-scorer", svcErr.Service)
}

func TestHTTPRelevanceScorer_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	scorer := NewHTTPRelevanceScorer(server.URL, server.Client())
	_, err := scorer.Score(context.Background(), Features{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestError_Format(t *testing.T) {
	withCause := &Error{Service: "embedding", Message: "request failed", Cause: errors.New("boom")}
	withoutCause := &Error{Service: "ml-scorer", Message: "unexpected status 502"}

	assert.Equal(t, "embedding collaborator error: request failed: boom", withCause.Error())
	assert.Equal(t, "ml-scorer collaborator error: unexpected status 502", withoutCause.Error())
	assert.EqualError(t, errors.Unwrap(withCause), "boom")
	assert.Nil(t, errors.Unwrap(withoutCause))
}
