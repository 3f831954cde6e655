package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mateo/candidate-ranker/internal/ranking"
	"github.com/mateo/candidate-ranker/internal/types"
)

// RankCandidate is one candidate in a rank request.
type RankCandidate struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	ResumeText string `json:"resume_text" validate:"required"`
}

// RankRequest represents the request body for /api/rank.
type RankRequest struct {
	JD         string          `json:"jd" validate:"required"`
	Candidates []RankCandidate `json:"candidates" validate:"required,min=1,dive"`

	RemoveStopwords bool `json:"remove_stopwords"`
	Anonymize       bool `json:"anonymize"`
	UseEmbeddings   bool `json:"use_embeddings"`
}

// handleRank runs one ranking request through the pipeline.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	candidates := make([]types.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		candidates[i] = types.Candidate{
			ID:         c.ID,
			Name:       c.Name,
			Email:      c.Email,
			ResumeText: c.ResumeText,
		}
	}

	result, err := ranking.Rank(r.Context(), req.JD, candidates, ranking.Options{
		RemoveStopwords: req.RemoveStopwords,
		Anonymize:       req.Anonymize,
		UseEmbeddings:   req.UseEmbeddings,
		Dictionary:      s.dictionary,
		Embedder:        s.embedder,
		Relevance:       s.relevance,
	})
	if err != nil {
		if errors.Is(err, ranking.ErrEmptyJobDescription) || errors.Is(err, ranking.ErrNoCandidates) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Ranking failed: "+err.Error())
		return
	}

	s.auditLog.Append(result.Audit)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAudit returns the bounded audit history, newest first.
func (s *Server) handleAudit(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"entries": s.auditLog.Entries(),
	})
}

// handleJobSearch proxies the external job search integration.
func (s *Server) handleJobSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.errorResponse(w, http.StatusBadRequest, "q parameter is required")
		return
	}
	location := r.URL.Query().Get("location")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	jobs := s.jobs.Search(r.Context(), query, location, limit)
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": jobs})
}
