// Package scoring defines the external collaborator contracts consumed by
// the ranking orchestrator (an embedding service and an ML relevance
// scorer) plus HTTP and Gemini implementations. The core stays fully
// testable with fake collaborators returning deterministic values.
package scoring

import (
	"context"
	"fmt"
)

// Embedder produces one dense, L2-normalized vector per input string, in
// input order. The orchestrator sends the JD first, then each candidate text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Features is the request payload for the ML relevance scorer.
type Features struct {
	// BaseSimilarity is the active-mode similarity score for the candidate.
	BaseSimilarity float64
	// SecondarySimilarity carries the embedding similarity when the
	// embedding mode is active, 0 otherwise.
	SecondarySimilarity float64
	HardSkillCount      int
	SoftSkillCount      int
	// YearsOfExperience is 0 when unknown.
	YearsOfExperience int
}

// RelevanceScorer asks the external ML model for a relevance score. Any
// error is treated by the orchestrator as "use base similarity instead";
// retries are a policy decision of the host, not of this client.
type RelevanceScorer interface {
	Score(ctx context.Context, features Features) (float64, error)
}

// Error represents a collaborator request failure.
type Error struct {
	Service string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s collaborator error: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s collaborator error: %s", e.Service, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
