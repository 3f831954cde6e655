// Package types provides type definitions for structured data used throughout the candidate-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Candidate represents one applicant submitted for a ranking run.
// The ranking pipeline treats it as an immutable input; no step mutates it.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	ResumeText string `json:"resume_text"`
}

// EntityProfile holds the dictionary-extracted entities for one text.
type EntityProfile struct {
	HardSkills        []string `json:"hard_skills"`
	SoftSkills        []string `json:"soft_skills"`
	Education         []string `json:"education"`
	Certifications    []string `json:"certifications"`
	JobTitles         []string `json:"job_titles"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty"`
}

// TermWeight is one term's contribution to a candidate's TF-IDF vector.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// ScoredCandidate is the fully-annotated ranking result for one candidate.
// Created once per candidate per ranking run and immutable afterwards.
type ScoredCandidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`

	// FinalScore is the blended score in [0,1]; BaseScore is the raw
	// similarity the active mode produced before blending.
	FinalScore float64 `json:"score"`
	BaseScore  float64 `json:"raw_score"`

	TokenCount int `json:"token_count"`

	Entities EntityProfile `json:"entities"`

	// Skill gaps: JD skills absent from the candidate's extracted sets.
	MissingHardSkills []string `json:"missing_hard_skills"`
	MissingSoftSkills []string `json:"missing_soft_skills"`

	// TermWeights is the per-term TF-IDF breakdown, sorted by weight
	// descending. Empty when the similarity space is opaque (embeddings).
	TermWeights []TermWeight `json:"term_weights,omitempty"`
}
