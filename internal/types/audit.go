package types

import "time"

// TopCandidate is a compact name/score pair recorded in the audit trail.
type TopCandidate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// AuditEntry is the snapshot of one ranking run: its inputs, the toggles
// used, and summary outputs. The engine only produces the entry; retention
// beyond the bounded in-memory history is the host's responsibility.
type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Candidates int `json:"num_candidates"`
	JDLength   int `json:"jd_length"`

	RemoveStopwords bool `json:"remove_stopwords"`
	Anonymize       bool `json:"anonymize"`
	UseEmbeddings   bool `json:"use_embeddings"`

	Fairness FairnessReport `json:"fairness"`
	Top      []TopCandidate `json:"top"`
}
