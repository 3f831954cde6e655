package types

// FairnessReport aggregates the raw-vs-anonymized score deltas for one
// ranking run. The analysis always runs in TF-IDF space, even when the
// displayed ranking came from the embedding mode.
type FairnessReport struct {
	// Available is false when fairness computation failed and the run
	// degraded to "no fairness data" instead of aborting.
	Available bool `json:"available"`

	// ModeUsed names the scoring mode that produced the final ranking,
	// e.g. "tfidf+raw" or "embeddings+anonymized".
	ModeUsed string `json:"mode_used"`

	// AvgShift and MaxShift are the average and maximum absolute score
	// delta (anonymized minus raw) on the fractional 0-1 scale.
	AvgShift float64 `json:"avg_shift"`
	MaxShift float64 `json:"max_shift"`

	// MaxShiftID and MaxShiftName identify the candidate with the largest
	// absolute delta (ties resolve to the first candidate in input order).
	MaxShiftID   string `json:"max_shift_id,omitempty"`
	MaxShiftName string `json:"max_shift_name,omitempty"`

	Candidates int    `json:"candidates"`
	Note       string `json:"note"`
}
