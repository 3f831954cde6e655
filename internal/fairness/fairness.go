// Package fairness measures how much PII-shaped tokens move candidate
// scores. It runs the TF-IDF pipeline twice over the same run inputs, once
// on raw and once on anonymized token streams, and aggregates the
// per-candidate score deltas into an advisory report.
//
// The analysis always happens in TF-IDF space, regardless of which mode
// produced the displayed ranking: the embedding collaborator does not
// expose comparable raw/anonymized variants.
package fairness

import (
	"fmt"
	"math"

	"github.com/mateo/candidate-ranker/internal/types"
	"github.com/mateo/candidate-ranker/internal/vectorspace"
)

// Fixed advisory thresholds on the fractional 0-1 score scale.
const (
	maxShiftThreshold = 0.10
	avgShiftThreshold = 0.03
)

// Advisory notes emitted with the report.
const (
	NoteSensitive  = "Potential PII-driven sensitivity detected. Consider keeping anonymization ON."
	NoteNoEvidence = "No strong evidence of PII-sensitive ranking shifts."
	NoteNoData     = "No fairness data available for this run."
)

// Delta is the raw-vs-anonymized score difference for one candidate.
type Delta struct {
	ID       string
	Name     string
	Raw      float64
	Anon     float64
	Delta    float64
	AbsDelta float64
}

// Analyze scores every candidate against the JD in both token-stream
// variants and aggregates the absolute deltas. The candidate with the
// maximum absolute delta is identified; ties resolve to the first candidate
// in input order. ModeUsed is left for the orchestrator to fill in.
func Analyze(jdRaw, jdAnon []string, candidatesRaw, candidatesAnon [][]string, candidates []types.Candidate) (*types.FairnessReport, error) {
	n := len(candidates)
	if len(candidatesRaw) != n || len(candidatesAnon) != n {
		return nil, fmt.Errorf("token stream count mismatch: %d candidates, %d raw, %d anonymized",
			n, len(candidatesRaw), len(candidatesAnon))
	}
	if n == 0 {
		return nil, fmt.Errorf("no candidates to analyze")
	}

	rawScores := ScoreAgainstJD(jdRaw, candidatesRaw)
	anonScores := ScoreAgainstJD(jdAnon, candidatesAnon)

	deltas := make([]Delta, n)
	sum := 0.0
	maxIdx := 0
	for i := range candidates {
		delta := anonScores[i] - rawScores[i]
		deltas[i] = Delta{
			ID:       candidates[i].ID,
			Name:     candidates[i].Name,
			Raw:      rawScores[i],
			Anon:     anonScores[i],
			Delta:    delta,
			AbsDelta: math.Abs(delta),
		}
		sum += deltas[i].AbsDelta
		if deltas[i].AbsDelta > deltas[maxIdx].AbsDelta {
			maxIdx = i
		}
	}

	report := &types.FairnessReport{
		Available:    true,
		AvgShift:     sum / float64(n),
		MaxShift:     deltas[maxIdx].AbsDelta,
		MaxShiftID:   deltas[maxIdx].ID,
		MaxShiftName: deltas[maxIdx].Name,
		Candidates:   n,
		Note:         NoteNoEvidence,
	}
	if report.MaxShift > maxShiftThreshold || report.AvgShift > avgShiftThreshold {
		report.Note = NoteSensitive
	}
	return report, nil
}

// Unavailable builds the degraded report used when fairness computation
// failed: the ranking itself still completes.
func Unavailable(modeUsed string, candidates int) *types.FairnessReport {
	return &types.FairnessReport{
		Available:  false,
		ModeUsed:   modeUsed,
		Candidates: candidates,
		Note:       NoteNoData,
	}
}

// ScoreAgainstJD runs the TF-IDF pipeline over one token-stream variant:
// it builds a fresh Space over the JD plus every candidate document and
// returns each candidate's cosine similarity to the JD.
func ScoreAgainstJD(jdTokens []string, candidateTokens [][]string) []float64 {
	documents := make([]map[string]int, 0, len(candidateTokens)+1)
	jdTF := vectorspace.TermFrequency(jdTokens)
	documents = append(documents, jdTF)

	candidateTFs := make([]map[string]int, len(candidateTokens))
	for i, tokens := range candidateTokens {
		candidateTFs[i] = vectorspace.TermFrequency(tokens)
		documents = append(documents, candidateTFs[i])
	}

	space := vectorspace.BuildSpace(documents)
	jdVector := space.Vectorize(jdTF)

	scores := make([]float64, len(candidateTokens))
	for i, tf := range candidateTFs {
		scores[i] = vectorspace.Cosine(jdVector, space.Vectorize(tf))
	}
	return scores
}
