package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mateo/candidate-ranker/internal/types"
)

func TestPrintRankedCandidates_ShowsScoresAndGaps(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	years := 5
	printer.PrintRankedCandidates([]types.ScoredCandidate{
		{
			Name:       "Ada",
			FinalScore: 0.91,
			BaseScore:  0.85,
			Entities: types.EntityProfile{
				HardSkills:        []string{"python", "docker"},
				YearsOfExperience: &years,
			},
			MissingHardSkills: []string{"kubernetes"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "RANKED CANDIDATES")
	assert.Contains(t, out, "#1  Ada")
	assert.Contains(t, out, "91.0%")
	assert.Contains(t, out, "python, docker")
	assert.Contains(t, out, "kubernetes")
	assert.Contains(t, out, "~5+ yrs experience")
}

func TestPrintRankedCandidates_EmptyListPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRankedCandidates(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRankedCandidates_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	ranked := make([]types.ScoredCandidate, 8)
	for i := range ranked {
		ranked[i] = types.ScoredCandidate{Name: "Candidate"}
	}

	NewPrinter(&buf).PrintRankedCandidates(ranked)

	assert.Contains(t, buf.String(), "and 3 more candidates")
}

func TestPrintFairnessReport_AvailableAndDegraded(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintFairnessReport(&types.FairnessReport{
		Available:    true,
		ModeUsed:     "tfidf+raw",
		AvgShift:     0.01,
		MaxShift:     0.04,
		MaxShiftName: "Ada",
		Candidates:   3,
		Note:         "No strong evidence of PII-sensitive ranking shifts.",
	})
	assert.Contains(t, buf.String(), "tfidf+raw")
	assert.Contains(t, buf.String(), "(Ada)")

	buf.Reset()
	printer.PrintFairnessReport(&types.FairnessReport{Available: false, Note: "No fairness data available for this run."})
	assert.Contains(t, buf.String(), "No fairness data")

	buf.Reset()
	printer.PrintFairnessReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAuditEntry(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAuditEntry(&types.AuditEntry{
		ID:         "run-1",
		Timestamp:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Candidates: 2,
		JDLength:   340,
		Top:        []types.TopCandidate{{Name: "Ada", Score: 0.91}},
	})

	out := buf.String()
	assert.Contains(t, out, "AUDIT ENTRY")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Ada (91.0%)")
}
