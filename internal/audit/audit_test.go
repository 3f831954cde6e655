package audit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateo/candidate-ranker/internal/types"
)

func TestNewEntry_SnapshotsRun(t *testing.T) {
	ranked := []types.ScoredCandidate{
		{Name: "Ada", FinalScore: 0.91},
		{Name: "Grace", FinalScore: 0.72},
		{Name: "Alan", FinalScore: 0.55},
		{Name: "Edsger", FinalScore: 0.31},
	}
	fairness := types.FairnessReport{Available: true, ModeUsed: "tfidf+raw", Candidates: 4}

	entry := NewEntry(1200, ranked, fairness, true, false, false)

	assert.NotEmpty(t, entry.ID)
	assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, time.Minute)
	assert.Equal(t, 4, entry.Candidates)
	assert.Equal(t, 1200, entry.JDLength)
	assert.True(t, entry.RemoveStopwords)
	assert.False(t, entry.Anonymize)
	assert.Equal(t, fairness, entry.Fairness)

	require.Len(t, entry.Top, 3)
	assert.Equal(t, types.TopCandidate{Name: "Ada", Score: 0.91}, entry.Top[0])
	assert.Equal(t, types.TopCandidate{Name: "Alan", Score: 0.55}, entry.Top[2])
}

func TestNewEntry_FewerCandidatesThanTopCount(t *testing.T) {
	entry := NewEntry(10, []types.ScoredCandidate{{Name: "Ada", FinalScore: 1}}, types.FairnessReport{}, false, false, false)

	assert.Len(t, entry.Top, 1)
}

func TestNewEntry_UniqueIDs(t *testing.T) {
	a := NewEntry(0, nil, types.FairnessReport{}, false, false, false)
	b := NewEntry(0, nil, types.FairnessReport{}, false, false, false)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestLog_EvictsOldestBeyondCapacity(t *testing.T) {
	log := NewLog(3)

	for i := 0; i < 5; i++ {
		log.Append(types.AuditEntry{ID: fmt.Sprintf("run-%d", i)})
	}

	assert.Equal(t, 3, log.Len())

	entries := log.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "run-4", entries[0].ID)
	assert.Equal(t, "run-3", entries[1].ID)
	assert.Equal(t, "run-2", entries[2].ID)
}

func TestLog_EntriesNewestFirst(t *testing.T) {
	log := NewLog(0) // default capacity

	log.Append(types.AuditEntry{ID: "first"})
	log.Append(types.AuditEntry{ID: "second"})

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].ID)
	assert.Equal(t, "first", entries[1].ID)
}

func TestLog_EntriesReturnsCopy(t *testing.T) {
	log := NewLog(5)
	log.Append(types.AuditEntry{ID: "original"})

	entries := log.Entries()
	entries[0].ID = "mutated"

	assert.Equal(t, "original", log.Entries()[0].ID)
}

func TestLog_DefaultCapacity(t *testing.T) {
	log := NewLog(0)

	for i := 0; i < DefaultCapacity+10; i++ {
		log.Append(types.AuditEntry{ID: fmt.Sprintf("run-%d", i)})
	}

	assert.Equal(t, DefaultCapacity, log.Len())
	assert.Equal(t, fmt.Sprintf("run-%d", DefaultCapacity+9), log.Entries()[0].ID)
}

func TestLog_ConcurrentAppends(t *testing.T) {
	log := NewLog(100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Append(types.AuditEntry{ID: fmt.Sprintf("run-%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, log.Len())
}
