// Package audit builds per-run audit entries and retains them in a
// bounded in-memory history. Durable storage is the host's responsibility;
// the engine only produces the entry content.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mateo/candidate-ranker/internal/types"
)

// DefaultCapacity is the number of ranking runs retained before the oldest
// entries are evicted.
const DefaultCapacity = 25

// topCount is how many ranked candidates the entry snapshots.
const topCount = 3

// NewEntry snapshots one completed ranking run.
func NewEntry(jdLength int, ranked []types.ScoredCandidate, fairness types.FairnessReport, removeStopwords, anonymize, useEmbeddings bool) types.AuditEntry {
	top := make([]types.TopCandidate, 0, topCount)
	for i, candidate := range ranked {
		if i == topCount {
			break
		}
		top = append(top, types.TopCandidate{Name: candidate.Name, Score: candidate.FinalScore})
	}

	return types.AuditEntry{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		Candidates:      len(ranked),
		JDLength:        jdLength,
		RemoveStopwords: removeStopwords,
		Anonymize:       anonymize,
		UseEmbeddings:   useEmbeddings,
		Fairness:        fairness,
		Top:             top,
	}
}

// Log is a bounded, concurrency-safe audit history. Appending beyond the
// capacity evicts the oldest entry.
type Log struct {
	mu       sync.Mutex
	capacity int
	entries  []types.AuditEntry
}

// NewLog creates a log with the given capacity; zero or negative values
// use DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Append records one entry, evicting the oldest when full.
func (l *Log) Append(entry types.AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Entries returns a copy of the history, newest first.
func (l *Log) Entries() []types.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]types.AuditEntry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}
	return out
}

// Len reports the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
