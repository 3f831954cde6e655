package vectorspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermFrequency_CountsOccurrences(t *testing.T) {
	tf := TermFrequency([]string{"go", "python", "go", "go"})

	assert.Equal(t, map[string]int{"go": 3, "python": 1}, tf)
}

func TestTermFrequency_EmptyStream(t *testing.T) {
	assert.Empty(t, TermFrequency(nil))
}

func TestBuildSpace_VocabularyIsSortedUnionOfTerms(t *testing.T) {
	space := BuildSpace([]map[string]int{
		{"python": 2, "django": 1},
		{"python": 1, "react": 3},
	})

	assert.Equal(t, []string{"django", "python", "react"}, space.Vocabulary)
}

func TestBuildSpace_IDFIsSmoothedAndPositive(t *testing.T) {
	space := BuildSpace([]map[string]int{
		{"common": 1, "rare": 1},
		{"common": 1},
		{"common": 1},
	})

	// idf = ln((N+1)/(df+1)) + 1
	assert.InDelta(t, math.Log(4.0/4.0)+1, space.IDF["common"], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, space.IDF["rare"], 1e-12)

	// A term in every document still carries positive weight.
	assert.Greater(t, space.IDF["common"], 0.0)
	assert.Greater(t, space.IDF["rare"], space.IDF["common"])
}

func TestVectorize_SharedDimensionality(t *testing.T) {
	docs := []map[string]int{
		{"python": 2},
		{"react": 1, "vue": 1},
		{},
	}
	space := BuildSpace(docs)

	for _, doc := range docs {
		assert.Len(t, space.Vectorize(doc), len(space.Vocabulary))
	}
}

func TestVectorize_WeightsAreTFTimesIDF(t *testing.T) {
	space := BuildSpace([]map[string]int{
		{"python": 2, "go": 1},
		{"go": 1},
	})
	require.Equal(t, []string{"go", "python"}, space.Vocabulary)

	vector := space.Vectorize(map[string]int{"python": 2, "go": 1})

	assert.InDelta(t, 1*space.IDF["go"], vector[0], 1e-12)
	assert.InDelta(t, 2*space.IDF["python"], vector[1], 1e-12)
}

func TestVectorize_AbsentTermsAreZero(t *testing.T) {
	space := BuildSpace([]map[string]int{{"python": 1}, {"go": 1}})

	vector := space.Vectorize(map[string]int{"go": 1})

	assert.Equal(t, 0.0, vector[sortedIndex(space.Vocabulary, "python")])
}

func sortedIndex(vocabulary []string, term string) int {
	for i, v := range vocabulary {
		if v == term {
			return i
		}
	}
	return -1
}
