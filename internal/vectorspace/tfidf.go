// Package vectorspace implements the TF-IDF vector space construction and
// the cosine similarity scoring used by the ranking pipeline. One Space is
// built per ranking run per token-stream variant; vocabularies from
// different variants must never be mixed.
package vectorspace

import (
	"math"
	"sort"
)

// Space is a shared vocabulary with inverse-document-frequency weights,
// computed jointly over the job description and all candidate documents of
// one ranking run. The vocabulary order is the fixed iteration order used
// to build dense vectors, so every vector in a run shares dimensionality.
type Space struct {
	Vocabulary []string
	IDF        map[string]float64
}

// TermFrequency counts term occurrences in one document's token stream.
func TermFrequency(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

// BuildSpace computes document frequencies over the given documents and
// derives smoothed IDF weights: idf = ln((N+1)/(df+1)) + 1. The smoothing
// keeps idf strictly positive for every observed term and avoids division
// by zero. The vocabulary is the sorted key set of the IDF map.
func BuildSpace(documents []map[string]int) *Space {
	df := make(map[string]int)
	for _, doc := range documents {
		for term := range doc {
			df[term]++
		}
	}

	n := float64(len(documents))
	idf := make(map[string]float64, len(df))
	vocabulary := make([]string, 0, len(df))
	for term, count := range df {
		idf[term] = math.Log((n+1)/float64(count+1)) + 1
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	return &Space{Vocabulary: vocabulary, IDF: idf}
}

// Vectorize produces the dense TF-IDF vector for one document over the
// space's vocabulary order. Terms absent from the document contribute 0.
func (s *Space) Vectorize(tf map[string]int) []float64 {
	vector := make([]float64, len(s.Vocabulary))
	for i, term := range s.Vocabulary {
		if count, ok := tf[term]; ok {
			vector[i] = float64(count) * s.IDF[term]
		}
	}
	return vector
}
