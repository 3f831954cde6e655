package vectorspace

import "math"

// Cosine returns the cosine similarity of two equal-length dense vectors,
// clamped to [0,1]. A zero-magnitude vector (a document with no recognized
// tokens) yields 0 rather than NaN; every candidate always gets a score.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// DotNormalized returns the dot product of two pre-L2-normalized vectors,
// clamped to [0,1]. For unit vectors this equals cosine similarity without
// the redundant normalization; it is the call shape used for externally
// supplied embedding vectors.
func DotNormalized(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return clamp01(dot)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
