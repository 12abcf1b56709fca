package engine

import "math"

// Entry is one non-zero component of a sparse vector.
type Entry struct {
	Index  int
	Weight float64
}

// Vector is a sparse TF-IDF weight vector, entries sorted by Index. Vectors
// produced by the vectorizer are L2-normalized, so the dot product of two of
// them is their cosine similarity.
type Vector []Entry

// Dot computes the dot product by merging the two sorted entry lists.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].Index < o[j].Index:
			i++
		case v[i].Index > o[j].Index:
			j++
		default:
			sum += v[i].Weight * o[j].Weight
			i++
			j++
		}
	}
	return sum
}

// Cosine is Dot clamped into [0,1] to absorb floating-point drift on
// normalized non-negative vectors.
func (v Vector) Cosine(o Vector) float64 {
	s := v.Dot(o)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// normalize scales the vector to unit L2 length in place. A zero vector is
// left unchanged.
func (v Vector) normalize() {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i].Weight /= norm
	}
}
