package scoring

import (
	"math"
	"sort"
)

// normEpsilon guards the L2 normalization against numerically negligible
// norms, not just exact zero, to tolerate floating-point noise.
const normEpsilon = 1e-10

// FeatureVectorSize is the fixed encoder output length: one slot per
// catalog question, a mean/spread pair per theme, and six distribution
// statistics over all answered values.
func FeatureVectorSize(c *Catalog) int {
	return c.QuestionCount() + 2*len(c.Themes()) + 6
}

// Encoder expands an answer vector into a fixed-length, unit-normalized
// feature vector for cosine comparison. The encoding is positional: both
// sides of a comparison must use the same catalog.
type Encoder struct {
	catalog *Catalog
}

// NewEncoder creates an encoder bound to a question catalog.
func NewEncoder(catalog *Catalog) *Encoder {
	return &Encoder{catalog: catalog}
}

// Encode converts an answer vector into the feature vector. Missing
// questions contribute 0. The result has unit Euclidean norm unless every
// component is (near) zero, in which case the zero vector is returned.
func (e *Encoder) Encode(vector map[string]int) []float64 {
	features := make([]float64, 0, FeatureVectorSize(e.catalog))

	// Base features: raw answer values in canonical question order.
	for _, qid := range e.catalog.QuestionOrder() {
		features = append(features, float64(vector[qid]))
	}

	// Thematic features: mean and spread per theme, absent answers as 0.
	for _, theme := range e.catalog.Themes() {
		qids := e.catalog.ThemeQuestions(theme)
		values := make([]float64, len(qids))
		for i, qid := range qids {
			values[i] = float64(vector[qid])
		}
		features = append(features, mean(values), safeStd(values))
	}

	// Pattern features: intensity and distribution over the values actually
	// present in the answer vector, canonical or not. Keys are sorted so the
	// float summation order is fixed; map iteration order would make the
	// encoding bit-unstable across calls.
	qids := make([]string, 0, len(vector))
	for qid := range vector {
		qids = append(qids, qid)
	}
	sort.Strings(qids)
	present := make([]float64, 0, len(qids))
	for _, qid := range qids {
		present = append(present, float64(vector[qid]))
	}
	features = append(features,
		mean(present),
		safeStd(present),
		maxOf(present),
		minOf(present),
		fractionWhere(present, func(v float64) bool { return v >= 2 }),
		fractionWhere(present, func(v float64) bool { return v <= 1 }),
	)

	return normalize(features)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// safeStd computes the sample standard deviation, defined as 0 when fewer
// than two values are available or the computation degenerates to NaN.
func safeStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	std := math.Sqrt(sum / float64(len(values)-1))
	if math.IsNaN(std) {
		return 0
	}
	return std
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func fractionWhere(values []float64, pred func(float64) bool) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if pred(v) {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

// normalize divides the vector by its Euclidean norm, or zeroes it out when
// the norm is below normEpsilon.
func normalize(features []float64) []float64 {
	norm := 0.0
	for _, v := range features {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > normEpsilon {
		for i := range features {
			features[i] /= norm
		}
		return features
	}
	for i := range features {
		features[i] = 0
	}
	return features
}
