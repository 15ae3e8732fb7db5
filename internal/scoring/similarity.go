package scoring

import (
	"log/slog"
	"math"
)

// Weights for blending the exact-match ratio with the cosine similarity of
// the feature vectors. Once exact agreement is already strong it is the more
// trustworthy signal; otherwise the vector comparison leads, so sparse data
// with coincidental alignment is not over-rewarded.
const (
	strongExactThreshold = 0.9
	primaryWeight        = 0.6
	secondaryWeight      = 0.4
)

// DegradeReason says why a similarity score fell back to the exact-match
// ratio instead of the blended formula.
type DegradeReason string

const (
	// DegradeNaNFeatures: an encoded feature vector contained NaN.
	DegradeNaNFeatures DegradeReason = "nan_feature_vector"
	// DegradeInvalidCosine: the cosine similarity was NaN or negative.
	DegradeInvalidCosine DegradeReason = "invalid_cosine"
)

// SimilarityResult is the outcome of one comparison. Degraded marks the
// fallback branch as a first-class result rather than a swallowed fault.
type SimilarityResult struct {
	Score    float64       `json:"score"`
	Degraded bool          `json:"degraded"`
	Reason   DegradeReason `json:"reason,omitempty"`
}

// Scorer compares two answer vectors with a hybrid of exact matching and
// feature-vector cosine similarity. Stateless and safe for concurrent use.
type Scorer struct {
	encoder *Encoder
}

// NewScorer creates a scorer that encodes answer vectors with the given
// encoder.
func NewScorer(encoder *Encoder) *Scorer {
	return &Scorer{encoder: encoder}
}

// ComputeSimilarity returns the blended similarity score in [0,1].
func (s *Scorer) ComputeSimilarity(a, b map[string]int) float64 {
	return s.Score(a, b).Score
}

// Score compares two answer vectors and reports the blended score plus
// whether the comparison degraded to the exact-match ratio. It never fails:
// every input produces a score in [0,1].
func (s *Scorer) Score(a, b map[string]int) SimilarityResult {
	exactRatio := ExactMatchRatio(a, b)

	// Every shared answer identical: perfect match, no vectors needed.
	if exactRatio == 1.0 {
		return SimilarityResult{Score: 1.0}
	}

	fa := s.encoder.Encode(a)
	fb := s.encoder.Encode(b)

	if containsNaN(fa) || containsNaN(fb) {
		slog.Warn("feature encoding produced NaN, falling back to exact match ratio",
			"exact_ratio", exactRatio)
		return SimilarityResult{Score: exactRatio, Degraded: true, Reason: DegradeNaNFeatures}
	}

	cosine := cosineSimilarity(fa, fb)
	if math.IsNaN(cosine) || cosine < 0 {
		slog.Warn("cosine similarity invalid, falling back to exact match ratio",
			"cosine", cosine, "exact_ratio", exactRatio)
		return SimilarityResult{Score: clamp01(exactRatio), Degraded: true, Reason: DegradeInvalidCosine}
	}

	var combined float64
	if exactRatio >= strongExactThreshold {
		combined = primaryWeight*exactRatio + secondaryWeight*cosine
	} else {
		combined = primaryWeight*cosine + secondaryWeight*exactRatio
	}

	return SimilarityResult{Score: clamp01(combined)}
}

// ExactMatchRatio is the fraction of questions answered by both participants
// on which their option values agree, or 0 when they share no questions.
func ExactMatchRatio(a, b map[string]int) float64 {
	shared, matches := 0, 0
	for qid, av := range a {
		bv, ok := b[qid]
		if !ok {
			continue
		}
		shared++
		if av == bv {
			matches++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(matches) / float64(shared)
}

// SharedQuestionStats returns the shared-question count and the number of
// exact matches, for the debug endpoint.
func SharedQuestionStats(a, b map[string]int) (shared, matches int) {
	for qid, av := range a {
		if bv, ok := b[qid]; ok {
			shared++
			if av == bv {
				matches++
			}
		}
	}
	return shared, matches
}

// cosineSimilarity computes dot(a,b)/(|a||b|). The vectors arrive
// unit-normalized, but the norms are computed anyway so the zero-vector
// case is well defined as 0.
func cosineSimilarity(a, b []float64) float64 {
	dot, normA, normB := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func containsNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
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
