package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGenerator() *ProfileGenerator {
	return NewProfileGenerator(DefaultCatalog())
}

func TestGenerateAllZeros(t *testing.T) {
	g := newTestGenerator()

	profile := g.Generate(fullVector(0))

	for dim, score := range profile.Dimensions {
		assert.Zerof(t, score, "dimension %s", dim)
	}

	// Every dimension is in the concern band, and the sentences come out in
	// the fixed dimension order.
	expected := strings.Join([]string{
		summaryText[DimensionEmotionalClarity][1],
		summaryText[DimensionStressManagement][1],
		summaryText[DimensionGrowthMindset][1],
		summaryText[DimensionBoundaries][1],
		summaryText[DimensionRelationshipSafety][1],
	}, " ")
	assert.Equal(t, expected, profile.Summary)
}

func TestGenerateAllMax(t *testing.T) {
	g := newTestGenerator()

	profile := g.Generate(fullVector(3))

	for dim, score := range profile.Dimensions {
		assert.Equalf(t, 1.0, score, "dimension %s", dim)
	}
	for _, pair := range summaryText {
		assert.NotContains(t, profile.Summary, pair[1])
	}
	assert.Contains(t, profile.Summary, summaryText[DimensionEmotionalClarity][0])
}

func TestGenerateMiddleBandFallsBack(t *testing.T) {
	g := newTestGenerator()

	// All answers at 2 put every dimension at 6/9, between both thresholds.
	profile := g.Generate(fullVector(2))

	for dim, score := range profile.Dimensions {
		assert.InDeltaf(t, 2.0/3.0, score, 1e-9, "dimension %s", dim)
	}
	assert.Equal(t, fallbackSummary, profile.Summary)
}

func TestGenerateBoundariesFeedStressManagement(t *testing.T) {
	g := newTestGenerator()

	profile := g.Generate(map[string]int{"bp_1": 3, "bp_2": 3, "bp_3": 3})

	assert.Equal(t, 1.0, profile.Dimensions[DimensionBoundaries])
	assert.Equal(t, 1.0, profile.Dimensions[DimensionStressManagement])
	assert.Zero(t, profile.Dimensions[DimensionEmotionalClarity])
}

func TestGenerateSingleAnswer(t *testing.T) {
	g := newTestGenerator()

	profile := g.Generate(map[string]int{"ack_1": 2})

	assert.InDelta(t, 2.0/9.0, profile.Dimensions[DimensionEmotionalClarity], 1e-9)
	assert.Contains(t, profile.Summary, summaryText[DimensionEmotionalClarity][1])
}

func TestGenerateIgnoresUnknownQuestions(t *testing.T) {
	g := newTestGenerator()

	withNoise := g.Generate(map[string]int{"ack_1": 2, "mystery": 3})
	clean := g.Generate(map[string]int{"ack_1": 2})

	assert.Equal(t, clean, withNoise)
}

func TestGenerateEmptyVector(t *testing.T) {
	g := newTestGenerator()

	profile := g.Generate(map[string]int{})

	assert.Len(t, profile.Dimensions, 5)
	assert.NotEmpty(t, profile.Summary)
}
