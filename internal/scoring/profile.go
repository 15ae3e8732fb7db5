package scoring

import "strings"

// Dimension names, in the fixed order summary sentences are emitted.
const (
	DimensionEmotionalClarity   = "emotional_clarity"
	DimensionStressManagement   = "stress_management"
	DimensionGrowthMindset      = "growth_mindset"
	DimensionBoundaries         = "boundaries"
	DimensionRelationshipSafety = "relationship_safety"
)

var dimensionOrder = []string{
	DimensionEmotionalClarity,
	DimensionStressManagement,
	DimensionGrowthMindset,
	DimensionBoundaries,
	DimensionRelationshipSafety,
}

const (
	positiveThreshold = 0.7
	concernThreshold  = 0.3
)

// summaryText holds the positive and concern sentences per dimension.
var summaryText = map[string][2]string{
	DimensionEmotionalClarity: {
		"You show strong emotional awareness and reflection.",
		"You may be in a phase where your inner world feels unclear or heavy.",
	},
	DimensionStressManagement: {
		"You tend to recognize patterns in your stress and have some strategies to cope.",
		"Stress may be building up in ways that are hard to manage sustainably.",
	},
	DimensionGrowthMindset: {
		"You seem to be growing a lot through self-reflection and change.",
		"You might be feeling a bit stuck or unsure about your direction right now.",
	},
	DimensionBoundaries: {
		"You are actively thinking about protecting your time, energy, and peace.",
		"There may be opportunities to set gentler boundaries for yourself.",
	},
	DimensionRelationshipSafety: {
		"Safe and supportive connections seem important and present in your life.",
		"You may be craving deeper understanding and safety in relationships.",
	},
}

const fallbackSummary = "Your responses suggest a mix of strengths and growth areas across emotions, boundaries, stress, and relationships."

// Profile is a participant's rule-based well-being profile: five normalized
// dimension scores plus a templated summary.
type Profile struct {
	Dimensions map[string]float64 `json:"dimensions"`
	Summary    string             `json:"summary"`
}

// ProfileGenerator maps answer vectors onto the five well-being dimensions
// using the theme membership of each question.
type ProfileGenerator struct {
	catalog *Catalog
}

// NewProfileGenerator creates a generator bound to a question catalog.
func NewProfileGenerator(catalog *Catalog) *ProfileGenerator {
	return &ProfileGenerator{catalog: catalog}
}

// Generate computes the dimension scores and summary for one answer vector.
// Boundaries/priorities answers feed both the boundaries and the stress
// management dimensions; that overlap is intentional.
func (g *ProfileGenerator) Generate(vector map[string]int) Profile {
	raw := map[string]float64{
		DimensionEmotionalClarity:   0,
		DimensionStressManagement:   0,
		DimensionGrowthMindset:      0,
		DimensionBoundaries:         0,
		DimensionRelationshipSafety: 0,
	}

	for qid, value := range vector {
		theme, ok := g.catalog.ThemeOf(qid)
		if !ok {
			continue
		}
		switch theme {
		case ThemeAcknowledgement:
			raw[DimensionEmotionalClarity] += float64(value)
		case ThemeBoundaries:
			raw[DimensionBoundaries] += float64(value)
			raw[DimensionStressManagement] += float64(value)
		case ThemeGrowth:
			raw[DimensionGrowthMindset] += float64(value)
		case ThemeRelationships:
			raw[DimensionRelationshipSafety] += float64(value)
		}
	}

	normalized := make(map[string]float64, len(raw))
	for dim, sum := range raw {
		divisor := g.catalog.DimensionDivisor(g.sourceTheme(dim))
		if divisor == 0 {
			normalized[dim] = 0
			continue
		}
		normalized[dim] = sum / divisor
	}

	var parts []string
	for _, dim := range dimensionOrder {
		score := normalized[dim]
		switch {
		case score >= positiveThreshold:
			parts = append(parts, summaryText[dim][0])
		case score <= concernThreshold:
			parts = append(parts, summaryText[dim][1])
		}
	}
	if len(parts) == 0 {
		parts = append(parts, fallbackSummary)
	}

	return Profile{
		Dimensions: normalized,
		Summary:    strings.Join(parts, " "),
	}
}

// sourceTheme maps a dimension to the theme whose questions feed it.
func (g *ProfileGenerator) sourceTheme(dimension string) Theme {
	switch dimension {
	case DimensionEmotionalClarity:
		return ThemeAcknowledgement
	case DimensionStressManagement, DimensionBoundaries:
		return ThemeBoundaries
	case DimensionGrowthMindset:
		return ThemeGrowth
	default:
		return ThemeRelationships
	}
}
