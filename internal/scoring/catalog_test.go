package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, 12, c.QuestionCount())
	assert.Equal(t, 3, c.MaxOption())
	assert.Equal(t, []Theme{
		ThemeAcknowledgement,
		ThemeBoundaries,
		ThemeGrowth,
		ThemeRelationships,
	}, c.Themes())

	// Canonical order is theme-major, item-minor.
	assert.Equal(t, []string{
		"ack_1", "ack_2", "ack_3",
		"bp_1", "bp_2", "bp_3",
		"gd_1", "gd_2", "gd_3",
		"rc_1", "rc_2", "rc_3",
	}, c.QuestionOrder())
}

func TestCatalogThemeOf(t *testing.T) {
	c := DefaultCatalog()

	theme, ok := c.ThemeOf("bp_2")
	assert.True(t, ok)
	assert.Equal(t, ThemeBoundaries, theme)

	_, ok = c.ThemeOf("nonexistent")
	assert.False(t, ok)
}

func TestCatalogDimensionDivisor(t *testing.T) {
	c := DefaultCatalog()

	// 3 questions x max option 3
	for _, theme := range c.Themes() {
		assert.Equal(t, 9.0, c.DimensionDivisor(theme))
	}

	small := NewCatalog(
		[]Theme{ThemeGrowth},
		map[Theme][]string{ThemeGrowth: {"g_1", "g_2"}},
		5,
	)
	assert.Equal(t, 10.0, small.DimensionDivisor(ThemeGrowth))
	assert.Equal(t, 0.0, small.DimensionDivisor(ThemeBoundaries))
}

func TestFeatureVectorSize(t *testing.T) {
	// 12 base + 4 theme pairs + 6 pattern stats
	assert.Equal(t, 26, FeatureVectorSize(DefaultCatalog()))
}
