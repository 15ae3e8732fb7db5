package scoring

// Theme identifies one of the fixed questionnaire categories.
type Theme string

const (
	ThemeAcknowledgement Theme = "acknowledgement"
	ThemeBoundaries      Theme = "boundaries_priorities"
	ThemeGrowth          Theme = "growth_direction"
	ThemeRelationships   Theme = "relationships_communication"
)

// Catalog describes the question set the frontend serves: which question
// identifiers exist, which theme each belongs to, and the canonical order
// used for feature encoding. The encoder output is positional, so the order
// here must stay stable across both sides of a comparison.
type Catalog struct {
	themes    []Theme
	questions map[Theme][]string
	maxOption int

	order   []string
	themeOf map[string]Theme
}

// NewCatalog builds a catalog from a theme ordering, the per-theme question
// identifiers (in canonical item order), and the maximum option value.
func NewCatalog(themes []Theme, questions map[Theme][]string, maxOption int) *Catalog {
	c := &Catalog{
		themes:    themes,
		questions: questions,
		maxOption: maxOption,
		themeOf:   make(map[string]Theme),
	}
	for _, theme := range themes {
		for _, qid := range questions[theme] {
			c.order = append(c.order, qid)
			c.themeOf[qid] = theme
		}
	}
	return c
}

// DefaultCatalog returns the fixed question set: four themes of three
// questions each, options 0-3. Question IDs must match the frontend.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]Theme{ThemeAcknowledgement, ThemeBoundaries, ThemeGrowth, ThemeRelationships},
		map[Theme][]string{
			ThemeAcknowledgement: {"ack_1", "ack_2", "ack_3"},
			ThemeBoundaries:      {"bp_1", "bp_2", "bp_3"},
			ThemeGrowth:          {"gd_1", "gd_2", "gd_3"},
			ThemeRelationships:   {"rc_1", "rc_2", "rc_3"},
		},
		3,
	)
}

// Themes returns the themes in canonical order.
func (c *Catalog) Themes() []Theme {
	return c.themes
}

// QuestionOrder returns all question identifiers in canonical
// (theme-major, item-minor) order.
func (c *Catalog) QuestionOrder() []string {
	return c.order
}

// ThemeQuestions returns the question identifiers of one theme.
func (c *Catalog) ThemeQuestions(theme Theme) []string {
	return c.questions[theme]
}

// ThemeOf reports which theme a question identifier belongs to.
func (c *Catalog) ThemeOf(qid string) (Theme, bool) {
	theme, ok := c.themeOf[qid]
	return theme, ok
}

// MaxOption returns the highest option value the frontend offers.
func (c *Catalog) MaxOption() int {
	return c.maxOption
}

// QuestionCount returns the total number of questions across all themes.
func (c *Catalog) QuestionCount() int {
	return len(c.order)
}

// DimensionDivisor returns the normalization divisor for a profile dimension
// fed by the given theme: question count times max option value. With the
// default catalog this is 9 for every theme.
func (c *Catalog) DimensionDivisor(theme Theme) float64 {
	return float64(len(c.questions[theme]) * c.maxOption)
}
