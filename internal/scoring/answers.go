package scoring

import "github.com/krishmishraghub/The-Mind-Studio/internal/types"

// BuildAnswerVector collapses an ordered list of answers into a
// question_id -> option_value mapping. If the same question appears more
// than once the later entry wins; out-of-range option values pass through
// untouched since the frontend owns validation.
func BuildAnswerVector(answers []types.Answer) map[string]int {
	vector := make(map[string]int, len(answers))
	for _, a := range answers {
		vector[a.QuestionID] = a.OptionValue
	}
	return vector
}
