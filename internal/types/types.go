package types

// Answer is a single questionnaire response: the question identifier and the
// numeric index of the chosen option (0,1,2,...).
type Answer struct {
	QuestionID  string `json:"question_id" binding:"required"`
	OptionValue int    `json:"option_value"`
}

// ParticipantSubmission represents the request structure for the submit
// endpoint. Answers deliberately has no required tag: an empty list is a
// valid submission that produces the all-concern profile.
type ParticipantSubmission struct {
	ParticipantID   string   `json:"participant_id" binding:"required"`
	Answers         []Answer `json:"answers"`
	ParticipantName string   `json:"participant_name"`
}

// SimilarMatch describes a previously stored participant whose response
// pattern is highly similar to the one just submitted.
type SimilarMatch struct {
	ParticipantID        string  `json:"participant_id"`
	ParticipantName      string  `json:"participant_name"`
	Similarity           float64 `json:"similarity"`
	SimilarityPercentage float64 `json:"similarity_percentage"`
}

// SimilarPair describes a pair of stored participants above the match threshold.
type SimilarPair struct {
	ParticipantA         string  `json:"participant_a"`
	ParticipantAName     string  `json:"participant_a_name"`
	ParticipantB         string  `json:"participant_b"`
	ParticipantBName     string  `json:"participant_b_name"`
	Similarity           float64 `json:"similarity"`
	SimilarityPercentage float64 `json:"similarity_percentage"`
}
