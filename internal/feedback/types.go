package feedback

// StarAnalysis reports which STAR components (Situation, Task, Action,
// Result) were detected in an answer.
type StarAnalysis struct {
	Situation bool `json:"situation"`
	Task      bool `json:"task"`
	Action    bool `json:"action"`
	Result    bool `json:"result"`
}

// AnswerFeedback is the structured quality assessment of one answer
// revision. Scores are on a 0-10 scale. WordCount and
// EstimatedDurationSeconds are computed locally and are present even when
// the remote analysis failed.
type AnswerFeedback struct {
	ClarityScore             float64      `json:"clarity_score"`
	StarMethodScore          float64      `json:"star_method_score"`
	StructureScore           float64      `json:"structure_score"`
	ContentScore             float64      `json:"content_score"`
	OverallScore             float64      `json:"overall_score"`
	Strengths                []string     `json:"strengths"`
	Suggestions              []string     `json:"suggestions"`
	StarAnalysis             StarAnalysis `json:"star_analysis"`
	WordCount                int          `json:"word_count"`
	EstimatedDurationSeconds int          `json:"estimated_duration_seconds"`
}

// ScoreBreakdown splits a practice score into its graded dimensions
type ScoreBreakdown struct {
	Clarity   float64 `json:"clarity"`
	Structure float64 `json:"structure"`
	Content   float64 `json:"content"`
	Delivery  float64 `json:"delivery"`
}

// PracticeFeedback is the comparative assessment of a practice attempt
// against the stored answer.
type PracticeFeedback struct {
	Score          float64        `json:"score"`
	Strengths      []string       `json:"strengths"`
	Improvements   []string       `json:"improvements"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	ComparisonNote string         `json:"comparison_note"`
}
