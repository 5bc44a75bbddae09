package entity

// EvaluationResult is the verdict on a finished agent run.
type EvaluationResult struct {
	Success    bool     `json:"success"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
	Feedback   string   `json:"feedback"`
}

type EvaluationCriteria struct {
	Task   string
	Answer string
	Steps  []AgentStep
}
