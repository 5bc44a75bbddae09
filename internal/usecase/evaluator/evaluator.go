package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
)

// maxStepObservation keeps the evaluation request small; the verdict only
// needs the gist of each tool result.
const maxStepObservation = 2000

type Evaluator struct {
	llm    output.LLMPort
	logger output.LoggerPort
	prompt string
}

func New(llm output.LLMPort, logger output.LoggerPort, prompt string) *Evaluator {
	return &Evaluator{
		llm:    llm,
		logger: logger,
		prompt: prompt,
	}
}

func (e *Evaluator) Evaluate(ctx context.Context, criteria entity.EvaluationCriteria) (*entity.EvaluationResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: e.prompt},
		{Role: entity.RoleUser, Content: buildRunReport(criteria)},
	}

	resp, err := e.llm.Chat(ctx, output.ChatRequest{
		Messages:    messages,
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation llm request failed: %w", err)
	}

	result, err := parseEvaluationResponse(resp.Message.Content)
	if err != nil {
		e.logger.Warn("Failed to parse evaluation response, assuming success", "error", err)
		return &entity.EvaluationResult{
			Success:    true,
			Confidence: 0.5,
			Issues:     []string{},
		}, nil
	}

	e.logger.Info("Evaluation completed",
		"success", result.Success,
		"confidence", result.Confidence,
		"issues_count", len(result.Issues),
	)

	return result, nil
}

func buildRunReport(criteria entity.EvaluationCriteria) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n\n", criteria.Task)

	if len(criteria.Steps) == 0 {
		b.WriteString("Tool calls: none\n\n")
	} else {
		b.WriteString("Tool calls:\n")
		for i, step := range criteria.Steps {
			fmt.Fprintf(&b, "%d. %s\nInput:\n%s\nObservation:\n%s\n\n",
				i+1, step.Tool, step.Input, entity.CutRunes(step.Observation, maxStepObservation))
		}
	}

	fmt.Fprintf(&b, "Final Answer:\n%s", criteria.Answer)
	return b.String()
}

func parseEvaluationResponse(response string) (*entity.EvaluationResult, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")

	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var result entity.EvaluationResult
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if result.Issues == nil {
		result.Issues = []string{}
	}

	return &result, nil
}
