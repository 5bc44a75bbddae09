package executor

import (
	"context"
	"fmt"

	"sessions-agent/internal/application/port/input"
	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const DefaultMaxIterations = 15

type UseCase struct {
	llm           output.LLMPort
	tools         output.ToolRegistry
	logger        output.LoggerPort
	progress      output.ProgressPort
	systemPrompt  string
	maxIterations int
}

type Option func(*UseCase)

func WithProgress(p output.ProgressPort) Option {
	return func(uc *UseCase) { uc.progress = p }
}

func WithMaxIterations(n int) Option {
	return func(uc *UseCase) {
		if n > 0 {
			uc.maxIterations = n
		}
	}
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	systemPrompt string,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		llm:           llm,
		tools:         tools,
		logger:        logger,
		systemPrompt:  systemPrompt,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) Execute(ctx context.Context, task string) (*input.ExecuteResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt},
		{Role: entity.RoleUser, Content: task},
	}

	toolDefs := uc.tools.Definitions()
	var steps []entity.AgentStep

	for iteration := 1; iteration <= uc.maxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)
		if uc.progress != nil {
			uc.progress.ShowIteration(ctx, iteration, uc.maxIterations)
		}

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		if uc.progress != nil {
			uc.progress.ShowThinking(ctx, resp.Message.Thinking)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return &input.ExecuteResult{
				Input:       task,
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
				Steps:       steps,
			}, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, tc)
			steps = append(steps, entity.AgentStep{
				Tool:        tc.Name,
				Input:       tc.Arguments,
				Observation: observation,
			})

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	return nil, fmt.Errorf("max iterations (%d) exceeded", uc.maxIterations)
}

// executeTool never fails the run: tool errors become observations the model
// can react to.
func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) string {
	if uc.progress != nil {
		uc.progress.ShowToolStart(ctx, tc.Name, tc.Arguments)
	}

	tool, ok := uc.tools.Get(entity.ToolName(tc.Name))
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		observation := fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name, observation, true)
		}
		return observation
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name, err.Error(), true)
		}
		return "Error: " + err.Error()
	}

	result = entity.TruncateObservation(result)

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	if uc.progress != nil {
		uc.progress.ShowToolResult(ctx, tc.Name, result, false)
	}
	return result
}
