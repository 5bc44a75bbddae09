package langchain

import (
	"context"
	"fmt"
	"sync/atomic"

	"sessions-agent/internal/application/port/input"
	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

var _ input.TaskExecutor = (*Runtime)(nil)

const (
	inputKey       = "input"
	outputKey      = "output"
	stepsOutputKey = "intermediateSteps"

	DefaultMaxIterations = 15
)

type Config struct {
	Style         entity.AgentStyle
	SystemMessage string
	MaxIterations int
	Temperature   float64
}

type Runtime struct {
	executor    *agents.Executor
	agent       *countingAgent
	logger      output.LoggerPort
	temperature float64
}

func New(
	llm llms.Model,
	registry output.ToolRegistry,
	logger output.LoggerPort,
	progress output.ProgressPort,
	cfg Config,
) (*Runtime, error) {
	lcTools := bridgeTools(registry, logger, progress)
	if len(lcTools) == 0 {
		return nil, fmt.Errorf("langchain runtime: no tools registered")
	}

	var agent agents.Agent
	switch cfg.Style {
	case entity.AgentStyleToolCalling, "":
		opts := []agents.Option{}
		if cfg.SystemMessage != "" {
			opts = append(opts, agents.NewOpenAIOption().WithSystemMessage(cfg.SystemMessage))
		}
		agent = agents.NewOpenAIFunctionsAgent(llm, lcTools, opts...)
	case entity.AgentStyleReact:
		agent = agents.NewOneShotAgent(llm, lcTools)
	default:
		return nil, fmt.Errorf("%w: %q", agents.ErrUnknownAgentType, cfg.Style)
	}

	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	counted := &countingAgent{Agent: agent}
	handler := &progressHandler{logger: logger, progress: progress}

	executor := agents.NewExecutor(counted,
		agents.WithMaxIterations(maxIterations),
		agents.WithReturnIntermediateSteps(),
		agents.WithParserErrorHandler(agents.NewParserErrorHandler(formatParseError)),
		agents.WithCallbacksHandler(handler),
	)

	return &Runtime{
		executor:    executor,
		agent:       counted,
		logger:      logger,
		temperature: cfg.Temperature,
	}, nil
}

func (r *Runtime) Execute(ctx context.Context, task string) (*input.ExecuteResult, error) {
	r.agent.plans.Store(0)

	out, err := chains.Call(ctx, r.executor,
		map[string]any{inputKey: task},
		chains.WithTemperature(r.temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("agent run failed: %w", err)
	}

	answer, ok := out[outputKey].(string)
	if !ok {
		return nil, fmt.Errorf("agent returned %T for %q", out[outputKey], outputKey)
	}

	rawSteps, _ := out[stepsOutputKey].([]schema.AgentStep)
	steps := make([]entity.AgentStep, 0, len(rawSteps))
	for _, s := range rawSteps {
		steps = append(steps, entity.AgentStep{
			Tool:        s.Action.Tool,
			Input:       s.Action.ToolInput,
			Observation: s.Observation,
		})
	}

	return &input.ExecuteResult{
		Input:       task,
		FinalAnswer: answer,
		Iterations:  int(r.agent.plans.Load()),
		Steps:       steps,
	}, nil
}

// formatParseError turns an unparsable model reply into an observation the
// model sees on its next turn.
func formatParseError(msg string) string {
	return "Invalid or incomplete response: " + msg +
		"\nReply with a tool call, or with a final answer if you already know it."
}

// countingAgent counts planning rounds for the run result.
type countingAgent struct {
	agents.Agent
	plans atomic.Int64
}

func (c *countingAgent) Plan(
	ctx context.Context,
	steps []schema.AgentStep,
	inputs map[string]string,
	options ...chains.ChainCallOption,
) ([]schema.AgentAction, *schema.AgentFinish, error) {
	c.plans.Add(1)
	return c.Agent.Plan(ctx, steps, inputs, options...)
}
