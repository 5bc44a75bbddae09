package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sessions-agent/internal/adapter/tool"
	"sessions-agent/internal/application/port/input"
	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/application/service"
	"sessions-agent/internal/domain/entity"
	"sessions-agent/internal/infrastructure/console"
	"sessions-agent/internal/infrastructure/langchain"
	"sessions-agent/internal/infrastructure/llm/openaicompat"
	"sessions-agent/internal/infrastructure/logger"
	"sessions-agent/internal/infrastructure/prompts"
	"sessions-agent/internal/infrastructure/sessions"
	"sessions-agent/internal/usecase/coderun"
	"sessions-agent/internal/usecase/evaluator"
	"sessions-agent/internal/usecase/executor"
)

type Container struct {
	Sessions     output.SessionsPort
	Logger       output.LoggerPort
	Tools        output.ToolRegistry
	Console      *console.Presenter
	CodeRunner   input.CodeRunner
	TaskExecutor input.TaskExecutor
	// Evaluator is nil unless Config.Evaluate is set.
	Evaluator *evaluator.Evaluator
}

type Config struct {
	PoolEndpoint string
	// PoolToken skips Azure credential discovery when set.
	PoolToken      string
	SessionID      string
	RequestTimeout time.Duration

	Runtime       entity.AgentRuntime
	Style         entity.AgentStyle
	Model         string
	OllamaBaseURL string
	// LLMBaseURL is the OpenAI-compatible endpoint; defaults to OllamaBaseURL + "/v1".
	LLMBaseURL    string
	LLMAPIKey     string
	MaxIterations int
	Verbose       bool
	// Evaluate asks the LLM to judge the final answer against the tool steps.
	Evaluate bool

	LogDir   string
	TaskName string
	// WithAgent builds the LLM side. The direct executor leaves it off.
	WithAgent bool
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.LogDir, cfg.TaskName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tokens, err := newTokenProvider(cfg.PoolToken)
	if err != nil {
		log.Close()
		return nil, err
	}

	sessCfg := sessions.DefaultConfig(cfg.PoolEndpoint)
	sessCfg.SessionID = cfg.SessionID
	sessCfg.Tokens = tokens
	sessCfg.Logger = log
	if cfg.RequestTimeout > 0 {
		sessCfg.Timeout = cfg.RequestTimeout
	}
	client, err := sessions.NewClient(sessCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create sessions client: %w", err)
	}
	log.Info("Sessions client ready", "endpoint", cfg.PoolEndpoint, "session", client.SessionID())

	repl := tool.NewPythonREPLTool(client, log)
	tools := service.NewToolRegistry()
	tools.Register(repl)
	tools.Register(tool.NewListFilesTool(client, log))
	tools.Register(tool.NewReadFileTool(client, log))

	c := &Container{
		Sessions:   client,
		Logger:     log,
		Tools:      tools,
		Console:    console.NewPresenter(),
		CodeRunner: coderun.New(repl, client, log),
	}

	if !cfg.WithAgent {
		return c, nil
	}

	var progress output.ProgressPort
	if cfg.Verbose {
		progress = c.Console
	}

	taskExecutor, err := newTaskExecutor(cfg, tools, log, progress)
	if err != nil {
		log.Close()
		return nil, err
	}
	c.TaskExecutor = taskExecutor

	if cfg.Evaluate {
		c.Evaluator = evaluator.New(newChatAdapter(cfg, log), log, prompts.EvaluatorPrompt)
	}

	return c, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newTokenProvider(static string) (sessions.TokenProvider, error) {
	if static != "" {
		return sessions.StaticToken(static), nil
	}
	provider, err := sessions.NewDefaultAzureTokenProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create azure credential: %w", err)
	}
	return provider, nil
}

func newTaskExecutor(
	cfg Config,
	tools output.ToolRegistry,
	log output.LoggerPort,
	progress output.ProgressPort,
) (input.TaskExecutor, error) {
	switch cfg.Runtime {
	case entity.AgentRuntimeNative:
		llm := newChatAdapter(cfg, log)

		systemPrompt, err := prompts.GenerateSystemPrompt(prompts.NativeSystemPrompt, tools)
		if err != nil {
			return nil, fmt.Errorf("failed to build system prompt: %w", err)
		}

		opts := []executor.Option{executor.WithMaxIterations(cfg.MaxIterations)}
		if progress != nil {
			opts = append(opts, executor.WithProgress(progress))
		}
		return executor.New(llm, tools, log, systemPrompt, opts...), nil

	case entity.AgentRuntimeLangchain, "":
		model, err := langchain.NewModel(cfg.Style, langchain.ModelConfig{
			Model:     cfg.Model,
			OllamaURL: cfg.OllamaBaseURL,
			BaseURL:   chatBaseURL(cfg),
			APIKey:    cfg.LLMAPIKey,
		})
		if err != nil {
			return nil, err
		}

		rt, err := langchain.New(model, tools, log, progress, langchain.Config{
			Style:         cfg.Style,
			SystemMessage: prompts.FunctionsAgentSystemPrompt,
			MaxIterations: cfg.MaxIterations,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create agent: %w", err)
		}
		return rt, nil
	}

	return nil, fmt.Errorf("unknown agent runtime %q", cfg.Runtime)
}

func chatBaseURL(cfg Config) string {
	if cfg.LLMBaseURL != "" {
		return cfg.LLMBaseURL
	}
	return strings.TrimRight(cfg.OllamaBaseURL, "/") + "/v1"
}

func newChatAdapter(cfg Config, log output.LoggerPort) *openaicompat.Adapter {
	llmCfg := openaicompat.DefaultConfig(cfg.LLMAPIKey, cfg.Model)
	llmCfg.BaseURL = chatBaseURL(cfg)
	llmCfg.Logger = log
	return openaicompat.NewAdapter(llmCfg)
}
