package langchain

import (
	"fmt"
	"strings"

	"sessions-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

type ModelConfig struct {
	Model string
	// OllamaURL is the native Ollama API, used by the ReAct style.
	OllamaURL string
	// BaseURL is an OpenAI-compatible endpoint, used by the tool-calling
	// style because it needs function calling on the wire.
	BaseURL string
	APIKey  string
}

// NewModel picks the chat model backend that suits the agent style.
func NewModel(style entity.AgentStyle, cfg ModelConfig) (llms.Model, error) {
	switch style {
	case entity.AgentStyleReact:
		llm, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaURL),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return llm, nil

	case entity.AgentStyleToolCalling, "":
		llm, err := openai.New(
			openai.WithModel(cfg.Model),
			openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
			openai.WithToken(cfg.APIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai-compatible model: %w", err)
		}
		return llm, nil
	}

	return nil, fmt.Errorf("unknown agent style %q", style)
}
