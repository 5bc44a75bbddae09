package langchain

import (
	"context"
	"strings"

	"sessions-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/schema"
)

var _ callbacks.Handler = (*progressHandler)(nil)

// progressHandler is the verbose mode of the executor: agent decisions go to
// the console, failures to the log.
type progressHandler struct {
	callbacks.SimpleHandler
	logger   output.LoggerPort
	progress output.ProgressPort
}

func (h *progressHandler) HandleAgentAction(ctx context.Context, action schema.AgentAction) {
	h.logger.Debug("Agent action", "tool", action.Tool, "log", action.Log)
	if h.progress != nil {
		h.progress.ShowThinking(ctx, strings.TrimSpace(action.Log))
	}
}

func (h *progressHandler) HandleAgentFinish(ctx context.Context, finish schema.AgentFinish) {
	h.logger.Info("Agent finished", "log", finish.Log)
}

func (h *progressHandler) HandleChainError(ctx context.Context, err error) {
	h.logger.Error("Agent chain failed", "error", err)
}

func (h *progressHandler) HandleLLMError(ctx context.Context, err error) {
	h.logger.Error("LLM call failed", "error", err)
}
