package langchain

import (
	"context"
	"errors"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*toolAdapter)(nil)

// toolAdapter exposes a ToolPort as a langchaingo tool. Tool failures are
// returned as observations so the executor keeps going; only context
// cancellation aborts the run.
type toolAdapter struct {
	tool     output.ToolPort
	logger   output.LoggerPort
	progress output.ProgressPort
}

func (t *toolAdapter) Name() string        { return t.tool.Name().String() }
func (t *toolAdapter) Description() string { return t.tool.Description() }

func (t *toolAdapter) Call(ctx context.Context, input string) (string, error) {
	name := t.Name()
	if t.progress != nil {
		t.progress.ShowToolStart(ctx, name, input)
	}
	t.logger.Info("Executing tool", "name", name, "args", input)

	result, err := t.tool.Execute(ctx, input)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		t.logger.Error("Tool execution failed", "name", name, "error", err)
		if t.progress != nil {
			t.progress.ShowToolResult(ctx, name, err.Error(), true)
		}
		return "Error: " + err.Error(), nil
	}

	result = entity.TruncateObservation(result)
	t.logger.Debug("Tool completed", "name", name, "resultLen", len(result))
	if t.progress != nil {
		t.progress.ShowToolResult(ctx, name, result, false)
	}
	return result, nil
}

func bridgeTools(registry output.ToolRegistry, logger output.LoggerPort, progress output.ProgressPort) []tools.Tool {
	all := registry.All()
	result := make([]tools.Tool, 0, len(all))
	for _, tool := range all {
		result = append(result, &toolAdapter{tool: tool, logger: logger, progress: progress})
	}
	return result
}
