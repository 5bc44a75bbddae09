package output

import "context"

type ProgressPort interface {
	ShowIteration(ctx context.Context, iteration, maxIterations int)
	ShowToolStart(ctx context.Context, toolName, arguments string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
	ShowThinking(ctx context.Context, content string)
}
