package output

import (
	"context"

	"sessions-agent/internal/domain/entity"
)

type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, arguments string) (string, error)
}

// CodeTool also runs source handed to it verbatim, without decoding tool
// arguments.
type CodeTool interface {
	ToolPort
	Run(ctx context.Context, code string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
