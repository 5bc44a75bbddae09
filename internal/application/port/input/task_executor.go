package input

import (
	"context"

	"sessions-agent/internal/domain/entity"
)

type ExecuteResult struct {
	Input       string
	FinalAnswer string
	Iterations  int
	Steps       []entity.AgentStep
}

type TaskExecutor interface {
	Execute(ctx context.Context, task string) (*ExecuteResult, error)
}
