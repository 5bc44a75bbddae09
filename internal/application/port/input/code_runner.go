package input

import (
	"context"

	"sessions-agent/internal/domain/entity"
)

// CodeRunner submits a snippet straight to the execution tool, with no agent
// in between.
type CodeRunner interface {
	// Upload copies local files into the session before a run.
	Upload(ctx context.Context, localPaths []string) ([]entity.RemoteFile, error)
	Run(ctx context.Context, code string) (string, error)
}
