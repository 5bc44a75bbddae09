package output

import (
	"context"
	"io"

	"sessions-agent/internal/domain/entity"
)

// SessionsPort is a remote code-execution pool bound to one session.
type SessionsPort interface {
	SessionID() string
	Execute(ctx context.Context, code string) (*entity.ExecutionResult, error)
	UploadFile(ctx context.Context, name string, data io.Reader) (*entity.RemoteFile, error)
	DownloadFile(ctx context.Context, remotePath string) ([]byte, error)
	ListFiles(ctx context.Context) ([]entity.RemoteFile, error)
}
