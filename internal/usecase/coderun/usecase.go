package coderun

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sessions-agent/internal/application/port/input"
	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
)

var _ input.CodeRunner = (*UseCase)(nil)

// DefaultSnippet is run when no code is supplied.
const DefaultSnippet = `
a = 5
b = 10
c = a + b
print(c)
`

// UseCase hands code to a tool unchanged and returns whatever it reports.
// Errors are not retried or interpreted.
type UseCase struct {
	tool     output.CodeTool
	sessions output.SessionsPort
	logger   output.LoggerPort
}

func New(tool output.CodeTool, sessions output.SessionsPort, logger output.LoggerPort) *UseCase {
	return &UseCase{tool: tool, sessions: sessions, logger: logger}
}

// Upload stops at the first file that cannot be read or stored.
func (uc *UseCase) Upload(ctx context.Context, localPaths []string) ([]entity.RemoteFile, error) {
	uploaded := make([]entity.RemoteFile, 0, len(localPaths))
	for _, p := range localPaths {
		file, err := uc.uploadOne(ctx, p)
		if err != nil {
			uc.logger.Error("Upload failed", "path", p, "error", err)
			return uploaded, err
		}
		uc.logger.Info("Uploaded file", "path", p, "remote", file.FullPath(), "size", file.SizeInBytes)
		uploaded = append(uploaded, *file)
	}
	return uploaded, nil
}

func (uc *UseCase) uploadOne(ctx context.Context, localPath string) (*entity.RemoteFile, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	return uc.sessions.UploadFile(ctx, filepath.Base(localPath), f)
}

func (uc *UseCase) Run(ctx context.Context, code string) (string, error) {
	uc.logger.Info("Running code", "tool", uc.tool.Name(), "codeLen", len(code))

	out, err := uc.tool.Run(ctx, code)
	if err != nil {
		uc.logger.Error("Code run failed", "tool", uc.tool.Name(), "error", err)
		return "", err
	}

	uc.logger.Info("Code run completed", "tool", uc.tool.Name(), "outputLen", len(out))
	return out, nil
}
