package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
)

var (
	_ output.ToolPort = (*ListFilesTool)(nil)
	_ output.ToolPort = (*ReadFileTool)(nil)
)

// ListFilesTool lists the files stored in the session's data directory.
type ListFilesTool struct {
	sessions output.SessionsPort
	logger   output.LoggerPort
}

func NewListFilesTool(sessions output.SessionsPort, logger output.LoggerPort) *ListFilesTool {
	return &ListFilesTool{sessions: sessions, logger: logger}
}

func (t *ListFilesTool) Name() entity.ToolName { return entity.ToolListFiles }
func (t *ListFilesTool) Description() string {
	return "Lists the files in the Python session's data directory (" + entity.RemoteDataDir +
		"). Takes no input. Returns a JSON array of {path, size}."
}
func (t *ListFilesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

type listedFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

func (t *ListFilesTool) Execute(ctx context.Context, arguments string) (string, error) {
	files, err := t.sessions.ListFiles(ctx)
	if err != nil {
		return "", err
	}
	t.logger.Debug("Listed session files", "session", t.sessions.SessionID(), "count", len(files))

	listed := make([]listedFile, 0, len(files))
	for _, f := range files {
		listed = append(listed, listedFile{Path: f.FullPath(), Size: f.SizeInBytes})
	}
	data, err := json.MarshalIndent(listed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format file list: %w", err)
	}
	return string(data), nil
}

// ReadFileTool returns the content of a text file from the session.
type ReadFileTool struct {
	sessions output.SessionsPort
	logger   output.LoggerPort
}

func NewReadFileTool(sessions output.SessionsPort, logger output.LoggerPort) *ReadFileTool {
	return &ReadFileTool{sessions: sessions, logger: logger}
}

func (t *ReadFileTool) Name() entity.ToolName { return entity.ToolReadFile }
func (t *ReadFileTool) Description() string {
	return "Reads a text file written by the Python session. Input is the file path, " +
		"for example " + entity.RemoteDataDir + "/result.csv."
}
func (t *ReadFileTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file inside " + entity.RemoteDataDir,
			},
		},
		"required": []string{"path"},
	}
}

func (t *ReadFileTool) Execute(ctx context.Context, arguments string) (string, error) {
	p := strings.TrimSpace(pathFromArguments(arguments))
	if p == "" {
		return "", fmt.Errorf("file path is required")
	}

	data, err := t.sessions.DownloadFile(ctx, p)
	if err != nil {
		return "", err
	}
	t.logger.Debug("Read session file", "path", p, "bytes", len(data))

	if !utf8.Valid(data) {
		return fmt.Sprintf("%s is a binary file (%d bytes)", p, len(data)), nil
	}
	return string(data), nil
}

func pathFromArguments(arguments string) string {
	trimmed := strings.TrimSpace(arguments)
	if !strings.HasPrefix(trimmed, "{") {
		return arguments
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return arguments
	}
	for _, key := range []string{"path", "__arg1", "input"} {
		if v, ok := args[key].(string); ok {
			return v
		}
	}
	return arguments
}
