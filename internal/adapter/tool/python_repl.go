package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
)

var _ output.CodeTool = (*PythonREPLTool)(nil)

const pythonREPLDescription = "A Python shell. Use this to execute python commands " +
	"when you need to perform calculations or computations. " +
	"Input should be a valid python command. " +
	"Returns a JSON object with the result, stdout, and stderr."

// PythonREPLTool runs code in the remote session pool.
type PythonREPLTool struct {
	sessions output.SessionsPort
	logger   output.LoggerPort
}

func NewPythonREPLTool(sessions output.SessionsPort, logger output.LoggerPort) *PythonREPLTool {
	return &PythonREPLTool{sessions: sessions, logger: logger}
}

func (t *PythonREPLTool) Name() entity.ToolName { return entity.ToolPythonREPL }
func (t *PythonREPLTool) Description() string   { return pythonREPLDescription }
func (t *PythonREPLTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Python code to execute",
			},
		},
		"required": []string{"code"},
	}
}

// Execute accepts {"code": ...}, {"__arg1": ...} or the bare code itself.
func (t *PythonREPLTool) Execute(ctx context.Context, arguments string) (string, error) {
	return t.Run(ctx, codeFromArguments(arguments))
}

// Run sends code to the pool as is.
func (t *PythonREPLTool) Run(ctx context.Context, code string) (string, error) {
	t.logger.Debug("Python REPL call", "session", t.sessions.SessionID(), "codeLen", len(code))

	res, err := t.sessions.Execute(ctx, code)
	if err != nil {
		return "", err
	}

	return FormatResult(res)
}

func codeFromArguments(arguments string) string {
	trimmed := strings.TrimSpace(arguments)
	if !strings.HasPrefix(trimmed, "{") {
		return arguments
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return arguments
	}
	for _, key := range []string{"code", "__arg1", "input", "query"} {
		if v, ok := args[key].(string); ok {
			return v
		}
	}
	return arguments
}

type replOutput struct {
	Result any    `json:"result"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// FormatResult renders an execution as the indented JSON observation handed
// to the model. Inline image payloads are dropped.
func FormatResult(res *entity.ExecutionResult) (string, error) {
	out := replOutput{
		Result: stripImageData(res.Result),
		Stdout: res.Stdout,
		Stderr: res.Stderr,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format execution result: %w", err)
	}
	return string(data), nil
}

func stripImageData(result any) any {
	m, ok := result.(map[string]any)
	if !ok {
		return result
	}
	if m["type"] != "image" {
		return m
	}
	if _, ok := m["base64_data"]; !ok {
		return m
	}

	copied := make(map[string]any, len(m)-1)
	for k, v := range m {
		if k != "base64_data" {
			copied[k] = v
		}
	}
	return copied
}
