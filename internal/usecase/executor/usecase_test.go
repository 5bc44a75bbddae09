package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/application/service"
	"sessions-agent/internal/domain/entity"
	"sessions-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	replies  []entity.Message
	requests []output.ChatRequest
	err      error
}

func (s *scriptedLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return nil, errors.New("script exhausted")
	}
	msg := s.replies[0]
	s.replies = s.replies[1:]
	return &output.ChatResponse{Message: msg}, nil
}

type echoTool struct {
	calls  []string
	result string
	err    error
}

func (e *echoTool) Name() entity.ToolName { return entity.ToolPythonREPL }
func (e *echoTool) Description() string   { return "python" }
func (e *echoTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (e *echoTool) Execute(ctx context.Context, arguments string) (string, error) {
	e.calls = append(e.calls, arguments)
	return e.result, e.err
}

type recordingProgress struct {
	events []string
}

func (r *recordingProgress) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	r.events = append(r.events, "iteration")
}
func (r *recordingProgress) ShowToolStart(ctx context.Context, toolName, arguments string) {
	r.events = append(r.events, "start:"+toolName)
}
func (r *recordingProgress) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		r.events = append(r.events, "error:"+toolName)
		return
	}
	r.events = append(r.events, "result:"+toolName)
}
func (r *recordingProgress) ShowThinking(ctx context.Context, content string) {}

func toolCall(id, args string) entity.Message {
	return entity.Message{
		Role:      entity.RoleAssistant,
		ToolCalls: []entity.ToolCall{{ID: id, Name: "Python_REPL", Arguments: args}},
	}
}

func newUseCase(llm output.LLMPort, tool output.ToolPort, opts ...Option) *UseCase {
	registry := service.NewToolRegistry()
	if tool != nil {
		registry.Register(tool)
	}
	return New(llm, registry, logger.NewNopLogger(), "system", opts...)
}

func TestExecute_DirectAnswer(t *testing.T) {
	llm := &scriptedLLM{replies: []entity.Message{{Role: entity.RoleAssistant, Content: "15"}}}
	uc := newUseCase(llm, &echoTool{})

	res, err := uc.Execute(context.Background(), "5+10?")
	require.NoError(t, err)

	assert.Equal(t, "15", res.FinalAnswer)
	assert.Equal(t, "5+10?", res.Input)
	assert.Equal(t, 1, res.Iterations)
	assert.Empty(t, res.Steps)

	require.Len(t, llm.requests, 1)
	assert.Equal(t, entity.RoleSystem, llm.requests[0].Messages[0].Role)
	assert.Equal(t, "system", llm.requests[0].Messages[0].Content)
	require.Len(t, llm.requests[0].Tools, 1)
	assert.Equal(t, "Python_REPL", llm.requests[0].Tools[0].Name)
}

func TestExecute_ToolRoundTrip(t *testing.T) {
	llm := &scriptedLLM{replies: []entity.Message{
		toolCall("call_1", `{"code":"print(5 + 10)"}`),
		{Role: entity.RoleAssistant, Content: "The sum of 5 and 10 is 15."},
	}}
	tool := &echoTool{result: `{"stdout": "15\n"}`}
	progress := &recordingProgress{}
	uc := newUseCase(llm, tool, WithProgress(progress))

	res, err := uc.Execute(context.Background(), "what is the sum of 5 + 10?")
	require.NoError(t, err)

	assert.Equal(t, "The sum of 5 and 10 is 15.", res.FinalAnswer)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, []string{`{"code":"print(5 + 10)"}`}, tool.calls)

	require.Len(t, res.Steps, 1)
	assert.Equal(t, "Python_REPL", res.Steps[0].Tool)
	assert.Equal(t, `{"stdout": "15\n"}`, res.Steps[0].Observation)

	second := llm.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, entity.RoleTool, last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.Equal(t, `{"stdout": "15\n"}`, last.Content)

	assert.Equal(t, []string{"iteration", "start:Python_REPL", "result:Python_REPL", "iteration"}, progress.events)
}

func TestExecute_ToolErrorBecomesObservation(t *testing.T) {
	llm := &scriptedLLM{replies: []entity.Message{
		toolCall("call_1", "print(x)"),
		{Role: entity.RoleAssistant, Content: "could not compute"},
	}}
	tool := &echoTool{err: errors.New("pool returned HTTP 500")}
	uc := newUseCase(llm, tool)

	res, err := uc.Execute(context.Background(), "task")
	require.NoError(t, err)

	require.Len(t, res.Steps, 1)
	assert.Equal(t, "Error: pool returned HTTP 500", res.Steps[0].Observation)
}

func TestExecute_UnknownTool(t *testing.T) {
	llm := &scriptedLLM{replies: []entity.Message{
		{Role: entity.RoleAssistant, ToolCalls: []entity.ToolCall{{ID: "c", Name: "bash", Arguments: "ls"}}},
		{Role: entity.RoleAssistant, Content: "done"},
	}}
	uc := newUseCase(llm, &echoTool{})

	res, err := uc.Execute(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, "Error: unknown tool 'bash'", res.Steps[0].Observation)
}

func TestExecute_TruncatesObservation(t *testing.T) {
	llm := &scriptedLLM{replies: []entity.Message{
		toolCall("c", "{}"),
		{Role: entity.RoleAssistant, Content: "done"},
	}}
	tool := &echoTool{result: strings.Repeat("x", entity.MaxObservationLen+10)}
	uc := newUseCase(llm, tool)

	res, err := uc.Execute(context.Background(), "task")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Steps[0].Observation, "\n... (truncated)"))
	assert.Len(t, res.Steps[0].Observation, entity.MaxObservationLen+len("\n... (truncated)"))
}

func TestExecute_MaxIterations(t *testing.T) {
	replies := make([]entity.Message, 0, 3)
	for i := 0; i < 3; i++ {
		replies = append(replies, toolCall("c", "{}"))
	}
	llm := &scriptedLLM{replies: replies}
	uc := newUseCase(llm, &echoTool{result: "ok"}, WithMaxIterations(3))

	_, err := uc.Execute(context.Background(), "task")
	assert.EqualError(t, err, "max iterations (3) exceeded")
}

func TestExecute_LLMError(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("connection refused")}
	uc := newUseCase(llm, &echoTool{})

	_, err := uc.Execute(context.Background(), "task")
	assert.ErrorContains(t, err, "llm request failed: connection refused")
}
