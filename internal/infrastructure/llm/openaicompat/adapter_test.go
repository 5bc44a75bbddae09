package openaicompat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
	"sessions-agent/internal/infrastructure/logger"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertResponseMessage_WithContent(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "The sum is 15.",
	}

	result := convertResponseMessage(msg)

	assert.Equal(t, entity.RoleAssistant, result.Role)
	assert.Equal(t, "The sum is 15.", result.Content)
	assert.Empty(t, result.ToolCalls)
}

func TestConvertResponseMessage_WithToolCalls(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role:             "assistant",
		ReasoningContent: "need python",
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call_123",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "Python_REPL",
					Arguments: `{"code":"print(5 + 10)"}`,
				},
			},
		},
	}

	result := convertResponseMessage(msg)

	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_123", result.ToolCalls[0].ID)
	assert.Equal(t, "Python_REPL", result.ToolCalls[0].Name)
	assert.Equal(t, `{"code":"print(5 + 10)"}`, result.ToolCalls[0].Arguments)
	assert.Equal(t, "need python", result.Thinking)
}

func TestConvertMessages_WithThinkingAndToolResult(t *testing.T) {
	messages := []entity.Message{
		{Role: entity.RoleUser, Content: "Hello"},
		{
			Role:     entity.RoleAssistant,
			Content:  "Hi there",
			Thinking: "Let me think about this...",
			ToolCalls: []entity.ToolCall{
				{ID: "call_1", Name: "Python_REPL", Arguments: "{}"},
			},
		},
		{Role: entity.RoleTool, ToolCallID: "call_1", Name: "Python_REPL", Content: "15"},
	}

	result := convertMessages(messages)

	require.Len(t, result, 3)
	assert.Equal(t, "user", result[0].Role)
	assert.Equal(t, "<thinking>\nLet me think about this...\n</thinking>\nHi there", result[1].Content)
	require.Len(t, result[1].ToolCalls, 1)
	assert.Equal(t, openai.ToolTypeFunction, result[1].ToolCalls[0].Type)
	assert.Equal(t, "call_1", result[2].ToolCallID)
	assert.Equal(t, "Python_REPL", result[2].Name)
}

func TestAdapter_Chat(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ollama", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"","tool_calls":[{"id":"call_9","type":"function","function":{"name":"Python_REPL","arguments":"{\"code\":\"print(15)\"}"}}]},"finish_reason":"tool_calls"}]}`)
	}))
	defer srv.Close()

	cfg := DefaultConfig("ollama", "llama3.2:latest")
	cfg.BaseURL = srv.URL + "/v1/"
	cfg.Logger = logger.NewNopLogger()
	cfg.LogHTTP = true
	adapter := NewAdapter(cfg)

	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: "5+10?"}},
		Tools: []entity.ToolDefinition{{
			Name:        "Python_REPL",
			Description: "A Python shell",
			Parameters:  map[string]interface{}{"type": "object"},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "llama3.2:latest", got.Model)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "Python_REPL", got.Tools[0].Function.Name)

	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, "call_9", resp.Message.ToolCalls[0].ID)
}

func TestAdapter_ChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	cfg := DefaultConfig("ollama", "m")
	cfg.BaseURL = srv.URL
	adapter := NewAdapter(cfg)

	_, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: "hi"}},
	})
	assert.EqualError(t, err, "no choices in response")
}

func TestAdapter_ChatSendsZeroTemperature(t *testing.T) {
	tests := []struct {
		name        string
		temperature float32
		want        float64
	}{
		{name: "zero", temperature: 0, want: 0},
		{name: "explicit", temperature: 0.7, want: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				raw, _ := io.ReadAll(r.Body)
				require.NoError(t, json.Unmarshal(raw, &body))

				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"15"},"finish_reason":"stop"}]}`)
			}))
			defer srv.Close()

			cfg := DefaultConfig("ollama", "llama3.2:latest")
			cfg.BaseURL = srv.URL
			adapter := NewAdapter(cfg)

			_, err := adapter.Chat(context.Background(), output.ChatRequest{
				Messages:    []entity.Message{{Role: entity.RoleUser, Content: "5+10?"}},
				Temperature: tt.temperature,
			})
			require.NoError(t, err)

			require.Contains(t, body, "temperature")
			assert.InDelta(t, tt.want, body["temperature"], 1e-6)
		})
	}
}
