package di

import (
	"strconv"
	"testing"
	"time"

	"sessions-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

type mapConfig map[string]string

func (m mapConfig) Get(key string) string { return m[key] }

func (m mapConfig) MustGet(key string) string {
	v, ok := m[key]
	if !ok {
		panic("missing " + key)
	}
	return v
}

func (m mapConfig) GetWithDefault(key, defaultValue string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return defaultValue
}

func (m mapConfig) GetBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(m[key]); err == nil {
		return v
	}
	return defaultValue
}

func (m mapConfig) GetInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(m[key]); err == nil {
		return v
	}
	return defaultValue
}

func (m mapConfig) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(m[key]); err == nil {
		return v
	}
	return defaultValue
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg := ConfigFromEnv(mapConfig{"POOL_MANAGEMENT_ENDPOINT": "https://pool.example"})

	assert.Equal(t, Config{
		PoolEndpoint:   "https://pool.example",
		RequestTimeout: DefaultRequestTimeout,
		Runtime:        entity.AgentRuntimeLangchain,
		Style:          entity.AgentStyleToolCalling,
		Model:          DefaultModel,
		OllamaBaseURL:  DefaultOllamaBaseURL,
		LLMAPIKey:      DefaultLLMAPIKey,
		MaxIterations:  DefaultMaxIterations,
		Verbose:        true,
		LogDir:         DefaultLogDir,
	}, cfg)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg := ConfigFromEnv(mapConfig{
		"POOL_MANAGEMENT_ENDPOINT": "https://pool.example",
		"POOL_MANAGEMENT_TOKEN":    "tok",
		"SESSION_ID":               "s-1",
		"REQUEST_TIMEOUT":          "30s",
		"AGENT_RUNTIME":            "native",
		"AGENT_STYLE":              "react",
		"LLM_MODEL":                "qwen2.5",
		"LLM_BASE_URL":             "https://openrouter.ai/api/v1",
		"AGENT_MAX_ITERATIONS":     "4",
		"AGENT_VERBOSE":            "false",
		"AGENT_EVALUATE":           "true",
	})

	assert.Equal(t, "tok", cfg.PoolToken)
	assert.Equal(t, "s-1", cfg.SessionID)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, entity.AgentRuntimeNative, cfg.Runtime)
	assert.Equal(t, entity.AgentStyleReact, cfg.Style)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLMBaseURL)
	assert.Equal(t, 4, cfg.MaxIterations)
	assert.False(t, cfg.Verbose)
	assert.True(t, cfg.Evaluate)
}

func TestConfigFromEnv_MissingEndpoint(t *testing.T) {
	assert.Panics(t, func() { ConfigFromEnv(mapConfig{}) })
}
