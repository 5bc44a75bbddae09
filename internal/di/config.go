package di

import (
	"time"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"
)

const (
	DefaultModel          = "llama3.2:latest"
	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultLLMAPIKey      = "ollama"
	DefaultMaxIterations  = 15
	DefaultRequestTimeout = 2 * time.Minute
	DefaultLogDir         = "log"
)

// ConfigFromEnv reads every setting except TaskName and WithAgent.
// POOL_MANAGEMENT_ENDPOINT is mandatory.
func ConfigFromEnv(env output.ConfigPort) Config {
	return Config{
		PoolEndpoint:   env.MustGet("POOL_MANAGEMENT_ENDPOINT"),
		PoolToken:      env.Get("POOL_MANAGEMENT_TOKEN"),
		SessionID:      env.Get("SESSION_ID"),
		RequestTimeout: env.GetDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),

		Runtime:       entity.AgentRuntime(env.GetWithDefault("AGENT_RUNTIME", string(entity.AgentRuntimeLangchain))),
		Style:         entity.AgentStyle(env.GetWithDefault("AGENT_STYLE", string(entity.AgentStyleToolCalling))),
		Model:         env.GetWithDefault("LLM_MODEL", DefaultModel),
		OllamaBaseURL: env.GetWithDefault("OLLAMA_BASE_URL", DefaultOllamaBaseURL),
		LLMBaseURL:    env.Get("LLM_BASE_URL"),
		LLMAPIKey:     env.GetWithDefault("LLM_API_KEY", DefaultLLMAPIKey),
		MaxIterations: env.GetInt("AGENT_MAX_ITERATIONS", DefaultMaxIterations),
		Verbose:       env.GetBool("AGENT_VERBOSE", true),
		Evaluate:      env.GetBool("AGENT_EVALUATE", false),

		LogDir: env.GetWithDefault("LOG_DIR", DefaultLogDir),
	}
}
