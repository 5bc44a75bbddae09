package prompts

import (
	_ "embed"
)

// FunctionsAgentSystemPrompt is the system message of the classic
// openai-functions-agent prompt: system, human input, then the scratchpad.
//
//go:embed openai_functions_agent.txt
var FunctionsAgentSystemPrompt string

//go:embed native_system.txt
var NativeSystemPrompt string

//go:embed evaluator.txt
var EvaluatorPrompt string
