package entity

type AgentRuntime string

const (
	AgentRuntimeLangchain AgentRuntime = "langchain"
	AgentRuntimeNative    AgentRuntime = "native"
)

type AgentStyle string

const (
	AgentStyleToolCalling AgentStyle = "tool_calling"
	AgentStyleReact       AgentStyle = "react"
)

// AgentStep is one tool invocation made while answering a task.
type AgentStep struct {
	Tool        string
	Input       string
	Observation string
}
