// Package langchain runs the agent on langchaingo: a tool-calling
// (OpenAI functions) or ReAct agent inside an agents.Executor, with the
// registry's tools bridged to langchaingo's tools.Tool.
package langchain
