package prompts

import (
	"bytes"
	"text/template"

	"sessions-agent/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type SystemPromptData struct {
	Tools []ToolInfo
}

// GenerateSystemPrompt renders baseTemplate with the registry's tools, in the
// registry's (name) order.
func GenerateSystemPrompt(baseTemplate string, tools output.ToolRegistry) (string, error) {
	all := tools.All()
	infos := make([]ToolInfo, 0, len(all))
	for _, tool := range all {
		infos = append(infos, ToolInfo{
			Name:        tool.Name().String(),
			Description: tool.Description(),
		})
	}

	tmpl, err := template.New("system").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, SystemPromptData{Tools: infos}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
