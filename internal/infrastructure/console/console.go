package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ProgressPort = (*Presenter)(nil)

// Presenter prints agent progress to a terminal.
type Presenter struct {
	out io.Writer
}

func NewPresenter() *Presenter {
	return &Presenter{out: color.Output}
}

func NewPresenterWriter(w io.Writer) *Presenter {
	return &Presenter{out: w}
}

func (p *Presenter) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(p.out, "\n━━━ Iteration %d/%d ━━━\n", iteration, maxIterations)
}

func (p *Presenter) ShowThinking(ctx context.Context, content string) {
	if content == "" {
		return
	}

	blue := color.New(color.FgBlue)
	blue.Fprint(p.out, "\n💭 Thinking: ")

	dim := color.New(color.Faint)
	dim.Fprintln(p.out, truncate(content, 500))
}

func (p *Presenter) ShowToolStart(ctx context.Context, toolName, arguments string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(p.out, "\n🐍 %s\n", toolName)

	if code := formatToolArguments(arguments); code != "" {
		dim := color.New(color.Faint)
		for _, line := range strings.Split(code, "\n") {
			dim.Fprintf(p.out, "   │ %s\n", line)
		}
	}
}

func (p *Presenter) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(p.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(p.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(p.out, "✓ %s\n", formatToolResult(result))
}

func (p *Presenter) ShowFinalAnswer(answer string) {
	bold := color.New(color.Bold)
	bold.Fprintln(p.out, "\nFINAL ANSWER:")
	fmt.Fprintln(p.out, answer)
}

func (p *Presenter) ShowEvaluation(res *entity.EvaluationResult) {
	verdict := color.New(color.FgGreen, color.Bold)
	label := "PASSED"
	if !res.Success {
		verdict = color.New(color.FgRed, color.Bold)
		label = "FAILED"
	}

	verdict.Fprintf(p.out, "\nEVALUATION: %s", label)
	fmt.Fprintf(p.out, " (confidence %.2f)\n", res.Confidence)
	for _, issue := range res.Issues {
		fmt.Fprintf(p.out, "  - %s\n", issue)
	}
	if res.Feedback != "" {
		fmt.Fprintln(p.out, res.Feedback)
	}
}

// formatToolArguments extracts the code from tool arguments, JSON or raw.
func formatToolArguments(arguments string) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &args); err == nil {
		for _, key := range []string{"code", "__arg1"} {
			if code, ok := args[key].(string); ok {
				return truncate(strings.TrimSpace(code), 400)
			}
		}
	}
	return truncate(strings.TrimSpace(arguments), 400)
}

// formatToolResult prefers stderr, then stdout, from a REPL observation.
func formatToolResult(result string) string {
	var out struct {
		Result any    `json:"result"`
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	}
	if err := json.Unmarshal([]byte(result), &out); err != nil {
		return truncate(result, 100)
	}

	switch {
	case strings.TrimSpace(out.Stderr) != "":
		return "stderr: " + truncate(strings.TrimSpace(out.Stderr), 100)
	case strings.TrimSpace(out.Stdout) != "":
		return "stdout: " + truncate(strings.TrimSpace(out.Stdout), 100)
	case out.Result != nil && out.Result != "":
		return fmt.Sprintf("result: %v", out.Result)
	}
	return "no output"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return entity.CutRunes(s, maxLen) + "..."
}
