package entity

type ToolName string

const (
	ToolPythonREPL ToolName = "Python_REPL"
	ToolListFiles  ToolName = "list_session_files"
	ToolReadFile   ToolName = "read_session_file"
)

func (t ToolName) String() string {
	return string(t)
}
