package sessions

import "sessions-agent/internal/domain/entity"

const (
	APIVersion     = "2024-02-02-preview"
	TokenScope     = "https://dynamicsessions.io/.default"
	DefaultUAgent  = "sessions-agent/1.0"
	codeInputType  = "inline"
	executionType  = "synchronous"
	executePath    = "code/execute"
	uploadPath     = "files/upload"
	listFilesPath  = "files"
	contentPathFmt = "files/content/%s"
)

type executeRequest struct {
	Properties executeProperties `json:"properties"`
}

type executeProperties struct {
	CodeInputType string `json:"codeInputType"`
	ExecutionType string `json:"executionType"`
	Code          string `json:"code"`
}

type executeResponse struct {
	Properties entity.ExecutionResult `json:"properties"`
}

type fileEntry struct {
	Properties entity.RemoteFile `json:"properties"`
}

type fileListResponse struct {
	Value []fileEntry `json:"value"`
}
