package entity

import "path"

// RemoteDataDir is where the pool mounts files uploaded to a session.
const RemoteDataDir = "/mnt/data"

type ExecutionStatus string

const (
	ExecutionSucceeded ExecutionStatus = "Success"
	ExecutionFailed    ExecutionStatus = "Failure"
)

// ExecutionResult is the properties object returned by the pool for a
// synchronous code execution.
type ExecutionResult struct {
	Status          ExecutionStatus `json:"status"`
	Stdout          string          `json:"stdout"`
	Stderr          string          `json:"stderr"`
	Result          any             `json:"result"`
	ExecutionTimeMs int64           `json:"executionTimeInMilliseconds"`
}

type RemoteFile struct {
	Filename     string `json:"filename"`
	SizeInBytes  int64  `json:"size"`
	LastModified string `json:"lastModifiedTime,omitempty"`
}

func (f RemoteFile) FullPath() string {
	return path.Join(RemoteDataDir, f.Filename)
}
