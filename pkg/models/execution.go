package models

import "time"

// Execution statuses reported by n8n. The set is open ended on the wire;
// anything outside these values is displayed with a generic indicator.
const (
	ExecutionStatusSuccess  = "success"
	ExecutionStatusError    = "error"
	ExecutionStatusWaiting  = "waiting"
	ExecutionStatusCanceled = "canceled"
)

// NodeRun is one run of a node inside an execution. Output items live under
// data.main, an array of output channels each holding an item list.
type NodeRun struct {
	Status string       `json:"status,omitempty"`
	Data   *NodeRunData `json:"data,omitempty"`
	Error  any          `json:"error,omitempty"`
}

// NodeRunData carries the main-output channels of a node run.
type NodeRunData struct {
	Main [][]any `json:"main,omitempty"`
}

// ExecutionError is the top-level error attached to a failed execution.
type ExecutionError struct {
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// ResultData holds per-node run output keyed by node name.
type ResultData struct {
	RunData map[string][]NodeRun `json:"runData,omitempty"`
	Error   *ExecutionError      `json:"error,omitempty"`
}

// ExecutionData is the data block of an execution.
type ExecutionData struct {
	ResultData *ResultData `json:"resultData,omitempty"`
}

// Execution is one run of a workflow. Executions are created by the n8n
// engine; this layer only reads and deletes them. StoppedAt is nil while the
// execution is still running.
type Execution struct {
	ID         string         `json:"id"`
	WorkflowID string         `json:"workflowId"`
	Status     string         `json:"status"`
	Finished   bool           `json:"finished"`
	Mode       string         `json:"mode,omitempty"`
	StartedAt  time.Time      `json:"startedAt"`
	StoppedAt  *time.Time     `json:"stoppedAt,omitempty"`
	Data       *ExecutionData `json:"data,omitempty"`
}
