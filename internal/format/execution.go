package format

import (
	"fmt"
	"math"
	"sort"
	"time"

	"n8n-mcp-server/pkg/models"
)

// nowFunc is swapped out by tests that need a fixed clock.
var nowFunc = time.Now

const inProgress = "In progress"

// StatusIndicator maps an execution status to its display glyph. Unknown
// statuses get the generic in-progress indicator; the lookup is closed.
func StatusIndicator(status string) string {
	switch status {
	case models.ExecutionStatusSuccess:
		return "✅"
	case models.ExecutionStatusError:
		return "❌"
	case models.ExecutionStatusWaiting:
		return "⏳"
	case models.ExecutionStatusCanceled:
		return "🛑"
	default:
		return "⏱️"
	}
}

// ExecutionSummary is the compact listing view of an execution.
type ExecutionSummary struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowId"`
	Status     string `json:"status"`
	StartedAt  string `json:"startedAt"`
	StoppedAt  string `json:"stoppedAt"`
	Duration   string `json:"duration"`
	Finished   bool   `json:"finished"`
}

// NodeResult is the per-node output projection in execution details. Data is
// capped at the first three items to bound response size.
type NodeResult struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
	Data   []any  `json:"data"`
}

// ExecutionDetails is the full view of an execution.
type ExecutionDetails struct {
	ExecutionSummary
	Mode        string                 `json:"mode,omitempty"`
	NodeResults map[string]NodeResult  `json:"nodeResults"`
	Error       *models.ExecutionError `json:"error,omitempty"`
}

// ExecutionSummaryOf reduces an execution to its listing view. Running
// executions report "In progress" for stoppedAt and a duration measured
// against the current time.
func ExecutionSummaryOf(e models.Execution) ExecutionSummary {
	stopped := nowFunc()
	stoppedLabel := inProgress
	if e.StoppedAt != nil {
		stopped = *e.StoppedAt
		stoppedLabel = e.StoppedAt.Format(time.RFC3339)
	}
	seconds := math.Round(stopped.Sub(e.StartedAt).Seconds())

	return ExecutionSummary{
		ID:         e.ID,
		WorkflowID: e.WorkflowID,
		Status:     fmt.Sprintf("%s %s", StatusIndicator(e.Status), e.Status),
		StartedAt:  e.StartedAt.Format(time.RFC3339),
		StoppedAt:  stoppedLabel,
		Duration:   fmt.Sprintf("%ds", int(seconds)),
		Finished:   e.Finished,
	}
}

// ExecutionDetailsOf expands an execution to its full view. For every node
// in runData the last run is projected; runs without a main-output block are
// skipped.
func ExecutionDetailsOf(e models.Execution) ExecutionDetails {
	details := ExecutionDetails{
		ExecutionSummary: ExecutionSummaryOf(e),
		Mode:             e.Mode,
		NodeResults:      map[string]NodeResult{},
	}

	if e.Data != nil && e.Data.ResultData != nil {
		for nodeName, runs := range e.Data.ResultData.RunData {
			if len(runs) == 0 {
				continue
			}
			last := runs[len(runs)-1]
			if last.Data == nil || len(last.Data.Main) == 0 {
				continue
			}
			items := last.Data.Main[0]
			data := items
			if len(data) > 3 {
				data = data[:3]
			}
			details.NodeResults[nodeName] = NodeResult{
				Status: last.Status,
				Items:  len(items),
				Data:   data,
			}
		}
		details.Error = e.Data.ResultData.Error
	}
	return details
}

// StatusCount is one row of a by-status breakdown.
type StatusCount struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ExecutionsSummary is the compact statistics block attached to execution
// listings on request.
type ExecutionsSummary struct {
	Total          int           `json:"total"`
	ByStatus       []StatusCount `json:"byStatus"`
	SuccessRate    string        `json:"successRate"`
	Displayed      int           `json:"displayed"`
	TotalAvailable int           `json:"totalAvailable"`
}

// SummarizeExecutions aggregates up to limit executions into status counts
// and a success rate. A non-positive limit falls back to 10.
func SummarizeExecutions(executions []models.Execution, limit int) ExecutionsSummary {
	if limit <= 0 {
		limit = 10
	}
	limited := executions
	if len(limited) > limit {
		limited = limited[:limit]
	}

	order, counts := countByStatus(limited)
	total := len(limited)

	byStatus := make([]StatusCount, 0, len(order))
	for _, status := range order {
		byStatus = append(byStatus, StatusCount{
			Status:     fmt.Sprintf("%s %s", StatusIndicator(status), status),
			Count:      counts[status],
			Percentage: percent(counts[status], total),
		})
	}

	return ExecutionsSummary{
		Total:          total,
		ByStatus:       byStatus,
		SuccessRate:    fmt.Sprintf("%d%%", percent(counts[models.ExecutionStatusSuccess], total)),
		Displayed:      len(limited),
		TotalAvailable: len(executions),
	}
}

// WorkflowCount is one row of the top-workflows breakdown.
type WorkflowCount struct {
	WorkflowID     string `json:"workflowId"`
	ExecutionCount int    `json:"executionCount"`
	Percentage     int    `json:"percentage"`
}

// ExecutionStats is the aggregated statistics view over all executions.
type ExecutionStats struct {
	Total                int             `json:"total"`
	ByStatus             []StatusCount   `json:"byStatus"`
	SuccessRate          string          `json:"successRate"`
	AverageExecutionTime string          `json:"averageExecutionTime"`
	TopWorkflows         []WorkflowCount `json:"topWorkflows"`
	TimeUpdated          string          `json:"timeUpdated"`
}

// ExecutionStatsOf computes the full statistics block: status distribution,
// success rate, average duration over completed executions and the five most
// executed workflows.
func ExecutionStatsOf(executions []models.Execution) ExecutionStats {
	total := len(executions)
	order, counts := countByStatus(executions)

	byStatus := make([]StatusCount, 0, len(order))
	for _, status := range order {
		byStatus = append(byStatus, StatusCount{
			Status:     status,
			Count:      counts[status],
			Percentage: percent(counts[status], total),
		})
	}

	// Average duration only over executions with both timestamps.
	var totalDuration time.Duration
	completed := 0
	for _, e := range executions {
		if !e.StartedAt.IsZero() && e.StoppedAt != nil {
			totalDuration += e.StoppedAt.Sub(e.StartedAt)
			completed++
		}
	}
	avgTime := "N/A"
	if completed > 0 {
		avgSec := math.Round(totalDuration.Seconds() / float64(completed))
		avgTime = fmt.Sprintf("%ds", int(avgSec))
	}

	perWorkflow := map[string]int{}
	var workflowOrder []string
	for _, e := range executions {
		if _, seen := perWorkflow[e.WorkflowID]; !seen {
			workflowOrder = append(workflowOrder, e.WorkflowID)
		}
		perWorkflow[e.WorkflowID]++
	}
	sort.SliceStable(workflowOrder, func(i, j int) bool {
		return perWorkflow[workflowOrder[i]] > perWorkflow[workflowOrder[j]]
	})
	if len(workflowOrder) > 5 {
		workflowOrder = workflowOrder[:5]
	}
	top := make([]WorkflowCount, 0, len(workflowOrder))
	for _, id := range workflowOrder {
		top = append(top, WorkflowCount{
			WorkflowID:     id,
			ExecutionCount: perWorkflow[id],
			Percentage:     percent(perWorkflow[id], total),
		})
	}

	return ExecutionStats{
		Total:                total,
		ByStatus:             byStatus,
		SuccessRate:          fmt.Sprintf("%d%%", percent(counts[models.ExecutionStatusSuccess], total)),
		AverageExecutionTime: avgTime,
		TopWorkflows:         top,
		TimeUpdated:          nowFunc().UTC().Format(time.RFC3339),
	}
}

// countByStatus tallies executions per status, preserving first-seen order
// so repeated aggregations render identically.
func countByStatus(executions []models.Execution) ([]string, map[string]int) {
	counts := map[string]int{}
	var order []string
	for _, e := range executions {
		status := e.Status
		if status == "" {
			status = "unknown"
		}
		if _, seen := counts[status]; !seen {
			order = append(order, status)
		}
		counts[status]++
	}
	return order, counts
}

// percent computes round-half-up percentage; a zero total yields 0, not an
// error.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
