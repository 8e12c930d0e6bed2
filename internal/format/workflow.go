// Package format holds the pure display transformations applied to n8n
// entities before they are handed back to the protocol caller. Nothing in
// here performs I/O.
package format

import "n8n-mcp-server/pkg/models"

// WorkflowSummary is the compact listing view of a workflow.
type WorkflowSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
	CreatedAt string `json:"createdAt"`
}

// NodeView is the node projection exposed in workflow details.
type NodeView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Position   []float64      `json:"position,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// WorkflowDetails is the full view of a workflow. pinData and other internal
// fields are deliberately left out.
type WorkflowDetails struct {
	WorkflowSummary
	Nodes       []NodeView     `json:"nodes"`
	Connections map[string]any `json:"connections,omitempty"`
	StaticData  any            `json:"staticData,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
	Tags        []any          `json:"tags,omitempty"`
}

// WorkflowSummaryOf reduces a workflow to its listing view with a
// human-readable status label.
func WorkflowSummaryOf(w models.Workflow) WorkflowSummary {
	status := "⚪ Inactive"
	if w.Active {
		status = "🟢 Active"
	}
	return WorkflowSummary{
		ID:        w.ID,
		Name:      w.Name,
		Active:    w.Active,
		Status:    status,
		UpdatedAt: w.UpdatedAt,
		CreatedAt: w.CreatedAt,
	}
}

// WorkflowDetailsOf expands a workflow to its full view, projecting nodes to
// the fields useful for display.
func WorkflowDetailsOf(w models.Workflow) WorkflowDetails {
	nodes := make([]NodeView, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		nodes = append(nodes, NodeView{
			ID:         n.ID,
			Name:       n.Name,
			Type:       n.Type,
			Position:   n.Position,
			Parameters: n.Parameters,
		})
	}
	return WorkflowDetails{
		WorkflowSummary: WorkflowSummaryOf(w),
		Nodes:           nodes,
		Connections:     w.Connections,
		StaticData:      w.StaticData,
		Settings:        w.Settings,
		Tags:            w.Tags,
	}
}
