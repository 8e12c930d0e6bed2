package models

// Node is a single step inside a workflow. Parameters and position are
// opaque to this layer; the n8n editor owns their structure.
type Node struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Position   []float64      `json:"position,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Workflow is an n8n workflow as returned by the REST API. The id, tags and
// timestamps are server-assigned; the gateway strips them from outbound
// create/update payloads.
type Workflow struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Active      bool           `json:"active"`
	Nodes       []Node         `json:"nodes,omitempty"`
	Connections map[string]any `json:"connections,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
	StaticData  any            `json:"staticData,omitempty"`
	PinData     any            `json:"pinData,omitempty"`
	Tags        []any          `json:"tags,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}
