package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"n8n-mcp-server/internal/n8n"
	"n8n-mcp-server/pkg/models"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerWorkflowTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_workflows",
			mcp.WithDescription("Retrieve a list of all workflows available in n8n"),
			mcp.WithBoolean("active", mcp.Description("Optional filter to show only active or inactive workflows")),
		),
		s.handleListWorkflows,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_workflow",
			mcp.WithDescription("Retrieve a specific workflow by ID"),
			mcp.WithString("workflowId", mcp.Required(), mcp.Description("ID of the workflow to retrieve")),
		),
		s.handleGetWorkflow,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"create_workflow",
			mcp.WithDescription("Create a new workflow in n8n"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Name of the workflow")),
			mcp.WithArray("nodes", mcp.Description("Array of node objects that define the workflow"), mcp.Items(map[string]any{"type": "object"})),
			mcp.WithObject("connections", mcp.Description("Connection mappings between nodes")),
			mcp.WithBoolean("active", mcp.Description("Whether the workflow should be active upon creation")),
			mcp.WithArray("tags", mcp.Description("Tags to associate with the workflow"), mcp.Items(map[string]any{"type": "string"})),
		),
		s.handleCreateWorkflow,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"update_workflow",
			mcp.WithDescription("Update an existing workflow in n8n"),
			mcp.WithString("workflowId", mcp.Required(), mcp.Description("ID of the workflow to update")),
			mcp.WithString("name", mcp.Description("New name for the workflow")),
			mcp.WithArray("nodes", mcp.Description("Updated array of node objects that define the workflow"), mcp.Items(map[string]any{"type": "object"})),
			mcp.WithObject("connections", mcp.Description("Updated connection mappings between nodes")),
			mcp.WithBoolean("active", mcp.Description("Whether the workflow should be active")),
			mcp.WithArray("tags", mcp.Description("Updated tags to associate with the workflow"), mcp.Items(map[string]any{"type": "string"})),
		),
		s.handleUpdateWorkflow,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"delete_workflow",
			mcp.WithDescription("Delete a workflow from n8n"),
			mcp.WithString("workflowId", mcp.Required(), mcp.Description("ID of the workflow to delete")),
		),
		s.handleDeleteWorkflow,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"activate_workflow",
			mcp.WithDescription("Activate a workflow in n8n"),
			mcp.WithString("workflowId", mcp.Required(), mcp.Description("ID of the workflow to activate")),
		),
		s.handleActivateWorkflow,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"deactivate_workflow",
			mcp.WithDescription("Deactivate a workflow in n8n"),
			mcp.WithString("workflowId", mcp.Required(), mcp.Description("ID of the workflow to deactivate")),
		),
		s.handleDeactivateWorkflow,
	)
}

// workflowListItem is the projection returned by list_workflows.
type workflowListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	UpdatedAt string `json:"updatedAt"`
}

// workflowRef is the compact confirmation block returned by write tools.
type workflowRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (s *Server) handleListWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("list_workflows", err), nil
	}

	workflows, err := s.api.GetWorkflows(ctx)
	if err != nil {
		return s.resultError("list_workflows", err), nil
	}

	items := make([]workflowListItem, 0, len(workflows))
	for _, w := range workflows {
		if active, ok := args["active"].(bool); ok && w.Active != active {
			continue
		}
		items = append(items, workflowListItem{ID: w.ID, Name: w.Name, Active: w.Active, UpdatedAt: w.UpdatedAt})
	}

	return resultSuccess(items, fmt.Sprintf("Found %d workflow(s)", len(items))), nil
}

func (s *Server) handleGetWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("get_workflow", err), nil
	}

	id, err := requireString(args, "workflowId")
	if err != nil {
		return s.resultError("get_workflow", err), nil
	}

	workflow, err := s.api.GetWorkflow(ctx, id)
	if err != nil {
		return s.resultError("get_workflow", err), nil
	}

	return resultSuccess(workflow, "Retrieved workflow: "+workflow.Name), nil
}

func (s *Server) handleCreateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("create_workflow", err), nil
	}

	name, err := requireString(args, "name")
	if err != nil {
		return s.resultError("create_workflow", err), nil
	}
	if err := validateShapes(args); err != nil {
		return s.resultError("create_workflow", err), nil
	}

	active, _ := args["active"].(bool) // defaults to false
	payload := map[string]any{
		"name":   name,
		"active": active,
	}
	for _, field := range []string{"nodes", "connections", "tags"} {
		if v, ok := args[field]; ok && v != nil {
			payload[field] = v
		}
	}

	workflow, err := s.api.CreateWorkflow(ctx, payload)
	if err != nil {
		return s.resultError("create_workflow", err), nil
	}

	return resultSuccess(
		workflowRef{ID: workflow.ID, Name: workflow.Name, Active: workflow.Active},
		"Workflow created successfully",
	), nil
}

func (s *Server) handleUpdateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("update_workflow", err), nil
	}

	id, err := requireString(args, "workflowId")
	if err != nil {
		return s.resultError("update_workflow", err), nil
	}
	if err := validateShapes(args); err != nil {
		return s.resultError("update_workflow", err), nil
	}

	// Partial update from the caller's side: fetch the current object and
	// overlay only the supplied fields. The remote PUT replaces the whole
	// object, so fields the model does not round-trip are not preserved.
	current, err := s.api.GetWorkflow(ctx, id)
	if err != nil {
		return s.resultError("update_workflow", err), nil
	}
	payload, err := workflowPayload(current)
	if err != nil {
		return s.resultError("update_workflow", err), nil
	}

	var changes []string
	if name, ok := args["name"].(string); ok {
		if name != current.Name {
			changes = append(changes, fmt.Sprintf("name: %q → %q", current.Name, name))
		}
		payload["name"] = name
	}
	if active, ok := args["active"].(bool); ok {
		if active != current.Active {
			changes = append(changes, fmt.Sprintf("active: %t → %t", current.Active, active))
		}
		payload["active"] = active
	}
	for _, field := range []string{"nodes", "connections", "tags"} {
		if v, ok := args[field]; ok && v != nil {
			payload[field] = v
			changes = append(changes, field+" updated")
		}
	}

	updated, err := s.api.UpdateWorkflow(ctx, id, payload)
	if err != nil {
		return s.resultError("update_workflow", err), nil
	}

	summary := "No changes were made"
	if len(changes) > 0 {
		summary = "Changes: " + strings.Join(changes, ", ")
	}

	return resultSuccess(
		workflowRef{ID: updated.ID, Name: updated.Name, Active: updated.Active},
		"Workflow updated successfully. "+summary,
	), nil
}

func (s *Server) handleDeleteWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("delete_workflow", err), nil
	}

	id, err := requireString(args, "workflowId")
	if err != nil {
		return s.resultError("delete_workflow", err), nil
	}

	// Fetched only so the confirmation can name the workflow.
	workflow, err := s.api.GetWorkflow(ctx, id)
	if err != nil {
		return s.resultError("delete_workflow", err), nil
	}
	if _, err := s.api.DeleteWorkflow(ctx, id); err != nil {
		return s.resultError("delete_workflow", err), nil
	}

	return resultSuccess(
		map[string]any{"id": id},
		fmt.Sprintf("Workflow %q (ID: %s) has been successfully deleted", workflow.Name, id),
	), nil
}

func (s *Server) handleActivateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("activate_workflow", err), nil
	}

	id, err := requireString(args, "workflowId")
	if err != nil {
		return s.resultError("activate_workflow", err), nil
	}

	workflow, err := s.api.ActivateWorkflow(ctx, id)
	if err != nil {
		return s.resultError("activate_workflow", err), nil
	}

	return resultSuccess(
		workflowRef{ID: workflow.ID, Name: workflow.Name, Active: workflow.Active},
		fmt.Sprintf("Workflow %q (ID: %s) has been successfully activated", workflow.Name, id),
	), nil
}

func (s *Server) handleDeactivateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("deactivate_workflow", err), nil
	}

	id, err := requireString(args, "workflowId")
	if err != nil {
		return s.resultError("deactivate_workflow", err), nil
	}

	workflow, err := s.api.DeactivateWorkflow(ctx, id)
	if err != nil {
		return s.resultError("deactivate_workflow", err), nil
	}

	return resultSuccess(
		workflowRef{ID: workflow.ID, Name: workflow.Name, Active: workflow.Active},
		fmt.Sprintf("Workflow %q (ID: %s) has been successfully deactivated", workflow.Name, id),
	), nil
}

// validateShapes rejects optional nodes/connections/tags arguments whose
// JSON-level shape is wrong before they reach the API.
func validateShapes(args map[string]any) error {
	if v, ok := args["nodes"]; ok && v != nil {
		if _, isArray := v.([]any); !isArray {
			return n8n.NewInvalidRequestError(`Parameter "nodes" must be an array`)
		}
	}
	if v, ok := args["connections"]; ok && v != nil {
		if _, isObject := v.(map[string]any); !isObject {
			return n8n.NewInvalidRequestError(`Parameter "connections" must be an object`)
		}
	}
	if v, ok := args["tags"]; ok && v != nil {
		if _, isArray := v.([]any); !isArray {
			return n8n.NewInvalidRequestError(`Parameter "tags" must be an array`)
		}
	}
	return nil
}

// workflowPayload converts a fetched workflow into the generic payload map
// the gateway's write operations take.
func workflowPayload(w *models.Workflow) (map[string]any, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, &n8n.APIError{Code: n8n.ErrInternal, Message: fmt.Sprintf("failed to encode workflow: %v", err)}
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &n8n.APIError{Code: n8n.ErrInternal, Message: fmt.Sprintf("failed to decode workflow: %v", err)}
	}
	return payload, nil
}
