package mcp

import (
	"context"
	"fmt"

	"n8n-mcp-server/internal/format"
	"n8n-mcp-server/internal/n8n"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerExecutionTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_executions",
			mcp.WithDescription("Retrieve a list of workflow executions from n8n"),
			mcp.WithString("workflowId", mcp.Description("Optional ID of workflow to filter executions by")),
			mcp.WithString("status", mcp.Description("Optional status to filter by (success, error, waiting, or canceled)")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of executions to return")),
			mcp.WithBoolean("includeSummary", mcp.Description("Include summary statistics about executions")),
		),
		s.handleListExecutions,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_execution",
			mcp.WithDescription("Retrieve details of a specific execution by ID"),
			mcp.WithString("executionId", mcp.Required(), mcp.Description("ID of the execution to retrieve")),
		),
		s.handleGetExecution,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"delete_execution",
			mcp.WithDescription("Delete an execution record from n8n"),
			mcp.WithString("executionId", mcp.Required(), mcp.Description("ID of the execution to delete")),
		),
		s.handleDeleteExecution,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"run_webhook",
			mcp.WithDescription("Execute a workflow via webhook with optional input data"),
			mcp.WithString("workflowName", mcp.Required(), mcp.Description(`Name of the workflow to execute (e.g., "hello-world")`)),
			mcp.WithObject("data", mcp.Description("Input data to pass to the webhook")),
			mcp.WithObject("headers", mcp.Description("Additional headers to send with the request")),
		),
		s.handleRunWebhook,
	)
}

// executionListResponse is the payload returned by list_executions.
type executionListResponse struct {
	Executions []format.ExecutionSummary `json:"executions"`
	Summary    *format.ExecutionsSummary `json:"summary,omitempty"`
	Total      int                       `json:"total"`
	Filtered   bool                      `json:"filtered"`
}

func (s *Server) handleListExecutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("list_executions", err), nil
	}

	executions, err := s.api.GetExecutions(ctx)
	if err != nil {
		return s.resultError("list_executions", err), nil
	}

	workflowID, _ := args["workflowId"].(string)
	status, _ := args["status"].(string)

	filtered := executions
	if workflowID != "" || status != "" {
		filtered = nil
		for _, e := range executions {
			if workflowID != "" && e.WorkflowID != workflowID {
				continue
			}
			if status != "" && e.Status != status {
				continue
			}
			filtered = append(filtered, e)
		}
	}

	if limit, ok := args["limit"].(float64); ok && limit > 0 && int(limit) < len(filtered) {
		filtered = filtered[:int(limit)]
	}

	summaries := make([]format.ExecutionSummary, 0, len(filtered))
	for _, e := range filtered {
		summaries = append(summaries, format.ExecutionSummaryOf(e))
	}

	response := executionListResponse{
		Executions: summaries,
		Total:      len(summaries),
		Filtered:   workflowID != "" || status != "",
	}
	if include, _ := args["includeSummary"].(bool); include {
		// Statistics cover the full unfiltered set.
		summary := format.SummarizeExecutions(executions, 0)
		response.Summary = &summary
	}

	return resultSuccess(response, fmt.Sprintf("Found %d execution(s)", len(summaries))), nil
}

func (s *Server) handleGetExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("get_execution", err), nil
	}

	id, err := requireString(args, "executionId")
	if err != nil {
		return s.resultError("get_execution", err), nil
	}

	execution, err := s.api.GetExecution(ctx, id)
	if err != nil {
		return s.resultError("get_execution", err), nil
	}

	return resultSuccess(format.ExecutionDetailsOf(*execution), "Execution Details for ID: "+id), nil
}

func (s *Server) handleDeleteExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("delete_execution", err), nil
	}

	id, err := requireString(args, "executionId")
	if err != nil {
		return s.resultError("delete_execution", err), nil
	}

	if _, err := s.api.DeleteExecution(ctx, id); err != nil {
		return s.resultError("delete_execution", err), nil
	}

	return resultSuccess(
		map[string]any{"id": id, "deleted": true},
		"Successfully deleted execution with ID: "+id,
	), nil
}

func (s *Server) handleRunWebhook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return s.resultError("run_webhook", err), nil
	}

	workflowName, err := requireString(args, "workflowName")
	if err != nil {
		return s.resultError("run_webhook", err), nil
	}

	var data map[string]any
	if v, ok := args["data"]; ok && v != nil {
		if data, ok = v.(map[string]any); !ok {
			return s.resultError("run_webhook", n8n.NewInvalidRequestError(`Parameter "data" must be an object`)), nil
		}
	}
	var headers map[string]string
	if v, ok := args["headers"]; ok && v != nil {
		raw, ok := v.(map[string]any)
		if !ok {
			return s.resultError("run_webhook", n8n.NewInvalidRequestError(`Parameter "headers" must be an object`)), nil
		}
		headers = make(map[string]string, len(raw))
		for k, hv := range raw {
			str, ok := hv.(string)
			if !ok {
				return s.resultError("run_webhook", n8n.NewInvalidRequestError(`Parameter "headers" must be an object with string values`)), nil
			}
			headers[k] = str
		}
	}

	response, err := s.api.RunWebhook(ctx, workflowName, data, headers)
	if err != nil {
		return s.resultError("run_webhook", err), nil
	}

	return resultSuccess(response, "Webhook executed successfully"), nil
}
