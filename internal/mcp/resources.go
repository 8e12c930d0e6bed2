package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"n8n-mcp-server/internal/format"
	"n8n-mcp-server/internal/n8n"

	"github.com/mark3labs/mcp-go/mcp"
)

const resourceMIMEType = "application/json"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcp.NewResource(
			format.WorkflowsResourceURI,
			"n8n Workflows",
			mcp.WithResourceDescription("List of all workflows in the n8n instance with their basic information"),
			mcp.WithMIMEType(resourceMIMEType),
		),
		s.handleWorkflowsResource,
	)

	s.mcpServer.AddResource(
		mcp.NewResource(
			format.ExecutionStatsResourceURI,
			"n8n Execution Statistics",
			mcp.WithResourceDescription("Summary statistics of workflow executions in the n8n instance"),
			mcp.WithMIMEType(resourceMIMEType),
		),
		s.handleExecutionStatsResource,
	)

	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			format.WorkflowTemplateURI,
			"n8n Workflow Details",
			mcp.WithTemplateDescription("Detailed information about a specific n8n workflow including all nodes, connections, and settings"),
			mcp.WithTemplateMIMEType(resourceMIMEType),
		),
		s.handleWorkflowResource,
	)

	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			format.ExecutionTemplateURI,
			"n8n Execution Details",
			mcp.WithTemplateDescription("Detailed information about a specific n8n workflow execution including node results and error information"),
			mcp.WithTemplateMIMEType(resourceMIMEType),
		),
		s.handleExecutionResource,
	)
}

func (s *Server) handleWorkflowsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.logger.Debug("resource requested", "uri", request.Params.URI)

	workflows, err := s.api.GetWorkflows(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]format.WorkflowSummary, 0, len(workflows))
	for _, w := range workflows {
		summaries = append(summaries, format.WorkflowSummaryOf(w))
	}

	return textResource(request.Params.URI, map[string]any{
		"resourceType": "workflows",
		"count":        len(summaries),
		"workflows":    summaries,
		"_links":       map[string]string{"self": format.WorkflowsResourceURI},
		"lastUpdated":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExecutionStatsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.logger.Debug("resource requested", "uri", request.Params.URI)

	executions, err := s.api.GetExecutions(ctx)
	if err != nil {
		return nil, err
	}

	body, err := asMap(format.ExecutionStatsOf(executions))
	if err != nil {
		return nil, err
	}
	body["resourceType"] = "execution-stats"
	body["_links"] = map[string]string{"self": format.ExecutionStatsResourceURI}

	return textResource(request.Params.URI, body)
}

func (s *Server) handleWorkflowResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	s.logger.Debug("resource requested", "uri", uri)

	id, ok := format.ExtractWorkflowID(uri)
	if !ok {
		return nil, &n8n.APIError{Code: n8n.ErrNotFound, Message: "Resource not found: " + uri}
	}

	workflow, err := s.api.GetWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := asMap(format.WorkflowDetailsOf(*workflow))
	if err != nil {
		return nil, err
	}
	body["resourceType"] = "workflow"
	body["id"] = id
	body["_links"] = map[string]string{
		"self":       format.ResourceURI("workflow", id),
		"executions": fmt.Sprintf("n8n://executions?workflowId=%s", id),
	}
	body["lastUpdated"] = time.Now().UTC().Format(time.RFC3339)

	return textResource(uri, body)
}

func (s *Server) handleExecutionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	s.logger.Debug("resource requested", "uri", uri)

	id, ok := format.ExtractExecutionID(uri)
	if !ok {
		return nil, &n8n.APIError{Code: n8n.ErrNotFound, Message: "Resource not found: " + uri}
	}

	execution, err := s.api.GetExecution(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := asMap(format.ExecutionDetailsOf(*execution))
	if err != nil {
		return nil, err
	}
	body["resourceType"] = "execution"
	body["id"] = id
	body["_links"] = map[string]string{
		"self":     format.ResourceURI("execution", id),
		"workflow": format.ResourceURI("workflow", execution.WorkflowID),
	}
	body["lastUpdated"] = time.Now().UTC().Format(time.RFC3339)

	return textResource(uri, body)
}

// textResource renders a body as the single JSON content block resource
// reads return.
func textResource(uri string, body any) ([]mcp.ResourceContents, error) {
	text, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, &n8n.APIError{Code: n8n.ErrInternal, Message: fmt.Sprintf("failed to encode resource: %v", err)}
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: resourceMIMEType,
			Text:     string(text),
		},
	}, nil
}

// asMap flattens a formatted struct into a map so resource metadata keys can
// be attached next to its fields.
func asMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &n8n.APIError{Code: n8n.ErrInternal, Message: fmt.Sprintf("failed to encode resource body: %v", err)}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &n8n.APIError{Code: n8n.ErrInternal, Message: fmt.Sprintf("failed to decode resource body: %v", err)}
	}
	return out, nil
}
