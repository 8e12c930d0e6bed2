package n8n

import (
	"context"

	"n8n-mcp-server/pkg/models"
)

// API is the gateway surface the tool and resource handlers depend on.
// *Client is the production implementation; tests substitute fakes.
type API interface {
	CheckConnectivity(ctx context.Context) error

	GetWorkflows(ctx context.Context) ([]models.Workflow, error)
	GetWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	CreateWorkflow(ctx context.Context, payload map[string]any) (*models.Workflow, error)
	UpdateWorkflow(ctx context.Context, id string, payload map[string]any) (*models.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	ActivateWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	DeactivateWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	ExecuteWorkflow(ctx context.Context, id string, data map[string]any) (map[string]any, error)

	GetExecutions(ctx context.Context) ([]models.Execution, error)
	GetExecution(ctx context.Context, id string) (*models.Execution, error)
	DeleteExecution(ctx context.Context, id string) (map[string]any, error)

	RunWebhook(ctx context.Context, workflowName string, data map[string]any, headers map[string]string) (*WebhookResponse, error)
}

var _ API = (*Client)(nil)
