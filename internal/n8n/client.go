package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"n8n-mcp-server/internal/logging"
	"n8n-mcp-server/pkg/models"

	"github.com/google/uuid"
)

const requestTimeout = 10 * time.Second

// ClientConfig carries the connection settings for the n8n API. BaseURL and
// APIKey are required; the webhook credentials are only needed by RunWebhook
// and are checked there, not at construction.
type ClientConfig struct {
	BaseURL         string
	APIKey          string
	WebhookUsername string
	WebhookPassword string
	Debug           bool
}

// Client issues authenticated HTTP calls against the n8n REST API and
// translates every transport or HTTP failure into an *APIError. It holds no
// mutable state after construction, so a single instance is safe to share
// across concurrent tool calls.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger *logging.Logger
}

// NewClient creates a Client. The request timeout on the underlying HTTP
// client is the only cancellation mechanism; when it fires the in-flight
// call fails as a network error.
func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: requestTimeout},
		logger: logger,
	}
}

// collection is the envelope n8n wraps list responses in.
type collection[T any] struct {
	Data []T `json:"data"`
}

// CheckConnectivity verifies the API is reachable and the key is accepted by
// listing workflows once.
func (c *Client) CheckConnectivity(ctx context.Context) error {
	var resp collection[models.Workflow]
	if err := c.do(ctx, http.MethodGet, "/workflows", nil, &resp, "n8n API connectivity check failed"); err != nil {
		return err
	}
	if c.cfg.Debug {
		c.logger.Debug("connected to n8n API", "url", c.cfg.BaseURL, "workflows", len(resp.Data))
	}
	return nil
}

// GetWorkflows fetches all workflows.
func (c *Client) GetWorkflows(ctx context.Context) ([]models.Workflow, error) {
	var resp collection[models.Workflow]
	if err := c.do(ctx, http.MethodGet, "/workflows", nil, &resp, "Failed to fetch workflows"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetWorkflow fetches a single workflow by id.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var w models.Workflow
	if err := c.do(ctx, http.MethodGet, "/workflows/"+url.PathEscape(id), nil, &w, fmt.Sprintf("Failed to fetch workflow %s", id)); err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWorkflow creates a workflow from the given payload. Server-owned
// fields are stripped and a default settings block is injected when absent
// before the request leaves the process.
func (c *Client) CreateWorkflow(ctx context.Context, payload map[string]any) (*models.Workflow, error) {
	body := sanitizeForCreate(payload)
	var w models.Workflow
	if err := c.do(ctx, http.MethodPost, "/workflows", body, &w, "Failed to create workflow"); err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorkflow replaces the workflow with the given payload. The remote
// API has full-object replace semantics, so callers must pass the merged
// object; fields missing from the payload are dropped remotely. Server-owned
// fields are stripped first.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, payload map[string]any) (*models.Workflow, error) {
	body := sanitizeForUpdate(payload)
	var w models.Workflow
	if err := c.do(ctx, http.MethodPut, "/workflows/"+url.PathEscape(id), body, &w, fmt.Sprintf("Failed to update workflow %s", id)); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWorkflow deletes a workflow.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var w models.Workflow
	if err := c.do(ctx, http.MethodDelete, "/workflows/"+url.PathEscape(id), nil, &w, fmt.Sprintf("Failed to delete workflow %s", id)); err != nil {
		return nil, err
	}
	return &w, nil
}

// ActivateWorkflow switches a workflow to active.
func (c *Client) ActivateWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var w models.Workflow
	if err := c.do(ctx, http.MethodPost, "/workflows/"+url.PathEscape(id)+"/activate", nil, &w, fmt.Sprintf("Failed to activate workflow %s", id)); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeactivateWorkflow switches a workflow to inactive.
func (c *Client) DeactivateWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var w models.Workflow
	if err := c.do(ctx, http.MethodPost, "/workflows/"+url.PathEscape(id)+"/deactivate", nil, &w, fmt.Sprintf("Failed to deactivate workflow %s", id)); err != nil {
		return nil, err
	}
	return &w, nil
}

// ExecuteWorkflow triggers a workflow run through the REST API.
func (c *Client) ExecuteWorkflow(ctx context.Context, id string, data map[string]any) (map[string]any, error) {
	if data == nil {
		data = map[string]any{}
	}
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/workflows/"+url.PathEscape(id)+"/execute", data, &out, fmt.Sprintf("Failed to execute workflow %s", id)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExecutions fetches all executions.
func (c *Client) GetExecutions(ctx context.Context) ([]models.Execution, error) {
	var resp collection[models.Execution]
	if err := c.do(ctx, http.MethodGet, "/executions", nil, &resp, "Failed to fetch executions"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetExecution fetches a single execution by id.
func (c *Client) GetExecution(ctx context.Context, id string) (*models.Execution, error) {
	var e models.Execution
	if err := c.do(ctx, http.MethodGet, "/executions/"+url.PathEscape(id), nil, &e, fmt.Sprintf("Failed to fetch execution %s", id)); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExecution deletes an execution.
func (c *Client) DeleteExecution(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodDelete, "/executions/"+url.PathEscape(id), nil, &out, fmt.Sprintf("Failed to delete execution %s", id)); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one request against the API, translating any failure into an
// *APIError. out may be nil for calls whose response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, failMessage string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Code: ErrInternal, Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return &APIError{Code: ErrInternal, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("X-N8N-API-KEY", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	traceID := ""
	if c.cfg.Debug {
		traceID = uuid.NewString()[:8]
		c.logger.Debug("n8n API request", "trace", traceID, "method", method, "path", path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return translateTransportError(err)
	}
	defer resp.Body.Close()

	if c.cfg.Debug {
		c.logger.Debug("n8n API response", "trace", traceID, "status", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return translateTransportError(err)
	}
	if resp.StatusCode >= 400 {
		return translateResponseError(resp.StatusCode, respBody, failMessage)
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Code: ErrInternal, Message: fmt.Sprintf("failed to decode response body: %v", err)}
		}
	}
	return nil
}
