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
)

// WebhookResponse is the outcome of a webhook invocation.
type WebhookResponse struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Data       any    `json:"data"`
}

// webhookBaseURL derives the instance base URL from the configured API URL
// by stripping a trailing /api/v1 path segment. Other versioning conventions
// pass through untouched.
func (c *Client) webhookBaseURL() (*url.URL, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, &APIError{Code: ErrInternal, Message: fmt.Sprintf("invalid n8n API URL: %v", err)}
	}
	path := strings.TrimSuffix(u.Path, "/")
	path = strings.TrimSuffix(path, "/api/v1")
	u.Path = path
	return u, nil
}

// RunWebhook POSTs data to {base}/webhook/{workflowName} using the webhook
// basic-auth credentials, which are separate from the API key and read here,
// at the point of use. Extra headers are merged over the defaults.
func (c *Client) RunWebhook(ctx context.Context, workflowName string, data map[string]any, headers map[string]string) (*WebhookResponse, error) {
	if c.cfg.WebhookUsername == "" || c.cfg.WebhookPassword == "" {
		return nil, NewInvalidRequestError("Webhook credentials are not configured (set N8N_WEBHOOK_USERNAME and N8N_WEBHOOK_PASSWORD)")
	}

	base, err := c.webhookBaseURL()
	if err != nil {
		return nil, err
	}
	target := base.JoinPath("webhook", workflowName).String()

	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, &APIError{Code: ErrInternal, Message: fmt.Sprintf("failed to encode webhook body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Code: ErrInternal, Message: fmt.Sprintf("failed to create webhook request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBasicAuth(c.cfg.WebhookUsername, c.cfg.WebhookPassword)

	if c.cfg.Debug {
		c.logger.Debug("webhook request", "url", target)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, translateTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, translateTransportError(err)
	}

	if resp.StatusCode >= 400 {
		message := fmt.Sprintf("Webhook execution failed with status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		var details any
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err == nil {
			details = decoded
		} else if len(body) > 0 {
			details = string(body)
		}
		return nil, NewAPIError(message, resp.StatusCode, details)
	}

	var decoded any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			decoded = string(body)
		}
	}
	return &WebhookResponse{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Data:       decoded,
	}, nil
}
