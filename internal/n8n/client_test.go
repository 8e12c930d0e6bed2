package n8n

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"n8n-mcp-server/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client := NewClient(ClientConfig{
		BaseURL:         ts.URL + "/api/v1",
		APIKey:          "test-key",
		WebhookUsername: "hook-user",
		WebhookPassword: "hook-pass",
	}, logging.New(false))
	return client, ts
}

func TestGetWorkflowsDecodesCollection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/workflows", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-N8N-API-KEY"))
		_, _ = w.Write([]byte(`{"data":[{"id":"1","name":"wf-a","active":true},{"id":"2","name":"wf-b","active":false}]}`))
	})

	workflows, err := client.GetWorkflows(context.Background())
	require.NoError(t, err)
	require.Len(t, workflows, 2)
	assert.Equal(t, "wf-a", workflows[0].Name)
	assert.True(t, workflows[0].Active)
}

func TestCreateWorkflowStripsReadOnlyFieldsOnWire(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/workflows", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"id":"9","name":"wf","active":false}`))
	})

	created, err := client.CreateWorkflow(context.Background(), map[string]any{
		"name":      "wf",
		"active":    true,
		"id":        "should-not-ship",
		"createdAt": "x",
		"updatedAt": "y",
		"tags":      []any{"t"},
	})
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)

	for _, field := range []string{"active", "id", "createdAt", "updatedAt", "tags"} {
		assert.NotContains(t, received, field)
	}
	assert.Contains(t, received, "settings")
}

func TestUpdateWorkflowKeepsActiveOnWire(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/workflows/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"id":"7","name":"wf","active":true}`))
	})

	_, err := client.UpdateWorkflow(context.Background(), "7", map[string]any{
		"name":   "wf",
		"active": true,
		"id":     "7",
		"tags":   []any{},
	})
	require.NoError(t, err)

	assert.Equal(t, true, received["active"])
	assert.NotContains(t, received, "id")
	assert.NotContains(t, received, "tags")
	assert.NotContains(t, received, "settings")
}

func TestNotFoundTranslatedToAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"workflow not found"}`))
	})

	_, err := client.GetWorkflow(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrNotFound, apiErr.Code)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "workflow not found", apiErr.Message)
}

func TestAuthFailureTranslated(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.CheckConnectivity(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrAuthentication, apiErr.Code)
}

func TestNetworkErrorTranslated(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL: "http://127.0.0.1:1/api/v1", // nothing listens here
		APIKey:  "k",
	}, logging.New(false))

	_, err := client.GetWorkflows(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrInternal, apiErr.Code)
	assert.Equal(t, "Network error connecting to n8n API", apiErr.Message)
}

func TestActivateDeactivateEndpoints(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"1","name":"wf","active":true}`))
	})

	_, err := client.ActivateWorkflow(context.Background(), "1")
	require.NoError(t, err)
	_, err = client.DeactivateWorkflow(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/v1/workflows/1/activate",
		"POST /api/v1/workflows/1/deactivate",
	}, paths)
}

func TestRunWebhookStripsAPIPrefixAndUsesBasicAuth(t *testing.T) {
	var gotPath, gotHeader string
	var gotUser, gotPass string
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Custom")
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	resp, err := client.RunWebhook(context.Background(), "hello-world",
		map[string]any{"greeting": "hi"},
		map[string]string{"X-Custom": "yes"},
	)
	require.NoError(t, err)

	assert.Equal(t, "/webhook/hello-world", gotPath)
	assert.Equal(t, "yes", gotHeader)
	assert.Equal(t, "hook-user", gotUser)
	assert.Equal(t, "hook-pass", gotPass)
	assert.Equal(t, map[string]any{"greeting": "hi"}, gotBody)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, map[string]any{"ok": true}, resp.Data)
}

func TestRunWebhookErrorIncludesResponseBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"authorization required"}`))
	})

	_, err := client.RunWebhook(context.Background(), "secret", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrAuthentication, apiErr.Code)
	assert.Contains(t, apiErr.Error(), "Webhook execution failed with status 403")
	assert.Contains(t, apiErr.Error(), "authorization required")
}

func TestRunWebhookWithoutCredentials(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://localhost/api/v1", APIKey: "k"}, logging.New(false))

	_, err := client.RunWebhook(context.Background(), "wf", nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrInvalidRequest, apiErr.Code)
	assert.Contains(t, apiErr.Message, "N8N_WEBHOOK_USERNAME")
}

func TestExecuteWorkflowPostsData(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/workflows/5/execute", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"executionId":"e1"}`))
	})

	out, err := client.ExecuteWorkflow(context.Background(), "5", map[string]any{"input": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", received["input"])
	assert.Equal(t, "e1", out["executionId"])
}

func TestExecuteWorkflowNilDataSendsEmptyObject(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.ExecuteWorkflow(context.Background(), "5", nil)
	require.NoError(t, err)
	assert.NotNil(t, received)
	assert.Empty(t, received)
}

func TestWebhookBaseURLDerivation(t *testing.T) {
	cases := []struct {
		apiURL string
		want   string
	}{
		{"http://localhost:5678/api/v1", "http://localhost:5678"},
		{"http://localhost:5678/api/v1/", "http://localhost:5678"},
		{"http://localhost:5678", "http://localhost:5678"},
		{"https://n8n.example.com/instance/api/v1", "https://n8n.example.com/instance"},
		{"https://n8n.example.com/api/v2", "https://n8n.example.com/api/v2"},
	}
	for _, tc := range cases {
		client := NewClient(ClientConfig{BaseURL: tc.apiURL, APIKey: "k"}, logging.New(false))
		base, err := client.webhookBaseURL()
		require.NoError(t, err, tc.apiURL)
		assert.Equal(t, tc.want, base.String(), tc.apiURL)
	}
}
