package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceURI(t *testing.T) {
	assert.Equal(t, "n8n://workflows/1", ResourceURI("workflow", "1"))
	assert.Equal(t, "n8n://executions/abc-123", ResourceURI("execution", "abc-123"))
	// Collection URIs take the already-plural type and no id segment.
	assert.Equal(t, "n8n://workflows", ResourceURI("workflows"))
	assert.Equal(t, "n8n://execution-stats", ResourceURI("execution-stats"))
}

func TestExtractWorkflowID(t *testing.T) {
	id, ok := ExtractWorkflowID("n8n://workflows/abc-123")
	assert.True(t, ok)
	assert.Equal(t, "abc-123", id)

	for _, uri := range []string{
		"n8n://workflows/",
		"n8n://workflows",
		"n8n://workflows/a/b",
		"n8n://executions/abc-123",
		"http://workflows/abc",
	} {
		_, ok := ExtractWorkflowID(uri)
		assert.False(t, ok, "uri %q", uri)
	}
}

func TestExtractExecutionID(t *testing.T) {
	id, ok := ExtractExecutionID("n8n://executions/42")
	assert.True(t, ok)
	assert.Equal(t, "42", id)

	_, ok = ExtractExecutionID("n8n://workflows/42")
	assert.False(t, ok)
	_, ok = ExtractExecutionID("n8n://executions/")
	assert.False(t, ok)
}
