package n8n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorCode
	}{
		{401, ErrAuthentication},
		{403, ErrAuthentication},
		{404, ErrNotFound},
		{400, ErrInvalidRequest},
		{422, ErrInvalidRequest},
		{500, ErrInternal},
		{503, ErrInternal},
		{0, ErrInternal},
	}
	for _, tc := range cases {
		err := NewAPIError("failed", tc.status, nil)
		assert.Equal(t, tc.want, err.Code, "status %d", tc.status)
	}
}

func TestAPIErrorMessageRendering(t *testing.T) {
	err := NewAPIError("Failed to fetch workflow 1", 404, map[string]any{"message": "not found"})

	msg := err.Error()
	assert.Contains(t, msg, "Failed to fetch workflow 1")
	assert.Contains(t, msg, "(Status: 404)")
	assert.Contains(t, msg, "Details:")
	assert.Contains(t, msg, "not found")
}

func TestAPIErrorUnserializableDetailsOmitted(t *testing.T) {
	err := NewAPIError("failed", 500, func() {})

	msg := err.Error()
	assert.Contains(t, msg, "failed (Status: 500)")
	assert.NotContains(t, msg, "Details:")
}

func TestTranslateResponseErrorUsesBodyMessage(t *testing.T) {
	err := translateResponseError(400, []byte(`{"message":"name must not be empty"}`), "Failed to create workflow")

	assert.Equal(t, ErrInvalidRequest, err.Code)
	assert.Equal(t, "name must not be empty", err.Message)
	assert.Equal(t, 400, err.Status)
}

func TestTranslateResponseErrorNonJSONBody(t *testing.T) {
	err := translateResponseError(502, []byte("bad gateway"), "Failed to fetch workflows")

	assert.Equal(t, ErrInternal, err.Code)
	assert.Equal(t, "Failed to fetch workflows", err.Message)
	assert.Equal(t, "bad gateway", err.Details)
}

func TestTranslateTransportError(t *testing.T) {
	err := translateTransportError(errors.New("dial tcp: connection refused"))

	assert.Equal(t, ErrInternal, err.Code)
	assert.Equal(t, "Network error connecting to n8n API", err.Message)
	assert.Zero(t, err.Status)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "InitializationError", ErrInitialization.String())
	assert.Equal(t, "AuthenticationError", ErrAuthentication.String())
	assert.Equal(t, "NotFoundError", ErrNotFound.String())
	assert.Equal(t, "InvalidRequest", ErrInvalidRequest.String())
	assert.Equal(t, "InternalError", ErrInternal.String())
	assert.Equal(t, "NotImplemented", ErrNotImplemented.String())
}
