// Package mcp wires the n8n gateway into an MCP server: a static catalog of
// tools and resources, one handler per operation, and a uniform result
// envelope for every outcome.
package mcp

import (
	"encoding/json"
	"fmt"

	"n8n-mcp-server/internal/logging"
	"n8n-mcp-server/internal/n8n"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "n8n-mcp-server"
	serverVersion = "0.1.0"
)

// Server exposes n8n workflow management over MCP. Handlers share the
// read-only gateway and logger; no mutable state crosses calls.
type Server struct {
	mcpServer *server.MCPServer
	api       n8n.API
	logger    *logging.Logger
}

// NewServer builds the server and registers the full tool and resource
// catalog. The catalog is pure data assembled here once; dispatch afterwards
// is the MCP library's static table.
func NewServer(api n8n.API, logger *logging.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, true),
		),
		api:    api,
		logger: logger,
	}

	s.registerWorkflowTools()
	s.registerExecutionTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying MCP server for transport hookup.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the server over the stdio transport until the stream
// closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// arguments pulls the argument map out of a tool call. An absent block is an
// empty map; a block of any other JSON type is rejected outright.
func arguments(request mcp.CallToolRequest) (map[string]any, error) {
	if request.Params.Arguments == nil {
		return map[string]any{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, n8n.NewInvalidRequestError("Invalid arguments type")
	}
	return args, nil
}

// resultSuccess wraps formatted data and a human message into the success
// envelope.
func resultSuccess(data any, message string) *mcp.CallToolResult {
	text := message
	if b, err := json.MarshalIndent(data, "", "  "); err == nil {
		if text != "" {
			text = fmt.Sprintf("%s\n\n%s", text, b)
		} else {
			text = string(b)
		}
	}
	return mcp.NewToolResultText(text)
}

// resultError wraps a failure into the error envelope. Nothing is rethrown:
// no tool handler lets an error escape past its own boundary.
func (s *Server) resultError(tool string, err error) *mcp.CallToolResult {
	s.logger.Error("tool call failed", "tool", tool, "error", err)
	return mcp.NewToolResultError(err.Error())
}

// requireString validates a required string argument, naming the missing
// field in the failure.
func requireString(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", n8n.NewInvalidRequestError("Missing required parameter: " + name)
	}
	return v, nil
}
