package mcp

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// MountHTTPHandlers exposes the MCP server over SSE under /mcp. The SSE
// server handles both the event stream and the message POST endpoint.
func MountHTTPHandlers(e *echo.Echo, mcpServer *server.MCPServer) {
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))
	e.Any("/mcp", echo.WrapHandler(sseServer))
	e.Any("/mcp/*", echo.WrapHandler(sseServer))
}

// NewHTTPServer builds the echo server hosting the MCP endpoints for the
// HTTP transport mode.
func NewHTTPServer(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware(serverName))

	MountHTTPHandlers(e, s.MCPServer())
	return e
}
