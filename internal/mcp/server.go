// Package mcp exposes the fix engine as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/joshsymonds/tokubetsu/internal/compliance"
	"github.com/joshsymonds/tokubetsu/internal/fixes"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// Server bundles what the tool handlers need.
type Server struct {
	engine  *fixes.Engine
	catalog *compliance.Catalog
	logger  logger.Logger
}

// NewServer creates an MCP server with all tokubetsu tools registered.
// Nil engine or catalog select the built-in defaults.
func NewServer(version string, engine *fixes.Engine, catalog *compliance.Catalog, log logger.Logger) *server.MCPServer {
	if engine == nil {
		engine = fixes.NewEngine(nil)
	}
	if catalog == nil {
		catalog = compliance.DefaultCatalog()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	s := server.NewMCPServer(
		"tokubetsu",
		version,
		server.WithToolCapabilities(true),
	)

	h := &Server{engine: engine, catalog: catalog, logger: log}
	h.registerTools(s)
	return s
}

// ServeStdio serves s over stdin and stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
