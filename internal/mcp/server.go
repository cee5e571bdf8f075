// ABOUTME: MCP server setup for the reconstructed wellness dataset.
// ABOUTME: Wraps MCP server around an in-memory series.Dataset.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akeil/wellkit/internal/series"
)

// Server exposes a reconstructed dataset over MCP.
type Server struct {
	mcpServer *mcp.Server
	ds        *series.Dataset
}

// NewServer creates a new MCP server over the given dataset.
func NewServer(ds *series.Dataset) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "wellkit",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		ds:        ds,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
