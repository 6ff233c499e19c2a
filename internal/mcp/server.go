package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmatch/pkg/logging"
)

const (
	// Path is where the streamable HTTP endpoint is mounted
	Path = "/mcp/stream"

	serverName = "jobmatch"
)

// NewServer builds the MCP server with all available tools
func NewServer(res Resources, version string, logger *logging.Logger) *sdkmcp.Server {
	impl := &sdkmcp.Implementation{
		Name:    serverName,
		Version: version,
	}

	server := sdkmcp.NewServer(impl, nil)
	NewToolRegistry(logger).RegisterAll(server, res)
	return server
}

// NewHandler exposes server over streamable HTTP
func NewHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
}
