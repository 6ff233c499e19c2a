package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/internal/mcp/tools"
	"github.com/honeycarbs/jobmatch/pkg/logging"
)

// Resources are the services the tools are built on
type Resources struct {
	Searcher job.Searcher
	Exporter tools.SheetsExporter
}

type ToolRegistry struct {
	logger *logging.Logger
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ToolRegistry{logger: logger}
}

// RegisterAll installs every tool whose resources are available
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) []string {
	names := tools.Register(server, r.logger,
		tools.WithSearchJobs(res.Searcher),
		tools.WithSheetsExport(res.Exporter, res.Searcher),
	)
	r.logger.Info("MCP tools registered", "tools", names)
	return names
}
