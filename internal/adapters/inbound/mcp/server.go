package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewFixtureCheckMCPServer creates a new MCP server with all fixturecheck
// tools and resources registered. The projectPath is the directory holding
// .fixturecheck.yaml.
func NewFixtureCheckMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"fixturecheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
