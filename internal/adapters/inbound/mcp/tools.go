package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/config"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/oracle"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/scanner"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/xmlcheck"
	"github.com/stationxml-rs/fixturecheck/internal/application"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
	"github.com/stationxml-rs/fixturecheck/internal/logger"
)

// registerTools registers all fixturecheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. fixturecheck_validate
	s.AddTool(
		mcplib.NewTool("fixturecheck_validate",
			mcplib.WithDescription("Validate every StationXML fixture (well-formedness, then oracle parse) and return the run report as JSON"),
			mcplib.WithString("fixtures_dir", mcplib.Description("Fixtures directory, relative to the project root (default from .fixturecheck.yaml)")),
			mcplib.WithString("oracle", mcplib.Description("Oracle mode: auto, builtin, obspy or none")),
		),
		handleValidate(projectPath),
	)

	// 2. fixturecheck_list
	s.AddTool(
		mcplib.NewTool("fixturecheck_list",
			mcplib.WithDescription("List the fixture files a run would validate, in validation order"),
			mcplib.WithString("fixtures_dir", mcplib.Description("Fixtures directory, relative to the project root")),
		),
		handleList(projectPath),
	)

	// 3. fixturecheck_oracle
	s.AddTool(
		mcplib.NewTool("fixturecheck_oracle",
			mcplib.WithDescription("Report which oracle a run would use and whether it is available"),
			mcplib.WithString("oracle", mcplib.Description("Oracle mode: auto, builtin, obspy or none")),
		),
		handleOracle(projectPath),
	)
}

// loadConfig reads the project config and applies tool arguments on top.
func loadConfig(projectPath string, args map[string]any) (domain.Config, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := config.New().Load(root)
	if err != nil {
		return domain.Config{}, err
	}
	if dir, ok := args["fixtures_dir"].(string); ok && dir != "" {
		cfg.FixturesDir = dir
	}
	if mode, ok := args["oracle"].(string); ok && mode != "" {
		cfg.Oracle.Mode = domain.OracleMode(mode)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg.WithDefaults().Resolve(root), nil
}

func resolveOracle(ctx context.Context, cfg domain.Config) domain.Oracle {
	// stdout carries the protocol, so diagnostics go to stderr.
	return oracle.NewResolver(logger.New(os.Stderr, false)).Resolve(ctx, cfg.Oracle)
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := loadConfig(projectPath, request.GetArguments())
		if err != nil {
			return errorResult(err.Error()), nil
		}

		o := resolveOracle(ctx, cfg)
		svc := application.NewValidateService(scanner.New(), xmlcheck.New(), o)

		report := domain.NewReport(cfg.FixturesDir, o.Name())
		result, err := svc.Run(ctx, cfg, report)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		report.Result = result
		return jsonResult(report)
	}
}

func handleList(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := loadConfig(projectPath, request.GetArguments())
		if err != nil {
			return errorResult(err.Error()), nil
		}

		fixtures, err := scanner.New().Locate(cfg.FixturesDir, cfg.Pattern, cfg.VectorsDir)
		if err != nil {
			return errorResult(fmt.Sprintf("list failed: %v", err)), nil
		}
		if len(fixtures) == 0 {
			return textResult("No fixture files found in " + cfg.FixturesDir), nil
		}
		return jsonResult(fixtures)
	}
}

func handleOracle(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := loadConfig(projectPath, request.GetArguments())
		if err != nil {
			return errorResult(err.Error()), nil
		}

		o := resolveOracle(ctx, cfg)
		ok, reason := o.Available()
		return jsonResult(map[string]any{
			"mode":      cfg.Oracle.Mode,
			"oracle":    o.Name(),
			"available": ok,
			"reason":    reason,
		})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
