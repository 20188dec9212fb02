package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// project creates a project root whose config points at one of the
// shared fixture sets.
func project(t *testing.T, set string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("../../../../testdata/fixtures", set))
	require.NoError(t, err)
	dir := t.TempDir()
	cfg := "fixtures_dir: " + abs + "\noracle:\n  mode: builtin\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fixturecheck.yaml"), []byte(cfg), 0644))
	return dir
}

func call(t *testing.T, h func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error), args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleValidate_Mixed(t *testing.T) {
	res := call(t, handleValidate(project(t, "mixed")), nil)
	assert.False(t, res.IsError)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &report))
	assert.Equal(t, "builtin", report.Oracle)
	assert.Equal(t, domain.VerdictFail, report.Result.Verdict)
	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, domain.StatusSkipped, report.Outcomes[1].Oracle.Status)
}

func TestHandleValidate_OracleOverride(t *testing.T) {
	res := call(t, handleValidate(project(t, "rejected")), map[string]any{"oracle": "none"})

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &report))
	assert.Equal(t, "none", report.Oracle)
	assert.Equal(t, domain.VerdictPass, report.Result.Verdict)
	assert.Equal(t, 2, report.Result.OracleSkipped)
}

func TestHandleValidate_BadMode(t *testing.T) {
	res := call(t, handleValidate(project(t, "valid")), map[string]any{"oracle": "lxml"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "unknown oracle mode")
}

func TestHandleList(t *testing.T) {
	res := call(t, handleList(project(t, "valid")), nil)

	var fixtures []domain.FixturePath
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &fixtures))
	require.Len(t, fixtures, 2)
	assert.Equal(t, "a.xml", fixtures[0].Name)
}

func TestHandleList_Empty(t *testing.T) {
	root := t.TempDir()
	res := call(t, handleList(root), map[string]any{"fixtures_dir": "empty"})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "No fixture files found")
	assert.DirExists(t, filepath.Join(root, "empty"))
}

func TestHandleOracle(t *testing.T) {
	res := call(t, handleOracle(project(t, "valid")), nil)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, "builtin", got["oracle"])
	assert.Equal(t, true, got["available"])
}

func TestHandleConfigResource(t *testing.T) {
	root := project(t, "valid")
	contents, err := handleConfigResource(root)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, configURI, tc.URI)

	var cfg domain.Config
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &cfg))
	assert.Equal(t, domain.OracleModeBuiltin, cfg.Oracle.Mode)
	assert.Equal(t, filepath.Join(root, ".fixturecheck"), cfg.StateDir)
}
