package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/inbound/cli"
)

const fixturesRoot = "../../../../testdata/fixtures"

func fixtures(name string) string {
	return filepath.Join(fixturesRoot, name)
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := cli.NewRootCmdForTest()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
