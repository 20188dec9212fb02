package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// ObsPyName identifies the ObsPy-backed oracle.
const ObsPyName = "obspy"

const (
	exitObsPyMissing = 3
	exitObsPyReject  = 2
)

// obspyProbe exits 0 only when obspy imports cleanly. Some interpreter
// versions fail inside the import itself, not just when it is absent.
const obspyProbe = "import obspy"

const obspyScript = `import json, sys
try:
    from obspy import read_inventory
except Exception as e:
    sys.stderr.write("ObsPy not available: %s\n" % e)
    sys.exit(3)
try:
    inv = read_inventory(sys.argv[1])
except Exception as e:
    sys.stderr.write("%s\n" % e)
    sys.exit(2)
print(json.dumps({
    "format": "obspy",
    "networks": len(inv.networks),
    "stations": sum(len(n.stations) for n in inv.networks),
    "channels": sum(len(s.channels) for n in inv.networks for s in n.stations),
}))
`

// RunResult is the captured result of one subprocess invocation.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes a command. A non-nil error means the command could not be
// started at all; a non-zero exit is reported through RunResult.ExitCode.
type Runner func(ctx context.Context, name string, args ...string) (RunResult, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) (RunResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}

// ObsPy drives ObsPy's read_inventory in a Python subprocess.
type ObsPy struct {
	python string
	run    Runner
}

// NewObsPy returns an ObsPy oracle using the given interpreter path.
func NewObsPy(python string, run Runner) *ObsPy {
	if run == nil {
		run = ExecRunner
	}
	return &ObsPy{python: python, run: run}
}

func (o *ObsPy) Name() string { return ObsPyName }

func (o *ObsPy) Available() (bool, string) { return true, "" }

// Inspect runs read_inventory on path and returns the counts it reports.
func (o *ObsPy) Inspect(ctx context.Context, path string) (domain.OracleSummary, error) {
	res, err := o.run(ctx, o.python, "-c", obspyScript, path)
	if err != nil {
		return domain.OracleSummary{}, fmt.Errorf("%w: running %s: %v", domain.ErrOracleUnavailable, o.python, err)
	}

	switch res.ExitCode {
	case 0:
	case exitObsPyMissing:
		return domain.OracleSummary{}, fmt.Errorf("%w: %s", domain.ErrOracleUnavailable, lastLine(res.Stderr))
	case exitObsPyReject:
		return domain.OracleSummary{}, domain.Reject(ObsPyName, "%s", lastLine(res.Stderr))
	default:
		return domain.OracleSummary{}, domain.Reject(ObsPyName, "exit status %d: %s", res.ExitCode, lastLine(res.Stderr))
	}

	var sum domain.OracleSummary
	if err := json.Unmarshal(bytes.TrimSpace(res.Stdout), &sum); err != nil {
		return domain.OracleSummary{}, fmt.Errorf("decoding obspy output: %w", err)
	}
	return sum, nil
}

// Probe reports whether python can import obspy.
func Probe(ctx context.Context, python string, run Runner) error {
	if run == nil {
		run = ExecRunner
	}
	res, err := run(ctx, python, "-c", obspyProbe)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		msg := lastLine(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", res.ExitCode)
		}
		return fmt.Errorf("import obspy: %s", msg)
	}
	return nil
}

func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
