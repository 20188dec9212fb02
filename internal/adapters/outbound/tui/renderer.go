package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

// styles are bound to one renderer so color detection follows the
// destination writer rather than the process stdout.
type styles struct {
	title lipgloss.Style
	name  lipgloss.Style
	dim   lipgloss.Style
	faint lipgloss.Style
	pass  lipgloss.Style
	fail  lipgloss.Style
	skip  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(accent),
		name:  r.NewStyle().Bold(true).Foreground(fg),
		dim:   r.NewStyle().Foreground(dim),
		faint: r.NewStyle().Foreground(faint),
		pass:  r.NewStyle().Foreground(success),
		fail:  r.NewStyle().Foreground(danger).Bold(true),
		skip:  r.NewStyle().Foreground(warning),
	}
}

// RunRenderer streams a validation run as line-oriented text. It implements
// domain.RunObserver; each fixture block is written as soon as it arrives.
type RunRenderer struct {
	w  io.Writer
	st styles
}

func NewRunRenderer(w io.Writer) *RunRenderer {
	return &RunRenderer{w: w, st: newStyles(w)}
}

// Header prints the resolved directories and the oracle in effect.
func (r *RunRenderer) Header(fixturesDir, vectorsDir string, oracle domain.Oracle) {
	fmt.Fprintf(r.w, "Fixtures dir: %s/\n", fixturesDir)
	fmt.Fprintf(r.w, "Vectors dir:  %s/\n", vectorsDir)
	fmt.Fprintf(r.w, "Oracle:       %s\n", oracleLabel(oracle))
}

func (r *RunRenderer) RunStarted(fixtures []domain.FixturePath) {
	if len(fixtures) == 0 {
		return
	}
	fmt.Fprintf(r.w, "\nValidating %d fixture(s):\n", len(fixtures))
}

func (r *RunRenderer) FixtureValidated(o domain.ValidationOutcome) {
	fmt.Fprintf(r.w, "\n  %s\n", r.st.name.Render(o.Fixture.Name+":"))

	if o.WellFormed.Status == domain.StatusPass {
		fmt.Fprintf(r.w, "    XML well-formed: %s\n", r.st.pass.Render("OK"))
	} else {
		msg := "unknown error"
		if o.WellFormed.Diagnostic != nil {
			msg = o.WellFormed.Diagnostic.Error()
		}
		fmt.Fprintf(r.w, "    XML well-formed: %s %s\n", r.st.fail.Render("FAIL"), msg)
	}

	res := o.Oracle
	switch res.Status {
	case domain.StatusPass:
		summary := ""
		if res.Summary != nil {
			summary = ": " + res.Summary.String()
		}
		fmt.Fprintf(r.w, "    Oracle %s%s %s\n", r.st.pass.Render("OK"), summary, r.st.dim.Render("("+res.Oracle+")"))
	case domain.StatusFail:
		fmt.Fprintf(r.w, "    Oracle %s %s: %s\n", r.st.fail.Render("FAIL"), r.st.dim.Render("("+res.Oracle+")"), res.Message)
	default:
		fmt.Fprintf(r.w, "    Oracle %s %s\n", r.st.skip.Render("skipped"), r.st.dim.Render("("+res.Message+")"))
	}
}

// Summary prints the closing verdict line.
func (r *RunRenderer) Summary(result domain.RunResult) {
	switch result.Verdict {
	case domain.VerdictEmpty:
		fmt.Fprintln(r.w, "\nNo fixture files found.")
		return
	case domain.VerdictFail:
		fmt.Fprintf(r.w, "\n%s\n", r.st.fail.Render("Some fixtures failed validation!"))
	default:
		fmt.Fprintf(r.w, "\n%s\n", r.st.pass.Render("All fixtures valid."))
	}

	counts := fmt.Sprintf("%d checked, %d passed, %d failed", result.Total, result.Passed, result.Failed)
	if result.OracleSkipped > 0 {
		counts += fmt.Sprintf(", %d without oracle", result.OracleSkipped)
	}
	fmt.Fprintln(r.w, r.st.dim.Render(counts))
}

func oracleLabel(o domain.Oracle) string {
	if o == nil {
		return "none"
	}
	if ok, reason := o.Available(); !ok && reason != "" {
		return fmt.Sprintf("%s (%s)", o.Name(), reason)
	}
	return o.Name()
}

// RenderFixtureList formats the fixtures a run would validate.
func RenderFixtureList(w io.Writer, fixturesDir string, fixtures []domain.FixturePath) {
	st := newStyles(w)
	if len(fixtures) == 0 {
		fmt.Fprintf(w, "No fixture files found in %s/\n", fixturesDir)
		return
	}
	fmt.Fprintf(w, "%s %s\n", st.title.Render(fmt.Sprintf("%d fixture(s)", len(fixtures))), st.dim.Render("in "+fixturesDir+"/"))
	for _, f := range fixtures {
		fmt.Fprintf(w, "  %s\n", f.Name)
	}
}

// RenderOracle describes the resolved oracle.
func RenderOracle(w io.Writer, mode domain.OracleMode, oracle domain.Oracle) {
	st := newStyles(w)
	ok, reason := oracle.Available()

	fmt.Fprintf(w, "Mode:      %s\n", mode)
	fmt.Fprintf(w, "Resolved:  %s\n", st.name.Render(oracle.Name()))
	if ok {
		fmt.Fprintf(w, "Available: %s\n", st.pass.Render("yes"))
		return
	}
	fmt.Fprintf(w, "Available: %s %s\n", st.skip.Render("no"), st.dim.Render("("+reason+")"))
	fmt.Fprintln(w, st.dim.Render("Fixtures will be checked for well-formedness only."))
}

// RenderHistory formats run history for terminal output.
func RenderHistory(w io.Writer, entries []domain.RunEntry) {
	st := newStyles(w)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  "+st.dim.Render("No run history found."))
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+st.title.Render("Run History"))
	fmt.Fprintln(w, "  "+st.faint.Render(strings.Repeat("─", 50)))
	fmt.Fprintln(w)

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		verdict := string(e.Verdict)
		switch e.Verdict {
		case domain.VerdictPass:
			verdict = st.pass.Render(verdict)
		case domain.VerdictFail:
			verdict = st.fail.Render(verdict)
		default:
			verdict = st.dim.Render(verdict)
		}

		line := fmt.Sprintf("  %s  %s  %-8s %3d fixtures  %s",
			st.dim.Render(date),
			st.faint.Render(hash),
			e.Oracle,
			e.Total,
			verdict,
		)

		if i > 0 {
			diff := e.Failed - entries[i-1].Failed
			if diff > 0 {
				line += "  " + st.fail.Render(fmt.Sprintf("↑%d failing", diff))
			} else if diff < 0 {
				line += "  " + st.pass.Render(fmt.Sprintf("↓%d failing", -diff))
			}
		}

		fmt.Fprintln(w, line)
	}
}
