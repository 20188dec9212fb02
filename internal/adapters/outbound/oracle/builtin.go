package oracle

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agentflare-ai/go-xmldom"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// BuiltinName identifies the in-process oracle.
const BuiltinName = "builtin"

// Builtin reads FDSN StationXML and SeisComP SC3ML inventories with a DOM
// parser that shares nothing with the well-formedness checker.
type Builtin struct{}

func NewBuiltin() *Builtin {
	return &Builtin{}
}

func (b *Builtin) Name() string { return BuiltinName }

func (b *Builtin) Available() (bool, string) { return true, "" }

// Inspect parses the inventory at path and returns its network, station
// and channel counts.
func (b *Builtin) Inspect(ctx context.Context, path string) (domain.OracleSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.OracleSummary{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.OracleSummary{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := xmldom.Decode(skipBOM(f))
	if err != nil {
		return domain.OracleSummary{}, domain.Reject(BuiltinName, "XML parsing error: %v", err)
	}

	root := doc.DocumentElement()
	if root == nil {
		return domain.OracleSummary{}, domain.Reject(BuiltinName, "document has no root element")
	}

	switch string(root.LocalName()) {
	case "FDSNStationXML":
		return readFDSN(root)
	case "seiscomp":
		return readSC3ML(root)
	default:
		return domain.OracleSummary{}, domain.Reject(BuiltinName,
			"unknown format: could not detect XML format from root element <%s>", root.LocalName())
	}
}

func children(el xmldom.Element, local string) []xmldom.Element {
	var out []xmldom.Element
	kids := el.Children()
	for i := uint(0); i < kids.Length(); i++ {
		if c := kids.Item(i); c != nil && string(c.LocalName()) == local {
			out = append(out, c)
		}
	}
	return out
}

func child(el xmldom.Element, local string) xmldom.Element {
	if all := children(el, local); len(all) > 0 {
		return all[0]
	}
	return nil
}

func attr(el xmldom.Element, name string) (string, bool) {
	n := xmldom.DOMString(name)
	if !el.HasAttribute(n) {
		return "", false
	}
	return string(el.GetAttribute(n)), true
}

func text(el xmldom.Element) string {
	return strings.TrimSpace(string(el.TextContent()))
}

// reject prefixes the message with the element's source line.
func reject(el xmldom.Element, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if el != nil {
		if line, _, _ := el.Position(); line > 0 {
			msg = fmt.Sprintf("line %d: %s", line, msg)
		}
	}
	return &domain.OracleRejection{Oracle: BuiltinName, Message: msg}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func skipBOM(f *os.File) *bufio.Reader {
	br := bufio.NewReader(f)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func requireAttr(el xmldom.Element, what, name string) (string, error) {
	v, ok := attr(el, name)
	if !ok {
		return "", reject(el, "%s: missing required attribute %q", what, name)
	}
	return v, nil
}

func requireFloat(parent xmldom.Element, what, name string) (float64, error) {
	el := child(parent, name)
	if el == nil {
		return 0, reject(parent, "%s: missing required field: %s", what, name)
	}
	v, err := strconv.ParseFloat(text(el), 64)
	if err != nil {
		return 0, reject(el, "%s: invalid data: %s %q is not a number", what, name, text(el))
	}
	return v, nil
}

func requireRange(parent xmldom.Element, what, name string, lo, hi float64) error {
	v, err := requireFloat(parent, what, name)
	if err != nil {
		return err
	}
	if v < lo || v > hi {
		return reject(child(parent, name), "%s: invalid data: %s %g outside [%g, %g]", what, name, v, lo, hi)
	}
	return nil
}

// dateLayouts accepts RFC 3339 with or without fractional seconds, and the
// same without a zone, which is read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse datetime: '%s'", s)
}

func checkDateAttrs(el xmldom.Element, what string, names ...string) error {
	for _, name := range names {
		v, ok := attr(el, name)
		if !ok || v == "" {
			continue
		}
		if _, err := parseDateTime(v); err != nil {
			return reject(el, "%s: invalid data: %s", what, err)
		}
	}
	return nil
}
