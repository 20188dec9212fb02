// Package xmlcheck verifies that fixtures are well-formed XML using the
// standard library decoder, with no schema awareness.
package xmlcheck

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// Checker implements domain.WellFormednessChecker.
type Checker struct{}

func New() *Checker {
	return &Checker{}
}

// Check parses the file at path and returns a *domain.SyntaxDiagnostic for
// the first well-formedness violation. The file is closed before returning.
func (c *Checker) Check(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &domain.SyntaxDiagnostic{Message: err.Error()}
	}
	defer f.Close()

	return CheckReader(f)
}

// CheckReader is Check for an already open document. A leading UTF-8 byte
// order mark is skipped.
func CheckReader(r io.Reader) error {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	d := xml.NewDecoder(br)
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	// RawToken leaves prefixes untranslated, so element matching and
	// namespace scoping are tracked here.
	var (
		stack   []xml.Name
		scopes  namespaces
		roots   int
		doctype bool
	)
	for first := true; ; first = false {
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return diagnostic(d, err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml") && !(first && t.Target == "xml") {
				return positioned(d, "XML declaration not at start of document")
			}
		case xml.Directive:
			if !bytes.HasPrefix(t, []byte("DOCTYPE")) || roots > 0 || doctype {
				return positioned(d, "misplaced markup declaration")
			}
			doctype = true
			declareEntities(d, t)
		case xml.StartElement:
			if len(stack) == 0 {
				roots++
				if roots > 1 {
					return positioned(d, "junk after document element")
				}
			}
			if err := scopes.push(t); err != nil {
				return positioned(d, err.Error())
			}
			stack = append(stack, t.Name)
		case xml.EndElement:
			if len(stack) == 0 {
				return positioned(d, fmt.Sprintf("unexpected end element </%s>", qname(t.Name)))
			}
			if top := stack[len(stack)-1]; top != t.Name {
				return positioned(d, fmt.Sprintf("element <%s> closed by </%s>", qname(top), qname(t.Name)))
			}
			stack = stack[:len(stack)-1]
			scopes.pop()
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return positioned(d, "text outside document element")
			}
		}
	}

	if len(stack) > 0 {
		return positioned(d, fmt.Sprintf("unclosed element <%s>", qname(stack[len(stack)-1])))
	}
	if roots == 0 {
		return positioned(d, "no element found")
	}
	return nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// entityDecl matches internal general entities. Parameter and external
// entities are left undeclared.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"'>]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

func declareEntities(d *xml.Decoder, doctype xml.Directive) {
	for _, m := range entityDecl.FindAllSubmatch(doctype, -1) {
		if d.Entity == nil {
			d.Entity = make(map[string]string)
		}
		name := string(m[1])
		if _, ok := d.Entity[name]; ok {
			continue
		}
		value := m[2]
		if value == nil {
			value = m[3]
		}
		d.Entity[name] = string(value)
	}
}

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// namespaces holds the prefix bindings declared by each open element.
type namespaces []map[string]string

func (ns namespaces) lookup(prefix string) (string, bool) {
	switch prefix {
	case "":
		return "", true
	case "xml":
		return xmlNamespace, true
	}
	for i := len(ns) - 1; i >= 0; i-- {
		if uri, ok := ns[i][prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

func (ns *namespaces) push(start xml.StartElement) error {
	bound := make(map[string]string)
	for _, a := range start.Attr {
		if a.Name.Space != "xmlns" {
			continue
		}
		if a.Value == "" {
			return fmt.Errorf("empty namespace URI for prefix %q", a.Name.Local)
		}
		bound[a.Name.Local] = a.Value
	}
	*ns = append(*ns, bound)

	if start.Name.Space == "xmlns" {
		return fmt.Errorf("reserved prefix on element <%s>", qname(start.Name))
	}
	if _, ok := ns.lookup(start.Name.Space); !ok {
		return fmt.Errorf("unbound prefix %q on element <%s>", start.Name.Space, qname(start.Name))
	}

	seen := make(map[string]bool, len(start.Attr))
	for _, a := range start.Attr {
		key := a.Name.Local
		switch a.Name.Space {
		case "":
		case "xmlns":
			key = "xmlns:" + a.Name.Local
		default:
			uri, ok := ns.lookup(a.Name.Space)
			if !ok {
				return fmt.Errorf("unbound prefix %q on attribute %s", a.Name.Space, qname(a.Name))
			}
			key = "{" + uri + "}" + a.Name.Local
		}
		if seen[key] {
			return fmt.Errorf("duplicate attribute %s", qname(a.Name))
		}
		seen[key] = true
	}
	return nil
}

func (ns *namespaces) pop() {
	*ns = (*ns)[:len(*ns)-1]
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func diagnostic(d *xml.Decoder, err error) *domain.SyntaxDiagnostic {
	line, col := d.InputPos()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &domain.SyntaxDiagnostic{Line: se.Line, Column: col, Message: se.Msg}
	}
	return &domain.SyntaxDiagnostic{Line: line, Column: col, Message: err.Error()}
}

func positioned(d *xml.Decoder, msg string) *domain.SyntaxDiagnostic {
	line, col := d.InputPos()
	return &domain.SyntaxDiagnostic{Line: line, Column: col, Message: msg}
}
