package xmlcheck_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/xmlcheck"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReader_WellFormed(t *testing.T) {
	docs := map[string]string{
		"minimal":         `<FDSNStationXML/>`,
		"declaration":     "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<FDSNStationXML schemaVersion=\"1.2\"><Source>x</Source></FDSNStationXML>\n",
		"comments":        "<!-- header -->\n<root><!-- inner --><a>1 &amp; 2</a></root>\n<!-- trailer -->",
		"latin1":          "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><root>Bogot\xe1</root>",
		"byte order mark": "\ufeff<?xml version=\"1.0\" encoding=\"UTF-8\"?><a/>",
		"namespaces": `<FDSNStationXML xmlns="http://www.fdsn.org/xml/station/1" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
			`xsi:schemaLocation="http://www.fdsn.org/xml/station/1 station.xsd"><xsi:note xml:lang="en"/></FDSNStationXML>`,
		"prefix redeclared": `<a xmlns:p="urn:one"><p:b xmlns:p="urn:two" p:x="1"/></a>`,
		"internal entity":   `<!DOCTYPE a [<!ENTITY net "XX"><!ENTITY sta 'STA'>]><a code="&net;">&sta;</a>`,
		"stylesheet pi":     `<?xml version="1.0"?><?xml-stylesheet href="s.xsl"?><a/>`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, xmlcheck.CheckReader(strings.NewReader(doc)))
		})
	}
}

func TestCheckReader_Malformed(t *testing.T) {
	docs := map[string]string{
		"unclosed tag":                 "<root>\n  <Network code=\"XX\">\n</root>",
		"unclosed at EOF":              "<root>\n  <Network>",
		"bad entity":                   "<root>&bogus;</root>",
		"empty":                        "",
		"whitespace only":              "  \n ",
		"two roots":                    "<a/><b/>",
		"trailing text":                "<a/>garbage",
		"invalid utf8":                 "<root>\xff\xfe</root>",
		"unquoted attr":                "<root code=XX/>",
		"unknown encoding":             `<?xml version="1.0" encoding="x-made-up"?><root/>`,
		"duplicate attribute":          `<a x="1" x="2"/>`,
		"duplicate expanded attribute": `<a xmlns:p="urn:u" xmlns:q="urn:u" p:x="1" q:x="2"/>`,
		"unbound element prefix":       `<x:a/>`,
		"unbound attribute prefix":     `<a x:y="1"/>`,
		"prefix out of scope":          `<a><b xmlns:p="urn:u"/><p:c/></a>`,
		"late xml declaration":         `<a/><?xml version="1.0"?>`,
		"declaration after space":      "\n<?xml version=\"1.0\"?><a/>",
		"doctype after root":           `<a/><!DOCTYPE a>`,
		"undeclared entity in doctype": `<!DOCTYPE a [<!ENTITY e "x">]><a>&f;</a>`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			err := xmlcheck.CheckReader(strings.NewReader(doc))
			require.Error(t, err)

			var diag *domain.SyntaxDiagnostic
			require.True(t, errors.As(err, &diag))
			assert.NotEmpty(t, diag.Message)
		})
	}
}

func TestCheckReader_ReportsLine(t *testing.T) {
	err := xmlcheck.CheckReader(strings.NewReader("<root>\n<a>\n</b>\n</root>"))
	require.Error(t, err)

	var diag *domain.SyntaxDiagnostic
	require.True(t, errors.As(err, &diag))
	assert.Equal(t, 3, diag.Line)
	assert.Contains(t, diag.Error(), "line 3")
}

func TestChecker_Check(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xml")
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(good, []byte("<root/>"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("<root>"), 0644))

	c := xmlcheck.New()
	assert.NoError(t, c.Check(good))
	assert.Error(t, c.Check(bad))
}

func TestChecker_MissingFile(t *testing.T) {
	err := xmlcheck.New().Check(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)

	var diag *domain.SyntaxDiagnostic
	assert.True(t, errors.As(err, &diag))
}
