package schema

import (
	"encoding/xml"

	"github.com/andaru/mbwizard/mberr"
	"github.com/andaru/mbwizard/xmlutil"
	"github.com/golang/glog"
)

const elemISO3166Entry = "iso_3166_entry"

// Translator returns the localized display name of the country with the
// ISO 3166 alpha-2 code and English name given. Implementations return
// name unchanged when they have no translation.
type Translator interface {
	Translate(code, name string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(code, name string) string

// Translate calls f(code, name).
func (f TranslatorFunc) Translate(code, name string) string { return f(code, name) }

// ISOParser builds a CodeTable from an iso-codes iso_3166.xml document.
// It implements Handler; only start element events are of interest.
type ISOParser struct {
	translator Translator
	codes      CodeTable
	warnings   []error
}

// NewISOParser returns a parser translating display names with t.
// A nil t keeps the names found in the document.
func NewISOParser(t Translator) *ISOParser { return &ISOParser{translator: t} }

// Codes returns the table built so far; nil until the first entry is
// accepted.
func (p *ISOParser) Codes() CodeTable { return p.codes }

// Warnings returns one warning-severity error per skipped entry.
func (p *ISOParser) Warnings() []error { return p.warnings }

// StartElement records one <iso_3166_entry>.
func (p *ISOParser) StartElement(se xml.StartElement) {
	if !xmlutil.IsElement(se, elemISO3166Entry) {
		return
	}

	attrs := xmlutil.Attrs(se, "alpha_2_code", "common_name", "name")
	code, commonName, name := attrs[0], attrs[1], attrs[2]
	if code == nil {
		p.warn(mberr.MissingAttribute("alpha_2_code", elemISO3166Entry, mberr.WithSeverity(mberr.SeverityWarning)))
		return
	}
	if name == nil {
		p.warn(mberr.MissingAttribute("name", elemISO3166Entry, mberr.WithSeverity(mberr.SeverityWarning)))
		return
	}

	display := *name
	if commonName != nil {
		display = *commonName
	}
	if p.translator != nil {
		if translated := p.translator.Translate(*code, display); translated != "" {
			display = translated
		}
	}

	if p.codes == nil {
		p.codes = CodeTable{}
	}
	p.codes[display] = *code
}

func (p *ISOParser) warn(err error) {
	glog.Warningf("iso_3166: skipping entry: %v", err)
	p.warnings = append(p.warnings, err)
}

func (p *ISOParser) EndElement(xml.EndElement) {}
func (p *ISOParser) CharData(xml.CharData)     {}
func (p *ISOParser) Failed() error             { return nil }
