package schema

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/andaru/mbwizard/mberr"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Handler receives the events of a single XML document, in document
// order. Failed reports a terminal handler error; once it returns
// non-nil no further events are delivered.
type Handler interface {
	StartElement(xml.StartElement)
	EndElement(xml.EndElement)
	CharData(xml.CharData)
	Failed() error
}

// NewDecoder returns an XML decoder reading from r which understands
// the character sets declared by the source databases.
func NewDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// Parse decodes the document held in data, delivering its events to h.
func Parse(data []byte, h Handler) error {
	return Decode(NewDecoder(bytes.NewReader(data)), h)
}

// Decode consumes every token from d and delivers element and character
// data events to h. It returns when the document ends, when d reports an
// error, or when h enters its failed state.
//
// A document without a root element, a syntax error and a handler
// failure are all reported as errors; io.EOF after a complete document
// is not.
func Decode(d *xml.Decoder, h Handler) error {
	var root bool
	for {
		token, err := d.Token()
		if err != nil {
			if err != io.EOF {
				return errors.WithStack(mberr.MalformedDocument(mberr.WithMessage(err.Error())))
			}
			break
		}

		switch token := token.(type) {
		case xml.StartElement:
			root = true
			h.StartElement(token)

		case xml.EndElement:
			h.EndElement(token)

		case xml.CharData:
			h.CharData(token)

		case xml.ProcInst, xml.Comment, xml.Directive:
			// ignore the prolog, comments and directives
		}

		if err := h.Failed(); err != nil {
			glog.V(1).Infof("parse stopped at offset %d: %v", d.InputOffset(), err)
			return errors.WithStack(err)
		}
	}

	if !root {
		return errors.WithStack(mberr.MalformedDocument(mberr.WithMessage("document was empty or contained only whitespace")))
	}
	return nil
}
