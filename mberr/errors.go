package mberr

import (
	"bytes"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Type represents the layer an error was raised in
type Type int

const (
	// TypeSource is an error reading a source database file
	TypeSource Type = iota
	// TypeDocument is an error in the content of a source document
	TypeDocument
	// TypeBus is an error talking to the telephony daemon
	TypeBus
)

func (t Type) String() string {
	switch t {
	case TypeSource:
		return "source"
	case TypeDocument:
		return "document"
	case TypeBus:
		return "bus"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

func (t *Type) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "source":
		*t = TypeSource
	case "document":
		*t = TypeDocument
	case "bus":
		*t = TypeBus
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Severity represents how an error affects a catalog load
type Severity int

const (
	// SeverityError aborts initialization
	SeverityError Severity = iota
	// SeverityWarning indicates a skipped entry; loading continues
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error tags
const (
	TagUnreadableSource  = "unreadable-source"
	TagMalformedDocument = "malformed-document"
	TagUnsupportedFormat = "unsupported-format"
	TagMissingAttribute  = "missing-attribute"
	TagBusCallFailed     = "bus-call-failed"
	TagNoContext         = "no-context"
)

// Error represents a catalog load or telephony error.
type Error struct {
	Type      Type     `json:"type"`
	Tag       string   `json:"tag"`
	Severity  Severity `json:"severity"`
	Source    string   `json:"source,omitempty"`
	Element   string   `json:"element,omitempty"`
	Attribute string   `json:"attribute,omitempty"`
	Message   string   `json:"message,omitempty"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s %s tag:%s", e.Type, e.Severity, e.Tag)
	if e.Source != "" {
		s += " source:" + e.Source
	}
	if e.Attribute != "" {
		s += " attribute:" + e.Attribute
	}
	if e.Element != "" {
		s += " element:" + e.Element
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

func newError(t Type, tag string, opts []Option) *Error {
	e := &Error{Type: t, Tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func UnreadableSource(path string, opts ...Option) *Error {
	return newError(TypeSource, TagUnreadableSource, append([]Option{WithSource(path)}, opts...))
}

func MalformedDocument(opts ...Option) *Error {
	return newError(TypeDocument, TagMalformedDocument, opts)
}

func UnsupportedFormat(format string, opts ...Option) *Error {
	e := newError(TypeDocument, TagUnsupportedFormat, opts)
	e.Attribute = "format"
	if e.Message == "" {
		e.Message = fmt.Sprintf("provider database format %q not supported", format)
	}
	return e
}

func MissingAttribute(attributeName, elementName string, opts ...Option) *Error {
	e := &Error{
		Type:      TypeDocument,
		Tag:       TagMissingAttribute,
		Attribute: attributeName,
		Element:   elementName,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func BusCallFailed(method string, opts ...Option) *Error {
	e := newError(TypeBus, TagBusCallFailed, opts)
	e.Element = method
	return e
}

func NoContext(modem string, opts ...Option) *Error {
	e := newError(TypeBus, TagNoContext, opts)
	e.Source = modem
	return e
}

// HasTag reports whether the cause of err is an *Error carrying tag
func HasTag(err error, tag string) bool {
	var e *Error
	if errors.As(pkgerrors.Cause(err), &e) {
		return e.Tag == tag
	}
	return false
}

// IsWarning reports whether err is a warning-severity *Error
func IsWarning(err error) bool {
	var e *Error
	if errors.As(pkgerrors.Cause(err), &e) {
		return e.Severity == SeverityWarning
	}
	return false
}
