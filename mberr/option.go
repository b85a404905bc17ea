package mberr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option     { return func(e *Error) { e.Message = msg } }
func WithSource(path string) Option     { return func(e *Error) { e.Source = path } }
func WithSeverity(s Severity) Option    { return func(e *Error) { e.Severity = s } }
func WithElement(element string) Option { return func(e *Error) { e.Element = element } }
