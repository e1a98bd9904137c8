package yaml

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// Error represents a YAML error. It includes the original error, and either
// the [*token.Token] where the error occurred or the YAMLPath of the
// offending value.
type Error struct {
	Err   error
	Path  *yaml.Path
	Token *token.Token
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Token != nil {
		var pp printer.Printer

		src := pp.PrintErrorToken(e.Token, false)

		return fmt.Sprintf("[%d:%d] %v:\n%s",
			e.Token.Position.Line, e.Token.Position.Column, e.Err, src)
	}

	if e.Path != nil {
		return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
