// Package yaml wraps [github.com/goccy/go-yaml] with the encoder settings,
// decode error conversion, and JSON-schema validation used for choosr
// configuration files.
package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Encoder encodes values with 2-space indentation and indented sequences.
type Encoder struct {
	e *yaml.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		e: yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true)),
	}
}

func (e *Encoder) Encode(v any) error {
	return e.e.Encode(v) //nolint:wrapcheck // Return the original error.
}

func (e *Encoder) Close() error {
	return e.e.Close() //nolint:wrapcheck // Return the original error.
}

// Decoder decodes YAML, converting goccy errors into [*Error] so callers can
// report the offending token.
type Decoder struct {
	d *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, yaml.AllowDuplicateMapKey()),
	}
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// NewPathBuilder returns a goccy YAMLPath builder.
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}
