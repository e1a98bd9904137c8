package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates data against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new [Validator] with the provided JSON schema data.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var schema any

	err := json.Unmarshal(schemaData, &schema)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(url, schema)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	jss, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: jss}, nil
}

func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate validates the given data against the schema. Validation failures
// are returned as [*Error] carrying the YAMLPath of the most specific cause.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &Error{
		Err:  validationErr,
		Path: pathFromLocation(mostSpecificLocation(validationErr)),
	}
}

// mostSpecificLocation recursively searches through all causes to find the
// one with the longest InstanceLocation.
func mostSpecificLocation(err *jsonschema.ValidationError) []string {
	longest := err.InstanceLocation

	for _, cause := range err.Causes {
		candidate := mostSpecificLocation(cause)
		if len(candidate) > len(longest) {
			longest = candidate
		}
	}

	return longest
}

func pathFromLocation(location []string) *yaml.Path {
	pb := NewPathBuilder()
	current := pb.Root()

	for _, part := range location {
		idx, err := strconv.ParseUint(part, 10, 32)
		if err == nil {
			current = current.Index(uint(idx))
		} else {
			current = current.Child(part)
		}
	}

	return current.Build()
}
