package config

import (
	_ "embed"

	"github.com/macropower/choosr/pkg/yaml"
)

//go:embed config.v1beta1.json
var schemaJSON []byte

// DefaultValidator validates raw config documents against the generated
// JSON schema.
var DefaultValidator = yaml.MustNewValidator("/config.v1beta1.json", schemaJSON)
