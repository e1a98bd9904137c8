package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/macropower/choosr/pkg/profile"
	"github.com/macropower/choosr/pkg/yaml"
)

// Validator validates raw configuration data.
type Validator interface {
	Validate(data any) error
}

// Loader reads configuration data and decodes it into a [Config].
type Loader struct {
	validator Validator
	data      []byte
}

// LoaderOpt is a functional option for configuring a [Loader].
type LoaderOpt func(*Loader)

// WithValidator overrides the schema validator used by [Loader.Validate].
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// NewLoaderFromBytes creates a [Loader] over in-memory data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{
		validator: DefaultValidator,
		data:      data,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewLoaderFromFile creates a [Loader] over the file at path. A missing file
// is not an error: it behaves as an empty document, so first runs work
// without any setup.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := readConfig(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate checks the raw data against the config JSON schema, without
// decoding it into a [Config].
func (l *Loader) Validate() error {
	if len(l.data) == 0 {
		return nil
	}

	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyConfig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptConfig, err)
	}

	err = l.validator.Validate(anyConfig)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Load decodes the data into a [Config]. An empty document yields an empty
// configuration; an unparseable one yields [ErrCorruptConfig] wrapping the
// original parse error.
func (l *Loader) Load() (*Config, error) {
	c := New()

	if len(l.data) == 0 {
		return c, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptConfig, err)
	}

	if c.Profiles == nil {
		c.Profiles = map[string]*profile.Profile{}
	}

	return c, nil
}

// Load reads and decodes the config file at path. A missing file yields an
// empty configuration.
func Load(path string) (*Config, error) {
	l, err := NewLoaderFromFile(path)
	if err != nil {
		return nil, err
	}

	return l.Load()
}

func readConfig(path string) ([]byte, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("stat file: %w", err)
	}

	if pathInfo.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}

	if !pathInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}
