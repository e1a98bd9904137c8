package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/choosr/pkg/pattern"
	"github.com/macropower/choosr/pkg/profile"
	"github.com/macropower/choosr/pkg/rule"
	"github.com/macropower/choosr/pkg/yaml"
)

//go:generate go run ../../internal/schemagen/main.go -o config.v1beta1.json

var (
	// ErrCorruptConfig is returned when a config file exists but cannot be
	// parsed. Callers must surface it instead of silently continuing with an
	// empty rule set, which would mask data loss.
	ErrCorruptConfig = errors.New("corrupt config")

	// ErrPersistence is returned when saving the config fails. The in-memory
	// decision still applies for the current invocation.
	ErrPersistence = errors.New("persist config")

	// ErrConfigExists is returned by [Config.WriteNew] when a config file is
	// already present and force is false.
	ErrConfigExists = errors.New("config file already exists")
)

// Config is the full persisted unit: the profile catalog keyed by config key,
// plus the ordered rule list. Rule order is significant — earlier rules take
// priority — and round-trips exactly across load and save.
type Config struct {
	// Profiles maps config keys to browser profiles.
	Profiles map[string]*profile.Profile `json:"browser_profiles,omitempty" jsonschema:"title=Browser Profiles"`
	// Rules is the ordered list of URL rules. First match wins.
	Rules []*rule.Rule `json:"urls,omitempty" jsonschema:"title=URL Rules"`
}

// New creates an empty configuration.
func New() *Config {
	return &Config{
		Profiles: map[string]*profile.Profile{},
	}
}

// Profile looks up a profile by config key.
func (c *Config) Profile(key string) (*profile.Profile, bool) {
	p, ok := c.Profiles[key]

	return p, ok
}

// UpsertRule inserts or updates the rule for the given pattern. When a rule
// with the exact same pattern string already exists, its profile key is
// replaced in place, preserving the rule's position (and therefore its
// priority). Otherwise a new rule is appended at the end.
func (c *Config) UpsertRule(match, profileKey string) {
	for _, r := range c.Rules {
		if r.Match == match {
			r.Profile = profileKey

			return
		}
	}

	c.Rules = append(c.Rules, &rule.Rule{Match: match, Profile: profileKey})
}

// ReplaceProfiles swaps the profile catalog wholesale, e.g. after a browser
// rescan. Rules are left untouched even if some now reference profiles that
// no longer exist; such rules are reported by [Config.Lint] and simply never
// resolve automatically.
func (c *Config) ReplaceProfiles(profiles map[string]*profile.Profile) {
	if profiles == nil {
		profiles = map[string]*profile.Profile{}
	}

	c.Profiles = profiles
}

// Lint scans the configuration for dangling profile references and malformed
// patterns. Warnings are advisory; the configuration stays fully usable.
func (c *Config) Lint() []string {
	var warnings []string

	for i, r := range c.Rules {
		if !pattern.Validate(r.Match) {
			warnings = append(warnings,
				fmt.Sprintf("urls[%d]: invalid pattern %q", i, r.Match))
		}

		if _, ok := c.Profiles[r.Profile]; !ok {
			warnings = append(warnings,
				fmt.Sprintf("urls[%d]: rule %q references unknown profile %q", i, r.Match, r.Profile))
		}
	}

	return warnings
}

// MarshalYAML serializes the configuration, preserving rule order.
func (c *Config) MarshalYAML() ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)

	err := enc.Encode(*c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}

// Write atomically replaces the config file at path with the serialized
// configuration. The file is written beside the destination and renamed into
// place so readers never observe a truncated document.
func (c *Config) Write(path string) error {
	b, err := c.MarshalYAML()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, 0o700)
	if err != nil {
		return fmt.Errorf("%w: create directories: %w", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrPersistence, err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(b)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Chmod(tmpName, 0o600)
	}

	if err == nil {
		err = os.Rename(tmpName, path)
	}

	if err != nil {
		if removeErr := os.Remove(tmpName); removeErr != nil {
			slog.Debug("remove temp config file",
				slog.String("path", tmpName),
				slog.Any("error", removeErr),
			)
		}

		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}

// WriteNew writes the configuration to a fresh config file. An existing file
// is an error unless force is set, in which case it is moved aside to a
// timestamped backup first.
func (c *Config) WriteNew(path string, force bool) error {
	configExists := false

	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		switch {
		case err == nil && pathInfo.Mode().IsRegular():
			configExists = true
		case pathInfo.IsDir():
			return fmt.Errorf("%s: path is a directory", path)
		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	if configExists {
		if !force {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}

		backupFile := fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano())
		backupPath := filepath.Join(filepath.Dir(path), backupFile)
		slog.Info("backing up existing config file",
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing config file to backup: %w", err)
		}
	}

	return c.Write(path)
}

// GetPath returns the config file location, following XDG conventions.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "choosr", "choosr.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "choosr", "choosr.yaml")
	}

	tmpConfig := filepath.Join(os.TempDir(), "choosr", "choosr.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmpConfig),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpConfig
}
