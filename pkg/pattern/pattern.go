package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned when a pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid pattern")

// Matcher is a compiled, case-insensitive glob matcher.
type Matcher struct {
	g glob.Glob
}

// Compile compiles a glob pattern into a [Matcher].
//
// Supported syntax: `*` matches any run of characters (including empty), `?`
// matches exactly one character, and `[...]` matches one character from a
// set or range. The pattern is anchored at both ends, so the whole subject
// must match. Matching is case-insensitive.
func Compile(p string) (*Matcher, error) {
	g, err := glob.Compile(strings.ToLower(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p, err)
	}

	return &Matcher{g: g}, nil
}

// MustCompile compiles a pattern and panics if it is invalid.
func MustCompile(p string) *Matcher {
	m, err := Compile(p)
	if err != nil {
		panic(err)
	}

	return m
}

// Match reports whether the subject matches the compiled pattern.
func (m *Matcher) Match(subject string) bool {
	return m.g.Match(strings.ToLower(subject))
}

// Match reports whether subject matches the glob pattern p.
// Invalid patterns never match.
func Match(p, subject string) bool {
	m, err := Compile(p)
	if err != nil {
		return false
	}

	return m.Match(subject)
}

// Validate reports whether p compiles into a well-formed matcher.
func Validate(p string) bool {
	_, err := Compile(p)

	return err == nil
}
