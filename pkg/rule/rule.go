package rule

import (
	"fmt"

	"github.com/macropower/choosr/pkg/pattern"
)

// Rule maps a glob pattern to the config key of a profile.
//
// Patterns are matched against the host first and the registrable domain
// second, so a single rule like `mail.example.com` wins over the domain form
// without needing a second entry. Rules are evaluated in stored order;
// the first match wins.
type Rule struct {
	matcher *pattern.Matcher

	// Match is a glob pattern matched against a host or domain.
	Match string `json:"match" jsonschema:"title=Match Pattern"`
	// Profile is the config key of the profile to use when this rule matches.
	Profile string `json:"profile" jsonschema:"title=Profile Key"`
}

// New creates a rule mapping the glob pattern to profileKey.
func New(profileKey, match string) (*Rule, error) {
	r := &Rule{
		Match:   match,
		Profile: profileKey,
	}
	if err := r.Compile(); err != nil {
		return nil, fmt.Errorf("rule %q: %w", match, err)
	}

	return r, nil
}

// MustNew creates a new rule and panics if there's an error.
func MustNew(profileKey, match string) *Rule {
	r, err := New(profileKey, match)
	if err != nil {
		panic(err)
	}

	return r
}

// Compile compiles the rule's pattern. It is idempotent; rules decoded from
// configuration are compiled lazily on first use.
func (r *Rule) Compile() error {
	if r.matcher != nil {
		return nil
	}

	m, err := pattern.Compile(r.Match)
	if err != nil {
		return err
	}

	r.matcher = m

	return nil
}

// Matches reports whether the rule matches the given host or domain.
// The host is tried first; a host-level pattern is strictly more specific
// and takes precedence within a single rule check. Rules with invalid
// patterns never match.
func (r *Rule) Matches(host, domain string) bool {
	if err := r.Compile(); err != nil {
		return false
	}

	if host != "" && r.matcher.Match(host) {
		return true
	}

	return domain != "" && r.matcher.Match(domain)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Match, r.Profile)
}
