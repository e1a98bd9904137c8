package chooser

import (
	"github.com/macropower/choosr/pkg/profile"
)

// Request is passed to the presentation collaborator when a URL cannot be
// resolved automatically.
type Request struct {
	// URL is the original input, preserved for display even when unparseable.
	URL string
	// Host is the full hostname, empty when the URL could not be parsed.
	Host string
	// Domain is the registrable domain, empty when the URL could not be parsed.
	Domain string
	// SuggestedPattern is prefilled in the pattern field: the bare domain by
	// default, biasing saved rules toward the least-specific reasonable scope.
	SuggestedPattern string
	// Profiles is the candidate catalog, keyed by config key.
	Profiles map[string]*profile.Profile
}

// Decision is the presentation collaborator's answer to a [Request].
type Decision struct {
	// ProfileKey is the config key of the chosen profile.
	ProfileKey string
	// Pattern is the final pattern string, possibly edited by the user.
	Pattern string
	// Remember persists the choice as a rule when true.
	Remember bool
}

// Outcome is the result of resolving a URL: either [Auto] or [NeedsInput].
type Outcome interface {
	outcome()
}

// Auto means a rule matched and its profile exists in the catalog.
type Auto struct {
	// Profile is the resolved profile.
	Profile *profile.Profile
	// ProfileKey is the config key of the resolved profile.
	ProfileKey string
	// MatchedPattern is the pattern of the winning rule.
	MatchedPattern string
}

// NeedsInput means no rule matched, the matched rule's profile is dangling,
// or the URL could not be parsed. The user picks manually.
type NeedsInput struct {
	Request *Request
}

func (Auto) outcome()       {}
func (NeedsInput) outcome() {}
