package profile

import (
	"fmt"
	"sort"
)

// Browser kind tags. The core never branches on these; they are carried
// through to the discovery and launch collaborators, which map them to
// kind-specific behavior.
const (
	KindChrome  = "chrome"
	KindFirefox = "firefox"
)

// Profile identifies one browser configuration.
type Profile struct {
	// Browser is the browser kind tag, e.g. "chrome" or "firefox".
	Browser string `json:"browser" jsonschema:"title=Browser Kind"`
	// ID is the browser-native identifier used to launch this profile.
	// For Chrome this is the profile directory name, for Firefox the
	// profile name from profiles.ini.
	ID string `json:"profile_id" jsonschema:"title=Profile ID"`
	// Name is the user-facing label.
	Name string `json:"name" jsonschema:"title=Display Name"`
	// Email is informational only.
	Email string `json:"email,omitempty" jsonschema:"title=Email"`
	// IsPrivate marks a private/incognito pseudo-profile with no persistent
	// browser state.
	IsPrivate bool `json:"is_private,omitempty" jsonschema:"title=Private Mode"`
}

// Opt is a functional option for configuring a [Profile].
type Opt func(*Profile)

// New creates a profile for the given browser kind, native ID, and display
// name.
func New(browser, id, name string, opts ...Opt) *Profile {
	p := &Profile{
		Browser: browser,
		ID:      id,
		Name:    name,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithEmail sets the informational email address.
func WithEmail(email string) Opt {
	return func(p *Profile) {
		p.Email = email
	}
}

// WithPrivate marks the profile as a private/incognito pseudo-profile.
func WithPrivate() Opt {
	return func(p *Profile) {
		p.IsPrivate = true
	}
}

func (p *Profile) String() string {
	if p.IsPrivate {
		return fmt.Sprintf("%s (%s, private)", p.Name, p.Browser)
	}

	return fmt.Sprintf("%s (%s)", p.Name, p.Browser)
}

// SortedKeys returns the catalog keys ordered for display: regular profiles
// first, private pseudo-profiles last, each group sorted by display name and
// then by key so the order is deterministic.
func SortedKeys(catalog map[string]*Profile) []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		pi, pj := catalog[keys[i]], catalog[keys[j]]
		if pi.IsPrivate != pj.IsPrivate {
			return !pi.IsPrivate
		}
		if pi.Name != pj.Name {
			return pi.Name < pj.Name
		}

		return keys[i] < keys[j]
	})

	return keys
}
