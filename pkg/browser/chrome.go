package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/macropower/choosr/pkg/profile"
)

// Chrome discovers and launches Google Chrome profiles. Profile metadata
// lives in the "Local State" JSON file inside Chrome's config directory.
type Chrome struct {
	executable string
	configDir  string
}

// ChromeOpt is a functional option for configuring [Chrome].
type ChromeOpt func(*Chrome)

// NewChrome creates a Chrome browser handle.
func NewChrome(opts ...ChromeOpt) *Chrome {
	c := &Chrome{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithChromeExecutable sets the Chrome executable path.
func WithChromeExecutable(path string) ChromeOpt {
	return func(c *Chrome) {
		c.executable = path
	}
}

// WithChromeConfigDir sets the Chrome configuration directory.
func WithChromeConfigDir(dir string) ChromeOpt {
	return func(c *Chrome) {
		c.configDir = dir
	}
}

func (c *Chrome) Name() string {
	return profile.KindChrome
}

func (c *Chrome) DisplayName() string {
	return "Google Chrome"
}

func (c *Chrome) IsAvailable() bool {
	return isExecutable(c.executable)
}

// localState is the subset of Chrome's Local State file that describes
// profiles.
type localState struct {
	Profile struct {
		InfoCache map[string]chromeProfileInfo `json:"info_cache"`
	} `json:"profile"`
}

type chromeProfileInfo struct {
	Name     string `json:"name"`
	UserName string `json:"user_name"`
}

// DiscoverProfiles reads the Local State info cache. Entries whose profile
// directory no longer exists are skipped. A missing installation yields an
// empty result.
func (c *Chrome) DiscoverProfiles() ([]*profile.Profile, error) {
	data, err := os.ReadFile(filepath.Join(c.configDir, "Local State"))
	if os.IsNotExist(err) {
		slog.Debug("chrome local state not found", slog.String("dir", c.configDir))

		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read chrome local state: %w", err)
	}

	var state localState

	err = json.Unmarshal(data, &state)
	if err != nil {
		return nil, fmt.Errorf("parse chrome local state: %w", err)
	}

	var profiles []*profile.Profile

	for dir, info := range state.Profile.InfoCache {
		fi, err := os.Stat(filepath.Join(c.configDir, dir))
		if err != nil || !fi.IsDir() {
			slog.Debug("skipping stale chrome profile entry", slog.String("dir", dir))

			continue
		}

		name := info.Name
		if name == "" {
			name = dir
		}

		var opts []profile.Opt
		if info.UserName != "" {
			opts = append(opts, profile.WithEmail(info.UserName))
		}

		profiles = append(profiles, profile.New(profile.KindChrome, dir, name, opts...))
	}

	return profiles, nil
}

func (c *Chrome) PrivateProfile() *profile.Profile {
	return profile.New(profile.KindChrome, "incognito", "Chrome Incognito", profile.WithPrivate())
}

// Launch opens the URL with the profile, using --incognito for the private
// pseudo-profile and --profile-directory otherwise.
func (c *Chrome) Launch(ctx context.Context, p *profile.Profile, url string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	var args []string
	if p.IsPrivate {
		args = append(args, "--incognito")
	} else {
		args = append(args, "--profile-directory="+p.ID)
	}
	if url != "" {
		args = append(args, url)
	}

	return startDetached(c.executable, args)
}
