package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/macropower/choosr/pkg/profile"
)

// Firefox discovers and launches Mozilla Firefox profiles. Profiles are
// declared in the profiles.ini file inside Firefox's config directory.
type Firefox struct {
	executable string
	configDir  string
}

// FirefoxOpt is a functional option for configuring [Firefox].
type FirefoxOpt func(*Firefox)

// NewFirefox creates a Firefox browser handle.
func NewFirefox(opts ...FirefoxOpt) *Firefox {
	f := &Firefox{}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithFirefoxExecutable sets the Firefox executable path.
func WithFirefoxExecutable(path string) FirefoxOpt {
	return func(f *Firefox) {
		f.executable = path
	}
}

// WithFirefoxConfigDir sets the Firefox configuration directory.
func WithFirefoxConfigDir(dir string) FirefoxOpt {
	return func(f *Firefox) {
		f.configDir = dir
	}
}

func (f *Firefox) Name() string {
	return profile.KindFirefox
}

func (f *Firefox) DisplayName() string {
	return "Mozilla Firefox"
}

func (f *Firefox) IsAvailable() bool {
	return isExecutable(f.executable)
}

// DiscoverProfiles reads profiles.ini. Only [Profile*] sections count; the
// Name key is both the native ID (used with -P) and the display name. A
// missing installation yields an empty result.
func (f *Firefox) DiscoverProfiles() ([]*profile.Profile, error) {
	path := filepath.Join(f.configDir, "profiles.ini")

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		slog.Debug("firefox profiles.ini not found", slog.String("dir", f.configDir))

		return nil, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse firefox profiles.ini: %w", err)
	}

	var profiles []*profile.Profile

	for _, section := range cfg.Sections() {
		if !strings.HasPrefix(section.Name(), "Profile") {
			continue
		}

		name := section.Key("Name").String()
		if name == "" {
			slog.Debug("skipping unnamed firefox profile section",
				slog.String("section", section.Name()),
			)

			continue
		}

		profiles = append(profiles, profile.New(profile.KindFirefox, name, name))
	}

	return profiles, nil
}

func (f *Firefox) PrivateProfile() *profile.Profile {
	return profile.New(profile.KindFirefox, "private", "Firefox Private Window", profile.WithPrivate())
}

// Launch opens the URL with the profile, using --private-window for the
// private pseudo-profile and -P otherwise.
func (f *Firefox) Launch(ctx context.Context, p *profile.Profile, url string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("launch firefox: %w", err)
	}

	var args []string
	if p.IsPrivate {
		args = append(args, "--private-window")
	} else {
		args = append(args, "-P", p.ID)
	}
	if url != "" {
		args = append(args, url)
	}

	return startDetached(f.executable, args)
}
