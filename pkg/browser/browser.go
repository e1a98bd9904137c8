// Package browser discovers installed browser profiles and launches URLs
// with a specific profile.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/macropower/choosr/pkg/profile"
)

var (
	// ErrUnsupportedPlatform is returned when the current OS has no known
	// browser install layout.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNotInstalled is returned when a launch targets a browser whose
	// executable cannot be found.
	ErrNotInstalled = errors.New("browser not installed")

	// ErrUnknownKind is returned when a profile carries a browser kind tag
	// that no known browser claims.
	ErrUnknownKind = errors.New("unknown browser kind")
)

// Browser is one installed browser: it can enumerate its profiles and open a
// URL with one of them.
type Browser interface {
	// Name returns the kind tag stored in profiles, e.g. "chrome".
	Name() string
	// DisplayName returns the user-facing browser name.
	DisplayName() string
	// IsAvailable reports whether the browser executable exists.
	IsAvailable() bool
	// DiscoverProfiles enumerates the browser's configured profiles. A
	// missing installation yields an empty slice, not an error.
	DiscoverProfiles() ([]*profile.Profile, error)
	// PrivateProfile returns the browser's private-mode pseudo-profile.
	PrivateProfile() *profile.Profile
	// Launch opens the URL with the given profile, detached from the
	// current process.
	Launch(ctx context.Context, p *profile.Profile, url string) error
}

// All returns the browsers known on the current platform, available or not.
func All() ([]Browser, error) {
	paths, err := platformPaths()
	if err != nil {
		return nil, err
	}

	return []Browser{
		NewChrome(
			WithChromeExecutable(paths.chromeExecutable),
			WithChromeConfigDir(paths.chromeConfigDir),
		),
		NewFirefox(
			WithFirefoxExecutable(paths.firefoxExecutable),
			WithFirefoxConfigDir(paths.firefoxConfigDir),
		),
	}, nil
}

// DiscoverAll builds a profile catalog from every available browser,
// including each browser's private pseudo-profile. Catalog keys are profile
// display names; on collision the key is qualified with the browser kind.
func DiscoverAll(browsers []Browser) map[string]*profile.Profile {
	catalog := map[string]*profile.Profile{}

	for _, b := range browsers {
		if !b.IsAvailable() {
			slog.Debug("browser not available", slog.String("browser", b.Name()))

			continue
		}

		ps, err := b.DiscoverProfiles()
		if err != nil {
			slog.Warn("could not discover profiles",
				slog.String("browser", b.Name()),
				slog.Any("error", err),
			)

			continue
		}

		for _, p := range append(ps, b.PrivateProfile()) {
			addToCatalog(catalog, p)
		}
	}

	return catalog
}

func addToCatalog(catalog map[string]*profile.Profile, p *profile.Profile) {
	key := p.Name
	if _, taken := catalog[key]; taken {
		key = fmt.Sprintf("%s (%s)", p.Name, p.Browser)
	}
	if _, taken := catalog[key]; taken {
		slog.Warn("dropping duplicate profile", slog.String("key", key))

		return
	}

	catalog[key] = p
}

// Launcher dispatches launches to the browser matching each profile's kind
// tag. It implements the chooser's launch collaborator.
type Launcher struct {
	byKind map[string]Browser
}

// NewLauncher creates a [Launcher] over the given browsers.
func NewLauncher(browsers []Browser) *Launcher {
	byKind := make(map[string]Browser, len(browsers))
	for _, b := range browsers {
		byKind[b.Name()] = b
	}

	return &Launcher{byKind: byKind}
}

// Launch opens the URL with the profile's browser.
func (l *Launcher) Launch(ctx context.Context, p *profile.Profile, url string) error {
	b, ok := l.byKind[p.Browser]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Browser)
	}

	return b.Launch(ctx, p, url)
}

// startDetached launches the command and releases it, so the browser
// outlives this process.
func startDetached(executable string, args []string) error {
	if !isExecutable(executable) {
		return fmt.Errorf("%w: %s", ErrNotInstalled, executable)
	}

	slog.Debug("launch command",
		slog.String("executable", executable),
		slog.Any("args", args),
	)

	cmd := exec.Command(executable, args...)

	err := cmd.Start()
	if err != nil {
		return fmt.Errorf("start %s: %w", executable, err)
	}

	err = cmd.Process.Release()
	if err != nil {
		return fmt.Errorf("release %s: %w", executable, err)
	}

	return nil
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}

	return fi.Mode().Perm()&0o111 != 0
}
