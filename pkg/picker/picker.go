// Package picker presents the interactive profile selection form.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/macropower/choosr/pkg/chooser"
	"github.com/macropower/choosr/pkg/pattern"
	"github.com/macropower/choosr/pkg/profile"
)

var (
	// ErrNotInteractive is returned when stdin is not a terminal, so no form
	// can be shown.
	ErrNotInteractive = errors.New("not running interactively")

	// ErrNoProfiles is returned when the catalog is empty and there is
	// nothing to select from.
	ErrNoProfiles = errors.New("no profiles configured")
)

// Picker prompts for a profile with a terminal form. It implements
// [chooser.Prompter].
type Picker struct {
	theme *huh.Theme
}

// Opt is a functional option for configuring a [Picker].
type Opt func(*Picker)

// New creates a terminal picker.
func New(opts ...Opt) *Picker {
	p := &Picker{
		theme: FormTheme(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithTheme overrides the form theme.
func WithTheme(t *huh.Theme) Opt {
	return func(p *Picker) {
		p.theme = t
	}
}

// RequestResolution displays the selection form and returns the user's
// decision. Aborting the form returns [chooser.ErrCanceled].
func (p *Picker) RequestResolution(ctx context.Context, req *chooser.Request) (*chooser.Decision, error) {
	if len(req.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	// Check if we're running interactively.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotInteractive
	}

	keys := profile.SortedKeys(req.Profiles)

	options := make([]huh.Option[string], len(keys))
	for i, key := range keys {
		options[i] = huh.NewOption(req.Profiles[key].String(), key)
	}

	var (
		profileKey   = keys[0]
		matchPattern = req.SuggestedPattern
		remember     = req.SuggestedPattern != ""
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Open with which profile?").
				Description(req.URL),

			huh.NewSelect[string]().
				Title("Profile").
				Options(options...).
				Value(&profileKey),

			huh.NewConfirm().
				Title("Remember this choice?").
				Value(&remember),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Pattern").
				Description("Matched against the host and the registrable domain.").
				Validate(validatePattern).
				Value(&matchPattern),
		).WithHideFunc(func() bool {
			return !remember || req.Profiles[profileKey].IsPrivate
		}),
	).
		WithShowHelp(false).
		WithTheme(p.theme)

	err := form.RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, chooser.ErrCanceled
		}

		return nil, fmt.Errorf("run selection form: %w", err)
	}

	// Private profiles leave no trace, including in the rule list.
	if req.Profiles[profileKey].IsPrivate {
		remember = false
	}

	return &chooser.Decision{
		ProfileKey: profileKey,
		Pattern:    matchPattern,
		Remember:   remember,
	}, nil
}

func validatePattern(s string) error {
	if !pattern.Validate(s) {
		return fmt.Errorf("invalid pattern %q", s)
	}

	return nil
}
