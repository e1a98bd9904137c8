package chooser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macropower/choosr/pkg/config"
	"github.com/macropower/choosr/pkg/pattern"
	"github.com/macropower/choosr/pkg/profile"
	"github.com/macropower/choosr/pkg/urlx"
)

var (
	// ErrCanceled is returned by a [Prompter] when the user dismisses the
	// selection without choosing. The chooser then neither launches nor
	// persists anything.
	ErrCanceled = errors.New("selection canceled")

	// ErrUnknownProfile is returned when a decision references a config key
	// that is not in the catalog.
	ErrUnknownProfile = errors.New("unknown profile")
)

// Prompter is the interactive presentation collaborator. Implementations
// must eventually return a decision or an error wrapping [ErrCanceled];
// timeouts are the prompter's own policy and surface as cancellation.
type Prompter interface {
	RequestResolution(ctx context.Context, req *Request) (*Decision, error)
}

// Launcher opens a URL with a specific profile.
type Launcher interface {
	Launch(ctx context.Context, p *profile.Profile, url string) error
}

// Chooser resolves URLs to browser profiles using the configured rules, and
// commits interactive decisions back to the configuration.
type Chooser struct {
	cfg        *config.Config
	prompter   Prompter
	launcher   Launcher
	configPath string
	forcePick  bool
	noSave     bool
}

// Opt is a functional option for configuring a [Chooser].
type Opt func(*Chooser)

// New creates a [Chooser] over the given configuration. The configuration is
// owned exclusively by the chooser for the duration of one invocation.
func New(cfg *config.Config, opts ...Opt) *Chooser {
	c := &Chooser{
		cfg:        cfg,
		configPath: config.GetPath(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithPrompter sets the interactive presentation collaborator.
func WithPrompter(p Prompter) Opt {
	return func(c *Chooser) {
		c.prompter = p
	}
}

// WithLauncher sets the browser launch collaborator.
func WithLauncher(l Launcher) Opt {
	return func(c *Chooser) {
		c.launcher = l
	}
}

// WithConfigPath sets the file that commits are persisted to.
func WithConfigPath(path string) Opt {
	return func(c *Chooser) {
		c.configPath = path
	}
}

// WithForcePick always asks, even when a rule matches.
func WithForcePick(force bool) Opt {
	return func(c *Chooser) {
		c.forcePick = force
	}
}

// WithNoSave disables persistence; decisions apply to the current URL only.
func WithNoSave(noSave bool) Opt {
	return func(c *Chooser) {
		c.noSave = noSave
	}
}

// Resolve classifies the URL's domain and finds the best matching rule.
// Rules are scanned in stored order and the first match wins; there is no
// most-specific-pattern heuristic. Within a single rule the host is tried
// before the domain. Resolution failures always degrade to [NeedsInput],
// never to an error: a URL that cannot be parsed still lets the user pick a
// profile manually.
func (c *Chooser) Resolve(rawURL string) Outcome {
	parts, err := urlx.Extract(rawURL)
	if err != nil {
		slog.Debug("could not extract domain",
			slog.String("url", rawURL),
			slog.Any("error", err),
		)

		return NeedsInput{Request: &Request{
			URL:      rawURL,
			Profiles: c.cfg.Profiles,
		}}
	}

	req := &Request{
		URL:              rawURL,
		Host:             parts.Host,
		Domain:           parts.Domain,
		SuggestedPattern: parts.Domain,
		Profiles:         c.cfg.Profiles,
	}

	for _, r := range c.cfg.Rules {
		if !r.Matches(parts.Host, parts.Domain) {
			continue
		}

		p, ok := c.cfg.Profile(r.Profile)
		if !ok {
			slog.Warn("rule matched but references unknown profile",
				slog.String("pattern", r.Match),
				slog.String("profile", r.Profile),
			)

			return NeedsInput{Request: req}
		}

		slog.Debug("rule matched",
			slog.String("pattern", r.Match),
			slog.String("profile", r.Profile),
		)

		return Auto{
			Profile:        p,
			ProfileKey:     r.Profile,
			MatchedPattern: r.Match,
		}
	}

	return NeedsInput{Request: req}
}

// Commit applies an interactive decision. When the decision should be
// remembered, the pattern is validated, upserted into the rule list, and the
// configuration is saved. A save failure is surfaced as
// [config.ErrPersistence] but leaves the in-memory upsert intact, so the
// running choice is still honored. The chosen profile is returned in every
// non-error case.
func (c *Chooser) Commit(d *Decision) (*profile.Profile, error) {
	p, ok := c.cfg.Profile(d.ProfileKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, d.ProfileKey)
	}

	if !d.Remember || c.noSave {
		return p, nil
	}

	if !pattern.Validate(d.Pattern) {
		return nil, fmt.Errorf("%w: %q", pattern.ErrInvalidPattern, d.Pattern)
	}

	c.cfg.UpsertRule(d.Pattern, d.ProfileKey)

	err := c.cfg.Write(c.configPath)
	if err != nil {
		return p, err
	}

	slog.Info("saved rule",
		slog.String("pattern", d.Pattern),
		slog.String("profile", d.ProfileKey),
	)

	return p, nil
}

// Run resolves the URL, asks the prompter when needed, commits the decision,
// and launches the chosen profile. Cancellation terminates the invocation
// without error, launching and persisting nothing.
func (c *Chooser) Run(ctx context.Context, rawURL string) error {
	var (
		chosen         *profile.Profile
		matchedPattern string
	)

	outcome := c.Resolve(rawURL)

	switch o := outcome.(type) {
	case Auto:
		if !c.forcePick {
			chosen = o.Profile
			matchedPattern = o.MatchedPattern

			break
		}

		// Forced pick keeps the match as the suggestion.
		req := &Request{
			URL:              rawURL,
			SuggestedPattern: o.MatchedPattern,
			Profiles:         c.cfg.Profiles,
		}
		if parts, err := urlx.Extract(rawURL); err == nil {
			req.Host = parts.Host
			req.Domain = parts.Domain
		}

		p, err := c.ask(ctx, req)
		if err != nil {
			return err
		}

		chosen = p

	case NeedsInput:
		p, err := c.ask(ctx, o.Request)
		if err != nil {
			return err
		}

		chosen = p
	}

	if chosen == nil {
		return nil // Canceled.
	}

	slog.Info("launching",
		slog.String("url", rawURL),
		slog.String("profile", chosen.Name),
		slog.String("browser", chosen.Browser),
		slog.String("pattern", matchedPattern),
	)

	err := c.launcher.Launch(ctx, chosen, rawURL)
	c.reportLaunchOutcome(err == nil, chosen)

	if err != nil {
		return fmt.Errorf("launch %s: %w", chosen.Browser, err)
	}

	return nil
}

// ask runs the prompter and commits its decision. It returns (nil, nil) on
// cancellation: nothing is launched and nothing is persisted.
func (c *Chooser) ask(ctx context.Context, req *Request) (*profile.Profile, error) {
	decision, err := c.prompter.RequestResolution(ctx, req)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			slog.Info("selection canceled", slog.String("url", req.URL))

			return nil, nil
		}

		return nil, fmt.Errorf("request resolution: %w", err)
	}

	p, err := c.Commit(decision)
	if err != nil {
		if errors.Is(err, config.ErrPersistence) {
			// The in-memory decision still applies; warn and launch anyway.
			slog.Warn("could not save decision", slog.Any("error", err))

			return p, nil
		}

		return nil, err
	}

	return p, nil
}

// reportLaunchOutcome is informational bookkeeping only; it never affects
// resolution or commit logic.
func (c *Chooser) reportLaunchOutcome(success bool, p *profile.Profile) {
	if success {
		slog.Debug("launch succeeded", slog.String("profile", p.Name))

		return
	}

	slog.Error("launch failed",
		slog.String("profile", p.Name),
		slog.String("browser", p.Browser),
	)
}
