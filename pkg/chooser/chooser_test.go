package chooser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/choosr/pkg/chooser"
	"github.com/macropower/choosr/pkg/config"
	"github.com/macropower/choosr/pkg/pattern"
	"github.com/macropower/choosr/pkg/profile"
	"github.com/macropower/choosr/pkg/rule"
)

type stubPrompter struct {
	decision *chooser.Decision
	err      error
	req      *chooser.Request
	called   bool
}

func (s *stubPrompter) RequestResolution(_ context.Context, req *chooser.Request) (*chooser.Decision, error) {
	s.called = true
	s.req = req

	if s.err != nil {
		return nil, s.err
	}

	return s.decision, nil
}

type stubLauncher struct {
	launched bool
	profile  *profile.Profile
	url      string
	err      error
}

func (s *stubLauncher) Launch(_ context.Context, p *profile.Profile, url string) error {
	s.launched = true
	s.profile = p
	s.url = url

	return s.err
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Profiles = map[string]*profile.Profile{
		"work":     profile.New(profile.KindChrome, "Profile 1", "Work"),
		"personal": profile.New(profile.KindChrome, "Default", "Personal"),
	}

	return cfg
}

func TestChooserResolve(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rules       []*rule.Rule
		url         string
		wantAuto    bool
		wantKey     string
		wantPattern string
		wantSuggest string
	}{
		"first match wins over later more specific rule": {
			rules: []*rule.Rule{
				rule.MustNew("work", "*.example.com"),
				rule.MustNew("personal", "mail.example.com"),
			},
			url:         "https://mail.example.com/inbox",
			wantAuto:    true,
			wantKey:     "work",
			wantPattern: "*.example.com",
		},
		"host matches before domain": {
			rules: []*rule.Rule{
				rule.MustNew("personal", "mail.example.com"),
				rule.MustNew("work", "example.com"),
			},
			url:         "https://mail.example.com",
			wantAuto:    true,
			wantKey:     "personal",
			wantPattern: "mail.example.com",
		},
		"domain pattern matches subdomain host": {
			rules: []*rule.Rule{
				rule.MustNew("work", "example.com"),
			},
			url:         "https://deep.sub.example.com/path",
			wantAuto:    true,
			wantKey:     "work",
			wantPattern: "example.com",
		},
		"no rule matches": {
			rules: []*rule.Rule{
				rule.MustNew("work", "example.com"),
			},
			url:         "https://other.org",
			wantSuggest: "other.org",
		},
		"empty rule list": {
			url:         "https://example.com",
			wantSuggest: "example.com",
		},
		"dangling profile reference falls back to input": {
			rules: []*rule.Rule{
				rule.MustNew("ghost", "example.com"),
			},
			url:         "https://example.com",
			wantSuggest: "example.com",
		},
		"invalid pattern never matches": {
			rules: []*rule.Rule{
				{Match: "[bad", Profile: "work"},
				rule.MustNew("personal", "example.com"),
			},
			url:         "https://example.com",
			wantAuto:    true,
			wantKey:     "personal",
			wantPattern: "example.com",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := newTestConfig(t)
			cfg.Rules = tc.rules

			c := chooser.New(cfg)
			outcome := c.Resolve(tc.url)

			if tc.wantAuto {
				auto, ok := outcome.(chooser.Auto)
				require.True(t, ok, "expected Auto, got %T", outcome)
				assert.Equal(t, tc.wantKey, auto.ProfileKey)
				assert.Equal(t, tc.wantPattern, auto.MatchedPattern)
				assert.Same(t, cfg.Profiles[tc.wantKey], auto.Profile)

				return
			}

			ni, ok := outcome.(chooser.NeedsInput)
			require.True(t, ok, "expected NeedsInput, got %T", outcome)
			assert.Equal(t, tc.url, ni.Request.URL)
			assert.Equal(t, tc.wantSuggest, ni.Request.SuggestedPattern)
		})
	}
}

func TestChooserResolveInvalidURL(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	c := chooser.New(cfg)

	outcome := c.Resolve("::: not a url :::")

	ni, ok := outcome.(chooser.NeedsInput)
	require.True(t, ok, "expected NeedsInput, got %T", outcome)
	assert.Equal(t, "::: not a url :::", ni.Request.URL)
	assert.Empty(t, ni.Request.SuggestedPattern)
}

func TestChooserCommit(t *testing.T) {
	t.Parallel()

	t.Run("remember persists rule", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		cfg := newTestConfig(t)
		c := chooser.New(cfg, chooser.WithConfigPath(path))

		p, err := c.Commit(&chooser.Decision{
			ProfileKey: "work",
			Pattern:    "example.com",
			Remember:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Work", p.Name)

		loaded, err := config.Load(path)
		require.NoError(t, err)
		require.Len(t, loaded.Rules, 1)
		assert.Equal(t, "example.com", loaded.Rules[0].Match)
		assert.Equal(t, "work", loaded.Rules[0].Profile)
	})

	t.Run("remember false leaves file untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		cfg := newTestConfig(t)
		require.NoError(t, cfg.Write(path))

		before, err := os.ReadFile(path)
		require.NoError(t, err)

		c := chooser.New(cfg, chooser.WithConfigPath(path))

		p, err := c.Commit(&chooser.Decision{
			ProfileKey: "personal",
			Pattern:    "example.com",
			Remember:   false,
		})
		require.NoError(t, err)
		assert.Equal(t, "Personal", p.Name)
		assert.Empty(t, cfg.Rules)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("invalid pattern is never persisted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		cfg := newTestConfig(t)
		c := chooser.New(cfg, chooser.WithConfigPath(path))

		_, err := c.Commit(&chooser.Decision{
			ProfileKey: "work",
			Pattern:    "[bad",
			Remember:   true,
		})
		require.ErrorIs(t, err, pattern.ErrInvalidPattern)
		assert.Empty(t, cfg.Rules)
		assert.NoFileExists(t, path)
	})

	t.Run("unknown profile key", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig(t)
		c := chooser.New(cfg, chooser.WithConfigPath(filepath.Join(t.TempDir(), "choosr.yaml")))

		_, err := c.Commit(&chooser.Decision{
			ProfileKey: "nope",
			Pattern:    "example.com",
			Remember:   true,
		})
		require.ErrorIs(t, err, chooser.ErrUnknownProfile)
	})

	t.Run("no-save skips persistence", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		cfg := newTestConfig(t)
		c := chooser.New(cfg,
			chooser.WithConfigPath(path),
			chooser.WithNoSave(true),
		)

		p, err := c.Commit(&chooser.Decision{
			ProfileKey: "work",
			Pattern:    "example.com",
			Remember:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Work", p.Name)
		assert.Empty(t, cfg.Rules)
		assert.NoFileExists(t, path)
	})

	t.Run("persistence failure still returns profile", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig(t)
		// Writing over a directory fails.
		c := chooser.New(cfg, chooser.WithConfigPath(t.TempDir()))

		p, err := c.Commit(&chooser.Decision{
			ProfileKey: "work",
			Pattern:    "example.com",
			Remember:   true,
		})
		require.ErrorIs(t, err, config.ErrPersistence)
		assert.Equal(t, "Work", p.Name)
	})
}

func TestChooserRun(t *testing.T) {
	t.Parallel()

	t.Run("auto match launches without prompting", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig(t)
		cfg.Rules = []*rule.Rule{rule.MustNew("work", "example.com")}

		prompter := &stubPrompter{}
		launcher := &stubLauncher{}
		c := chooser.New(cfg,
			chooser.WithPrompter(prompter),
			chooser.WithLauncher(launcher),
			chooser.WithConfigPath(filepath.Join(t.TempDir(), "choosr.yaml")),
		)

		err := c.Run(t.Context(), "https://example.com")
		require.NoError(t, err)
		assert.False(t, prompter.called)
		assert.True(t, launcher.launched)
		assert.Equal(t, "Work", launcher.profile.Name)
		assert.Equal(t, "https://example.com", launcher.url)
	})

	t.Run("no match prompts and commits", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		cfg := newTestConfig(t)

		prompter := &stubPrompter{decision: &chooser.Decision{
			ProfileKey: "personal",
			Pattern:    "example.com",
			Remember:   true,
		}}
		launcher := &stubLauncher{}
		c := chooser.New(cfg,
			chooser.WithPrompter(prompter),
			chooser.WithLauncher(launcher),
			chooser.WithConfigPath(path),
		)

		err := c.Run(t.Context(), "https://mail.example.com")
		require.NoError(t, err)
		require.NotNil(t, prompter.req)
		assert.Equal(t, "example.com", prompter.req.SuggestedPattern)
		assert.Equal(t, "mail.example.com", prompter.req.Host)
		assert.True(t, launcher.launched)
		assert.Equal(t, "Personal", launcher.profile.Name)
		assert.FileExists(t, path)
	})

	t.Run("cancel launches nothing and leaves file byte identical", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		cfg := newTestConfig(t)
		require.NoError(t, cfg.Write(path))

		before, err := os.ReadFile(path)
		require.NoError(t, err)

		prompter := &stubPrompter{err: chooser.ErrCanceled}
		launcher := &stubLauncher{}
		c := chooser.New(cfg,
			chooser.WithPrompter(prompter),
			chooser.WithLauncher(launcher),
			chooser.WithConfigPath(path),
		)

		err = c.Run(t.Context(), "https://example.com")
		require.NoError(t, err)
		assert.False(t, launcher.launched)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("force pick prompts despite match", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig(t)
		cfg.Rules = []*rule.Rule{rule.MustNew("work", "example.com")}

		prompter := &stubPrompter{decision: &chooser.Decision{
			ProfileKey: "personal",
			Remember:   false,
		}}
		launcher := &stubLauncher{}
		c := chooser.New(cfg,
			chooser.WithPrompter(prompter),
			chooser.WithLauncher(launcher),
			chooser.WithConfigPath(filepath.Join(t.TempDir(), "choosr.yaml")),
			chooser.WithForcePick(true),
		)

		err := c.Run(t.Context(), "https://example.com")
		require.NoError(t, err)
		assert.True(t, prompter.called)
		require.NotNil(t, prompter.req)
		assert.Equal(t, "example.com", prompter.req.SuggestedPattern)
		assert.True(t, launcher.launched)
		assert.Equal(t, "Personal", launcher.profile.Name)
	})

	t.Run("launch error is surfaced", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig(t)
		cfg.Rules = []*rule.Rule{rule.MustNew("work", "example.com")}

		launcher := &stubLauncher{err: assert.AnError}
		c := chooser.New(cfg,
			chooser.WithLauncher(launcher),
			chooser.WithConfigPath(filepath.Join(t.TempDir(), "choosr.yaml")),
		)

		err := c.Run(t.Context(), "https://example.com")
		require.ErrorIs(t, err, assert.AnError)
	})
}
