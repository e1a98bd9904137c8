package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/choosr/internal/cli"
	"github.com/macropower/choosr/pkg/config"
	"github.com/macropower/choosr/pkg/profile"
	"github.com/macropower/choosr/pkg/rule"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "choosr.yaml")
	require.NoError(t, cfg.Write(path))

	return path
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		cfg := config.New()
		cfg.Profiles["work"] = profile.New(profile.KindChrome, "Profile 1", "Work")
		cfg.Rules = []*rule.Rule{rule.MustNew("work", "example.com")}
		path := writeTestConfig(t, cfg)

		out, err := executeCmd(t, "check", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "1 profiles, 1 rules, 0 warnings")
	})

	t.Run("dangling rule warns", func(t *testing.T) {
		t.Parallel()

		cfg := config.New()
		cfg.Rules = []*rule.Rule{rule.MustNew("ghost", "example.com")}
		path := writeTestConfig(t, cfg)

		out, err := executeCmd(t, "check", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, `unknown profile "ghost"`)
		assert.Contains(t, out, "1 warnings")
	})

	t.Run("missing config is empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")

		out, err := executeCmd(t, "check", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "0 profiles, 0 rules, 0 warnings")
	})

	t.Run("corrupt config fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")
		writeFile(t, path, "urls: {not: [a, list")

		_, err := executeCmd(t, "check", "--config", path)
		require.Error(t, err)
	})
}

func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "choosr.yaml")

		out, err := executeCmd(t, "init", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Created "+path)
		assert.FileExists(t, path)
	})

	t.Run("refuses to clobber without force", func(t *testing.T) {
		t.Parallel()

		path := writeTestConfig(t, config.New())

		_, err := executeCmd(t, "init", "--config", path)
		require.ErrorIs(t, err, config.ErrConfigExists)
	})

	t.Run("force keeps a backup", func(t *testing.T) {
		t.Parallel()

		path := writeTestConfig(t, config.New())

		_, err := executeCmd(t, "init", "--config", path, "--force")
		require.NoError(t, err)

		backups, err := filepath.Glob(path + ".*.old")
		require.NoError(t, err)
		assert.Len(t, backups, 1)
	})
}

func TestSyncCmd(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.Profiles["stale"] = profile.New(profile.KindChrome, "Profile 9", "Stale")
	cfg.Rules = []*rule.Rule{rule.MustNew("stale", "example.com")}
	path := writeTestConfig(t, cfg)

	out, err := executeCmd(t, "sync", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Synced")

	// The rule survives the catalog swap even when its profile is gone.
	synced, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, synced.Rules, 1)
	assert.Equal(t, "stale", synced.Rules[0].Profile)
}

func TestProfilesCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists configured profiles", func(t *testing.T) {
		t.Parallel()

		cfg := config.New()
		cfg.Profiles["work"] = profile.New(profile.KindChrome, "Profile 1", "Work",
			profile.WithEmail("me@example.com"))
		cfg.Profiles["incognito"] = profile.New(profile.KindChrome, "incognito", "Incognito",
			profile.WithPrivate())
		path := writeTestConfig(t, cfg)

		out, err := executeCmd(t, "profiles", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Work (chrome)")
		assert.Contains(t, out, "<me@example.com>")
		assert.Contains(t, out, "Incognito (chrome, private)")
	})

	t.Run("empty catalog hints at init", func(t *testing.T) {
		t.Parallel()

		path := writeTestConfig(t, config.New())

		out, err := executeCmd(t, "profiles", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "choosr init")
	})
}
