package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/choosr/pkg/browser"
	"github.com/macropower/choosr/pkg/chooser"
	"github.com/macropower/choosr/pkg/config"
	"github.com/macropower/choosr/pkg/log"
	"github.com/macropower/choosr/pkg/picker"
)

const cmdExamples = `  # Open a URL with the profile resolved from your rules:
  choosr https://mail.example.com

  # Always show the picker, even when a rule matches:
  choosr --pick https://mail.example.com

  # Resolve without persisting the decision:
  choosr --no-save https://mail.example.com

  # Discover browsers and write a starter config:
  choosr init`

type RunArgs struct {
	*RootArgs

	ConfigPath string
	URL        string
	Pick       bool
	NoSave     bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the choosr configuration file")
	cmd.Flags().BoolVar(&ra.Pick, "pick", false, "Always show the profile picker, even when a rule matches")
	cmd.Flags().BoolVar(&ra.NoSave, "no-save", false, "Never persist decisions made in the picker")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run [url]",
		Short:             "Default command, opens the URL with the resolved profile",
		Example:           cmdExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.URL = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	configPath := resolveConfigPath(ra.ConfigPath)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	for _, warning := range cfg.Lint() {
		slog.Warn(warning, slog.String("path", configPath))
	}

	browsers, err := browser.All()
	if err != nil {
		return fmt.Errorf("detect browsers: %w", err)
	}

	c := chooser.New(cfg,
		chooser.WithConfigPath(configPath),
		chooser.WithPrompter(picker.New()),
		chooser.WithLauncher(browser.NewLauncher(browsers)),
		chooser.WithForcePick(ra.Pick),
		chooser.WithNoSave(ra.NoSave),
	)

	// The picker owns the terminal while it runs; buffer logs and flush them
	// once it is gone.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		logBuf := log.NewBuffer(100)

		logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))
		defer flushLogs(cmd.ErrOrStderr(), logBuf)
	}

	return c.Run(cmd.Context(), ra.URL)
}

func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return config.GetPath()
}

func loadConfig(path string) (*config.Config, error) {
	cl, err := config.NewLoaderFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	return cfg, nil
}

func flushLogs(w io.Writer, buf *log.Buffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
		slog.Bool("truncated", buf.IsFull()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}
