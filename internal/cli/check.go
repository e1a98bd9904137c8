package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/choosr/pkg/config"
)

type CheckArgs struct {
	*RootArgs

	ConfigPath string
}

func NewCheckCmd(rootArgs *RootArgs) *cobra.Command {
	ca := &CheckArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config against its schema and report rule problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, ca)
		},
	}

	cmd.Flags().StringVar(&ca.ConfigPath, "config", "", "Path to the choosr configuration file")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	bindEnvVars(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, ca *CheckArgs) error {
	configPath := resolveConfigPath(ca.ConfigPath)

	cl, err := config.NewLoaderFromFile(configPath,
		config.WithValidator(config.DefaultValidator),
	)
	if err != nil {
		return fmt.Errorf("read config %q: %w", configPath, err)
	}

	err = cl.Validate()
	if err != nil {
		return fmt.Errorf("invalid config %q: %w", configPath, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}

	warnings := cfg.Lint()
	for _, warning := range warnings {
		mustN(fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning))
	}

	mustN(fmt.Fprintf(cmd.OutOrStdout(), "%s: %d profiles, %d rules, %d warnings\n",
		configPath, len(cfg.Profiles), len(cfg.Rules), len(warnings)))

	return nil
}
