package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/choosr/pkg/profile"
)

type ProfilesArgs struct {
	*RootArgs

	ConfigPath string
}

func NewProfilesCmd(rootArgs *RootArgs) *cobra.Command {
	pa := &ProfilesArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List configured browser profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfiles(cmd, pa)
		},
	}

	cmd.Flags().StringVar(&pa.ConfigPath, "config", "", "Path to the choosr configuration file")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	bindEnvVars(cmd)

	return cmd
}

func runProfiles(cmd *cobra.Command, pa *ProfilesArgs) error {
	configPath := resolveConfigPath(pa.ConfigPath)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if len(cfg.Profiles) == 0 {
		mustN(fmt.Fprintf(cmd.OutOrStdout(), "No profiles configured, run %q first\n", cmdName+" init"))

		return nil
	}

	for _, key := range profile.SortedKeys(cfg.Profiles) {
		p := cfg.Profiles[key]

		line := fmt.Sprintf("%s\t%s", key, p.String())
		if p.Email != "" {
			line += fmt.Sprintf("\t<%s>", p.Email)
		}

		mustN(fmt.Fprintln(cmd.OutOrStdout(), line))
	}

	return nil
}
