package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type SyncArgs struct {
	*RootArgs

	ConfigPath string
}

func NewSyncCmd(rootArgs *RootArgs) *cobra.Command {
	sa := &SyncArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the profile catalog from installed browsers, keeping rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, sa)
		},
	}

	cmd.Flags().StringVar(&sa.ConfigPath, "config", "", "Path to the choosr configuration file")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	bindEnvVars(cmd)

	return cmd
}

func runSync(cmd *cobra.Command, sa *SyncArgs) error {
	configPath := resolveConfigPath(sa.ConfigPath)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	catalog, err := discoverCatalog()
	if err != nil {
		return err
	}

	cfg.ReplaceProfiles(catalog)

	err = cfg.Write(configPath)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	mustN(fmt.Fprintf(cmd.OutOrStdout(), "Synced %d profiles to %s\n", len(catalog), configPath))

	// Rules referencing profiles that disappeared stay in place; they just
	// never resolve until the profile comes back or the rule is edited.
	for _, warning := range cfg.Lint() {
		mustN(fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning))
	}

	return nil
}
