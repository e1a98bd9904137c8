package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/choosr/pkg/browser"
	"github.com/macropower/choosr/pkg/config"
	"github.com/macropower/choosr/pkg/profile"
)

type InitArgs struct {
	*RootArgs

	ConfigPath string
	Force      bool
}

func NewInitCmd(rootArgs *RootArgs) *cobra.Command {
	ia := &InitArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Discover browser profiles and write a starter config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, ia)
		},
	}

	cmd.Flags().StringVar(&ia.ConfigPath, "config", "", "Path to the choosr configuration file")
	cmd.Flags().BoolVar(&ia.Force, "force", false, "Replace an existing config file, keeping a backup")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	bindEnvVars(cmd)

	return cmd
}

func runInit(cmd *cobra.Command, ia *InitArgs) error {
	configPath := resolveConfigPath(ia.ConfigPath)

	catalog, err := discoverCatalog()
	if err != nil {
		return err
	}

	cfg := config.New()
	cfg.ReplaceProfiles(catalog)

	err = cfg.WriteNew(configPath, ia.Force)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	mustN(fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d profiles\n", configPath, len(catalog)))

	return nil
}

func discoverCatalog() (map[string]*profile.Profile, error) {
	browsers, err := browser.All()
	if err != nil {
		return nil, fmt.Errorf("detect browsers: %w", err)
	}

	return browser.DiscoverAll(browsers), nil
}
