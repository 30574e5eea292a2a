package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/medilingua/internal/config"
	"github.com/diogo/medilingua/internal/render"
)

// newConfigCmd creates the config command
func newConfigCmd(opts *globalOptions) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after applying the config file, .env and
environment variables (MEDILINGUA_BACKEND_URL, MEDILINGUA_LOG_LEVEL,
MEDILINGUA_THEME, MEDILINGUA_HOME).

Use --init to write the defaults to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			if initFile {
				if err := config.SaveConfig(config.DefaultConfig()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote defaults to %s\n", path)
			}

			cfg, err := loadSettings(opts)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n%s\n", path, data)
			fmt.Fprintf(out, "# themes: %v\n", render.TUIThemeNames())
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the default configuration file")
	return cmd
}
