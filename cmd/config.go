package cmd

import (
	"fmt"
	"os"

	"cliptrack/pkg/config"
	"cliptrack/pkg/errors"
	"cliptrack/pkg/host"

	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cliptrack configuration",
	Long:  `Show, create and locate the cliptrack configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the configuration after applying the config file, CLIPTRACK_* environment variables and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := NewOutputWriter(outputFormat)
		out.SetWriter(cmd.OutOrStdout())
		if out.IsStructured() {
			return out.Write(cfg)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Current Configuration:")
		fmt.Fprintln(w, "======================")
		fmt.Fprintf(w, "Backend: %s\n", cfg.Clipboard.Backend)
		fmt.Fprintf(w, "Write mode: %s\n", cfg.Clipboard.WriteMode)
		fmt.Fprintf(w, "Preview limit: %d characters\n", cfg.Clipboard.PreviewLimit)
		fmt.Fprintf(w, "Watch interval: %ds\n", cfg.Watch.IntervalSeconds)
		fmt.Fprintf(w, "Host state dir: %s\n", cfg.Host.StateDir)
		fmt.Fprintf(w, "Host running: %t\n", host.NewFileChannel(cfg.Host.StateDir).Running())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return errors.NewWithSuggestion(errors.ExitCodeConfig,
				fmt.Sprintf("config file already exists: %s", path),
				"Use --force to overwrite it.")
		}

		if IsDryRun() {
			PrintDryRunAction(cmd.OutOrStdout(), "write the default config", map[string]string{"path": path})
			return nil
		}

		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}
