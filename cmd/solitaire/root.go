package main

import (
	"github.com/calvinwijaya/solitaire-be/internal/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "solitaire",
	Short: "Klondike solitaire table server and tools",
	Long: `Solitaire runs Klondike solitaire tables over HTTP and WebSocket for a browser
renderer, and can deal and print tables in the terminal.

Configuration is read from $XDG_CONFIG_HOME/solitaire/config.toml (or --config),
then a .env file, then SOLITAIRE_* environment variables, then flags.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/solitaire/config.toml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file to load")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text or json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dealCmd)
	rootCmd.AddCommand(layoutCmd)
}

// loadConfig loads every configuration layer and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	cfg, err := config.Load(config.Options{ConfigPath: path, EnvFile: envFile})
	if err != nil {
		return nil, err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}
	if flags.Lookup("frontend") != nil && flags.Changed("frontend") {
		cfg.FrontendURL, _ = flags.GetString("frontend")
	}
	if flags.Lookup("validate") != nil && flags.Changed("validate") {
		cfg.Validate, _ = flags.GetBool("validate")
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}
