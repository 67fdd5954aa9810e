package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/morsetree/internal/logging"
	"github.com/spf13/cobra"
)

// app holds state shared by subcommands, filled in by the root pre-run.
var app struct {
	cfg   appConfig
	log   *slog.Logger
	debug bool
}

var rootCmd = &cobra.Command{
	Use:   "morsetree",
	Short: "Grow branching trees from Morse code",
	Long: `morsetree turns typed text into Morse symbols and grows a branching tree
from them, one symbol per step. Branches that would come too close to
existing ones are refused.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		app.log = logging.New(level)
		app.debug = level <= slog.LevelDebug

		path, _ := cmd.Flags().GetString("config")
		cfg, err := loadAppConfig(path)
		if err != nil {
			return err
		}
		app.cfg = cfg
		app.log.Debug("config loaded", "path", path, "growth", fmt.Sprintf("%+v", cfg.Growth))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML file with growth, root, window and audio settings")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}
