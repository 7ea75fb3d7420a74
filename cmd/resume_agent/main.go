// Package main provides the resume_agent CLI: résumé parsing, profile
// exports, local history and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-profiler/internal/config"
	"github.com/jonathan/resume-profiler/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile string

	// Filled by loadSettings before any subcommand runs.
	settings *config.Config
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Résumé parser and profile exporter",
	Long: "resume_agent turns résumé documents into a structured career profile with a health score, " +
		"and renders CV Markdown, a GitHub README, a professional-network payload and a LaTeX CV.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a YAML or JSON config file")
	flags.Bool("json", false, "Emit logs as JSON")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("section-headers", "", "Path to a section header synonym table (JSON)")
	flags.String("skills", "", "Path to a skill taxonomy table (JSON)")
	flags.String("sqlite", "", "Path to the local SQLite history database")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings reads the config file, environment and flags, then builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	loaded, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	// Zero values written in a config file fall back to the built-in defaults.
	cfg := loaded.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	settings = &cfg
	logger = l
	return nil
}
