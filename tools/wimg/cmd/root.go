package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

var (
	input    string
	output   string
	logLevel string
	envFile  string
)

var rootCmd = &cobra.Command{
	Use:           "wimg",
	Short:         "webimages image processing tool",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configure()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// configure loads the optional env file and installs the library settings.
func configure() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load environment from %s: %w", envFile, err)
		}
	}
	cfg := wicore.LoadConfig()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return wicore.Configure(cfg)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&input, "input", "i", "", "Input path")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load WEBIMAGES_* settings from this file")
}
