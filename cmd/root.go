// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/gitgrade/internal/config"
	"github.com/naka-gawa/gitgrade/internal/gateway"
	"github.com/naka-gawa/gitgrade/internal/usecase"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitgrade",
	Short: "Grades public GitHub repositories against a best-practice rubric.",
	Long: `gitgrade inspects a GitHub repository (description, README, license,
tooling, activity, tests and CI workflows) and produces a 0-100 score with a
per-category breakdown and a roadmap of improvements.

Run it once with 'gitgrade analyze <url>' or expose it over HTTP with 'gitgrade serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file path (default: ~/.config/gitgrade/config.yaml)")
}

// newLogger discards all logs unless verbose is set, in which case it logs to standard error.
func newLogger(verbose bool) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// newAnalyzer loads configuration and wires the GitHub gateway into an Analyzer.
func newAnalyzer(cmd *cobra.Command, logger *log.Logger) (*usecase.Analyzer, *config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:            cfg.GitHub.Token,
		BaseURL:          cfg.GitHub.BaseURL,
		GraphQLURL:       cfg.GitHub.GraphQLURL,
		Timeout:          cfg.GitHub.Timeout,
		MaxRateLimitWait: cfg.GitHub.MaxRateLimitWait,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewAnalyzer(githubGateway, cfg.Rubric, logger), cfg, nil
}
