package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/naka-gawa/gitgrade/internal/output"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <repository-url>",
	Short: "Analyzes a GitHub repository and prints the report",
	Long: `Analyzes a GitHub repository and prints the score, category breakdown,
details and roadmap. Output is JSON by default; use --format text for a styled report.`,
	Example: `  gitgrade analyze https://github.com/spf13/cobra
  gitgrade analyze https://github.com/spf13/cobra.git --format text`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		format, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")
		if format != "json" && format != "text" {
			return fmt.Errorf("unknown format %q, expected json or text", format)
		}

		logger := newLogger(verbose)
		analyzer, cfg, err := newAnalyzer(cmd, logger)
		if err != nil {
			return err
		}

		result, err := analyzer.AnalyzeURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if format == "text" {
			if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
				output.SetNoColor(true)
			}
			return output.WriteReport(cmd.OutOrStdout(), result, cfg.Rubric.Maxima())
		}

		// Marshal the result into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "json", "Output format: json or text")
	analyzeCmd.Flags().Bool("no-color", false, "Disable colored text output")
}
