package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kanaz",
	Short: "Learn hiragana and katakana in the terminal",
	Long:  "Kanaz is a terminal app for learning the Japanese kana with charts, pronunciation and quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the command line. Cancelling ctx stops line-mode quizzes,
// LLM requests and downloads.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file or postgres:// DSN (overrides KANAZ_DB)")
	pf.String("config", "", "Path to config file (default: config.yaml in the kanaz config directory)")
	pf.String("catalog", "", "Directory with a custom kana catalog (plain.yaml, voiced.yaml, ...)")
	pf.String("theme", "", "UI theme: dark or light")
	pf.BoolP("verbose", "v", false, "Debug logging (to stderr for line-mode commands)")

	rootCmd.Flags().Bool("skip-welcome", false, "Open straight on the home screen")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(mnemonicCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
