package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all quiz history",
	Long:  "Delete every saved quiz and answer. Preferences and cached memory hints are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all quiz history; re-run with --yes to confirm")
		}
		d, err := openDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.store.QuizRepo().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		d.logger.Info("quiz history reset")
		fmt.Fprintln(cmd.OutOrStdout(), "Quiz history deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
