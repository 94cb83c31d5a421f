package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/app"
	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/selfupdate"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.close()

	env := d.env(cmd.Context())
	skip, _ := cmd.Flags().GetBool("skip-welcome")
	d.logger.Info("starting kanaz",
		zap.String("version", version),
		zap.Int("catalog_size", len(d.catalog.Entries(kana.Combined))),
		zap.Bool("mnemonics", env.Mnemonics.Available()),
	)

	return app.Run(cmd.Context(), env, app.Options{
		SkipWelcome: skip,
		Checker:     selfupdate.NewChecker(),
	})
}
