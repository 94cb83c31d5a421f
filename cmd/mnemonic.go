package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/llm"
	"github.com/abhisek/kanaz/internal/mnemonic"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic <kana>",
	Short: "Show a memory hint for a kana",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.close()
		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeMnemonic)

		entry, ok := d.catalog.Lookup(args[0])
		if !ok {
			return fmt.Errorf("%q is not in the kana catalog", args[0])
		}

		svc := d.mnemonics(ctx)
		get := svc.Get
		if regen, _ := cmd.Flags().GetBool("regenerate"); regen {
			get = svc.Regenerate
		}
		m, err := get(ctx, entry)
		if errors.Is(err, mnemonic.ErrUnavailable) {
			return fmt.Errorf("no LLM provider configured; set KANAZ_ANTHROPIC_API_KEY, KANAZ_OPENAI_API_KEY or KANAZ_GEMINI_API_KEY")
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n\n", theme.Glyph.Render(entry.Glyph), entry.Reading)
		fmt.Fprintln(out, m.Hint)
		if m.Story != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.Body.Render(m.Story))
		}
		src := m.Model
		if m.Cached {
			src += ", cached"
		}
		fmt.Fprintln(out, theme.Hint.Render("("+src+")"))
		return nil
	},
}

func init() {
	mnemonicCmd.Flags().Bool("regenerate", false, "Ask the provider for a fresh hint")
}
