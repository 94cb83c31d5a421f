package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

var chartCmd = &cobra.Command{
	Use:       "chart [hiragana|katakana|voiced|contracted]",
	Short:     "Print a kana chart",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"hiragana", "katakana", "voiced", "contracted"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "hiragana"
		if len(args) == 1 {
			name = args[0]
		}
		kind, ok := kana.ParseChartKind(name)
		if !ok {
			return fmt.Errorf("unknown chart %q", name)
		}
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		rows := cat.Chart(kind)
		if len(rows) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "The %s chart is empty.\n", kind)
			return nil
		}
		out := cmd.OutOrStdout()
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			for _, r := range rows {
				fmt.Fprintln(out, chartLine(r))
			}
			return nil
		}
		fmt.Fprintln(out, theme.Title.Render(kind.String()))
		fmt.Fprintln(out, chartTable(rows).Render())
		return nil
	},
}

func init() {
	chartCmd.Flags().Bool("plain", false, "One row per line, glyphs only")
}

// chartTable renders each cell as the glyph over its reading.
func chartTable(rows []kana.ChartRow) *table.Table {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{r.Label}
		for _, e := range r.Cells {
			if e.Glyph == "" {
				line = append(line, "")
				continue
			}
			line = append(line, e.Glyph+"\n"+e.Reading)
		}
		cells = append(cells, line)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		BorderRow(true).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
			if col == 0 {
				return st.Foreground(theme.TextDim)
			}
			return st.Foreground(theme.Text)
		})
}

// chartLine is the compact one-line form used by --plain.
func chartLine(r kana.ChartRow) string {
	parts := make([]string, 0, len(r.Cells))
	for _, e := range r.Cells {
		if e.Glyph == "" {
			parts = append(parts, "  ")
			continue
		}
		parts = append(parts, e.Glyph)
	}
	return fmt.Sprintf("%-4s %s", r.Label, strings.Join(parts, " "))
}
