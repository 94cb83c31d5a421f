package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/screens/history"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.close()
		ctx := cmd.Context()

		category, _ := cmd.Flags().GetString("category")
		if category != "" {
			if _, err := kana.ParseCategoryID(category); err != nil {
				return err
			}
		}
		recent, _ := cmd.Flags().GetInt("recent")
		weakest, _ := cmd.Flags().GetInt("weakest")

		repo := d.store.QuizRepo()
		cats, err := repo.CategoryStats(ctx)
		if err != nil {
			return fmt.Errorf("category stats: %w", err)
		}
		if len(cats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No quizzes yet. Run `kanaz quiz` to take one.")
			return nil
		}
		weak, err := repo.WeakestKana(ctx, weakest)
		if err != nil {
			return fmt.Errorf("weakest kana: %w", err)
		}
		sessions, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: recent, Category: category})
		if err != nil {
			return fmt.Errorf("recent sessions: %w", err)
		}

		printStats(cmd.OutOrStdout(), cats, weak, sessions)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("category", "c", "", "Only list recent quizzes in this category")
	statsCmd.Flags().Int("recent", 5, "Number of recent quizzes to list")
	statsCmd.Flags().Int("weakest", 5, "Number of weakest kana to list")
}

func printStats(out io.Writer, cats []store.CategoryStat, weak []store.KanaStat, sessions []store.SessionRecord) {
	fmt.Fprintln(out, theme.Title.Render("By category"))
	fmt.Fprintln(out, categoryTable(cats).Render())

	if len(weak) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Needs practice"))
		fmt.Fprintln(out, history.WeakestTable(weak).Render())
	}

	if len(sessions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Recent quizzes"))
		for _, rec := range sessions {
			fmt.Fprintln(out, history.SessionLine(rec))
		}
	}
}

func categoryTable(cats []store.CategoryStat) *table.Table {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		label := c.Category
		if id, err := kana.ParseCategoryID(c.Category); err == nil {
			label = id.Label()
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%d", c.Sessions),
			fmt.Sprintf("%d%%", c.BestPercentage),
			fmt.Sprintf("%.0f%%", c.Accuracy()*100),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Category", "Quizzes", "Best", "Accuracy").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return st.Foreground(theme.Secondary).Bold(true)
			}
			if col > 0 {
				st = st.Align(lipgloss.Right)
			}
			return st.Foreground(theme.Text)
		})
}
