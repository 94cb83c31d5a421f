package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/llm"
	"github.com/abhisek/kanaz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM requests made for memory hints",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		d, err := openDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.close()

		events, err := d.store.EventLog().RecentLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failed {
			kept := events[:0]
			for _, e := range events {
				if !e.Success {
					kept = append(kept, e)
				}
			}
			events = kept
		}

		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM requests found.")
			return nil
		}
		printLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.close()

		usage, err := d.store.EventLog().LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM usage recorded yet.")
			return nil
		}
		printLLMUsage(cmd.OutOrStdout(), usage)
		return nil
	},
}

func printLLMEvents(out io.Writer, events []store.LLMRequestRecord) {
	fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Provider", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 96))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗ " + truncate(e.ErrorMessage, 40)
		}
		fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Provider,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

// printLLMUsage prefers the current price table and falls back to the
// cost recorded with each request for models it does not know.
func printLLMUsage(out io.Writer, usage []store.LLMUsageStat) {
	sep := strings.Repeat("─", 84)
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %8s  %10s\n",
		"Model", "Calls", "Input", "Output", "Avg Ms", "Cost")
	fmt.Fprintln(out, sep)

	var totalCalls, totalIn, totalOut int
	var totalCost float64
	for _, u := range usage {
		cost := u.CostUSD
		if c := llm.LookupCost(u.Model); c != nil {
			cost = c.Cost(u.InputTokens, u.OutputTokens)
		}
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %8d  %10s\n",
			truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs, formatCost(cost))
		totalCalls += u.Calls
		totalIn += u.InputTokens
		totalOut += u.OutputTokens
		totalCost += cost
	}

	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %8s  %10s\n",
		"TOTAL", totalCalls, totalIn, totalOut, "", formatCost(totalCost))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
