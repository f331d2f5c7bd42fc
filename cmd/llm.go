package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/llm"
	"github.com/parserinator/parserinator/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests from question drafting",
}

// withRepo runs fn against the event repo, failing when the store is down.
func withRepo(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := requireStore(rt); err != nil {
		return err
	}
	return fn(rt.Store.EventRepo())
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")

		return withRepo(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query LLM requests: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No LLM requests recorded.")
				return nil
			}

			tw := newTable()
			fmt.Fprintln(tw, "ID\tWHEN\tPURPOSE\tMODEL\tTOKENS\tLATENCY\t")
			for _, e := range events {
				status := "ok"
				if !e.Success {
					status = "failed"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%dms\t%s\n",
					e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose,
					truncate(e.Model, 30), e.InputTokens, e.OutputTokens, e.LatencyMs, status)
			}
			return tw.Flush()
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}

		return withRepo(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get LLM request: %w", err)
			}
			if e == nil {
				return fmt.Errorf("no LLM request with ID %d", id)
			}

			tw := newTable()
			fmt.Fprintf(tw, "When:\t%s\n", e.Timestamp.Local().Format(timeLayout))
			fmt.Fprintf(tw, "Model:\t%s (%s)\n", e.Model, e.Provider)
			fmt.Fprintf(tw, "Purpose:\t%s\n", e.Purpose)
			fmt.Fprintf(tw, "Tokens:\t%d in, %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Fprintf(tw, "Latency:\t%dms\n", e.LatencyMs)
			if c := llm.LookupCost(e.Model); c != nil {
				fmt.Fprintf(tw, "Cost:\t%s\n", formatCost(c.Cost(e.InputTokens, e.OutputTokens)))
			}
			if e.ErrorMessage != "" {
				fmt.Fprintf(tw, "Error:\t%s\n", e.ErrorMessage)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			printSection("Prompt", e.RequestBody)
			printSection("Reply", e.ResponseBody)
			return nil
		})
	},
}

func printSection(title, body string) {
	fmt.Printf("\n== %s ==\n", title)
	if body == "" {
		body = "(empty)"
	}
	fmt.Println(strings.TrimRight(body, "\n"))
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(repo store.EventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage by purpose: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM requests recorded.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage by model: %w", err)
			}

			tw := newTable()
			fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG LATENCY\t")
			for _, u := range byPurpose {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%dms\t\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			}
			fmt.Fprintln(tw, "\t\t\t\t\t")

			var total float64
			var unpriced []string
			fmt.Fprintln(tw, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST\t")
			for _, u := range byModel {
				cost := "n/a"
				if c := llm.LookupCost(u.Model); c != nil {
					usd := c.Cost(u.InputTokens, u.OutputTokens)
					total += usd
					cost = formatCost(usd)
				} else {
					unpriced = append(unpriced, u.Model)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", truncate(u.Model, 36), u.Calls, u.InputTokens, u.OutputTokens, cost)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nEstimated total: %s\n", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Printf("No pricing for %s; total excludes them.\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show requests with this purpose (e.g. question-draft)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
