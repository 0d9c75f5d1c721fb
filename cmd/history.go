package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/yeisme/yieldcli/pkg/history"
	"github.com/yeisme/yieldcli/pkg/style"
)

var (
	// History command flags
	historyLimit  int
	historyJSON   bool
	historyFilter string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tabulation runs",
	Long: `yieldcli history lists recent tabulation runs recorded in the history
database, most recent first.

Examples:
  # Show the most recent runs
  yieldcli history

  # Show the last 5 runs in JSON format
  yieldcli history --limit 5 --json`,
	Aliases: []string{"h"},
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := yieldCtx.Config.History

		limit := historyLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.Limit
		}

		db, err := history.Open(cfg.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open history database %s\n", cfg.Path)
			os.Exit(1)
		}
		defer func() {
			_ = db.Close()
		}()

		runs, err := db.RecentRuns(limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not read history: %v\n", err)
			os.Exit(1)
		}

		if historyFilter != "" {
			filtered := runs[:0]
			for _, r := range runs {
				if fuzzy.MatchFold(historyFilter, r.Root) {
					filtered = append(filtered, r)
				}
			}
			runs = filtered
		}

		if historyJSON {
			output, err := json.MarshalIndent(runs, "", "  ")
			if err != nil {
				cmd.PrintErrf("Error formatting JSON: %v\n", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
			return
		}

		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10),
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Root,
				r.Mode,
				strconv.FormatInt(r.FilesProcessed, 10),
				strconv.FormatInt(r.FilesSkipped, 10),
				formatYield(r.TotalYield),
			})
		}
		_ = style.PrintTable(cmd.OutOrStdout(),
			[]string{"ID", "Started", "Root", "Mode", "Processed", "Skipped", "Total yield"},
			rows, 0)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show")
	historyCmd.Flags().BoolVarP(&historyJSON, "json", "j", false, "output history in JSON format")
	historyCmd.Flags().StringVar(&historyFilter, "filter", "", "fuzzy filter runs by root directory")
}
