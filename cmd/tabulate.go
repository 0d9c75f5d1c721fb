package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/yeisme/yieldcli/pkg/history"
	"github.com/yeisme/yieldcli/pkg/ntuple"
	"github.com/yeisme/yieldcli/pkg/ntuple/rootio"
	"github.com/yeisme/yieldcli/pkg/style"
	"github.com/yeisme/yieldcli/pkg/tabulate"
)

var (
	// Tabulate command flags
	tabulateOutput     string
	tabulateTree       string
	tabulateExtension  string
	tabulateMode       string
	tabulateSelection  string
	tabulateWeight     string
	tabulateExclude    []string
	tabulateFromList   string
	tabulateFilter     string
	tabulateWatch      bool
	tabulateNoProgress bool
)

// tabulateCmd represents the tabulate command
var tabulateCmd = &cobra.Command{
	Use:   "tabulate [root]",
	Short: "Tally event yields from ROOT ntuple files",
	Long: `yieldcli tabulate walks a directory tree of ROOT ntuple files, reads the
named tree in each file and tallies event yields per sample. Per-directory
tables and a grand summary are written to the report file, and a summary
table is shown on the console.

The counting mode decides what is tallied per file:
  raw       total entries in the tree
  filtered  entries passing the selection expression
  weighted  sum of event weights times the filtered entry count

Selection and weight expressions are named presets; list them with
'yieldcli tabulate --selection help'.

Examples:
  # Tally filtered yields under /data/mc16 with defaults
  yieldcli tabulate /data/mc16

  # Raw entry counts, custom tree and report file
  yieldcli tabulate /data/mc16 --mode raw --tree nominal --output Raw.log

  # Weighted yields for the files named in a list file
  yieldcli tabulate --from-list files.txt --mode weighted

  # Re-run automatically when data files change
  yieldcli tabulate /data/mc16 --watch`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := yieldCtx.Config.Tabulate

		// 未显式给出的标志回退到配置文件的值
		if !cmd.Flags().Changed("output") {
			tabulateOutput = cfg.Output
		}
		if !cmd.Flags().Changed("tree") {
			tabulateTree = cfg.Tree
		}
		if !cmd.Flags().Changed("ext") {
			tabulateExtension = cfg.Extension
		}
		if !cmd.Flags().Changed("mode") {
			tabulateMode = cfg.Mode
		}
		if !cmd.Flags().Changed("selection") {
			tabulateSelection = cfg.Selection
		}
		if !cmd.Flags().Changed("weight") {
			tabulateWeight = cfg.Weight
		}

		root := cfg.Root
		if len(args) > 0 {
			root = args[0]
		}

		if tabulateSelection == "help" || tabulateWeight == "help" {
			fmt.Fprintln(cmd.OutOrStdout(), "Available expression presets:")
			for _, name := range ntuple.PresetNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return
		}

		mode, err := tabulate.ParseMode(tabulateMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		selection, err := ntuple.Preset(tabulateSelection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		weight, err := ntuple.Preset(tabulateWeight)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var files []string
		listName := ""
		if tabulateFromList != "" {
			files, err = tabulate.ReadFileList(tabulateFromList)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: could not open file %s\n", tabulateFromList)
				os.Exit(1)
			}
			listName = tabulateFromList
		}

		runOnce := func() {
			reportFile, err := os.Create(tabulateOutput)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: could not create file %s\n", tabulateOutput)
				os.Exit(1)
			}
			defer func() {
				_ = reportFile.Close()
			}()

			var progressOut *os.File
			if cfg.Progress && !tabulateNoProgress && !yieldCtx.Config.App.Quiet {
				progressOut = os.Stdout
			}

			opts := tabulate.Options{
				Root:      root,
				Files:     files,
				ListName:  listName,
				Tree:      tabulateTree,
				Extension: tabulateExtension,
				Mode:      mode,
				Selection: selection,
				Weight:    weight,
				Exclude:   append(cfg.Exclude, tabulateExclude...),
				Report:    reportFile,
			}
			if progressOut != nil {
				opts.Progress = progressOut
			}

			started := time.Now()
			result, err := tabulate.Run(yieldCtx, rootio.New(), opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			printConsoleSummary(cmd, result)

			if yieldCtx.Config.History.Enabled {
				recordHistory(result, root, started, time.Since(started))
			}

			log.Info().
				Str("report", tabulateOutput).
				Int("processed", result.FilesProcessed).
				Int("skipped", result.FilesSkipped).
				Msg("tabulation finished")
		}

		runOnce()

		if tabulateWatch || cfg.Watch {
			debounce := time.Duration(cfg.Debounce) * time.Millisecond
			log.Info().Str("root", root).Dur("debounce", debounce).Msg("watching for data file changes")
			if err := tabulate.Watch(yieldCtx, root, tabulateExtension, debounce, runOnce); err != nil {
				log.Error().Err(err).Msg("watch mode stopped")
				os.Exit(1)
			}
		}
	},
}

// printConsoleSummary 在终端打印汇总表，--filter 对样本名做模糊过滤
func printConsoleSummary(cmd *cobra.Command, result *tabulate.Result) {
	if yieldCtx.Config.App.Quiet {
		return
	}

	_ = style.PrintHeading(cmd.OutOrStdout(), fmt.Sprintf("Event yields (%s)", result.Mode))

	rows := make([][]string, 0, len(result.Totals))
	for _, t := range result.Totals {
		if tabulateFilter != "" && !fuzzy.MatchFold(tabulateFilter, t.Sample) {
			continue
		}
		rows = append(rows, []string{t.Sample, formatYield(t.Yield.ValueFor(result.Mode))})
	}
	_ = style.PrintTable(cmd.OutOrStdout(), []string{"Sample", "Yield"}, rows, 0)

	_ = style.PrintKeyValues(cmd.OutOrStdout(), [][2]string{
		{"Files processed", strconv.Itoa(result.FilesProcessed)},
		{"Files skipped", strconv.Itoa(result.FilesSkipped)},
		{"Total yield", formatYield(result.Grand)},
	})
}

func formatYield(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// recordHistory 把本次运行写入历史数据库，失败只告警不中断
func recordHistory(result *tabulate.Result, root string, started time.Time, elapsed time.Duration) {
	db, err := history.Open(yieldCtx.Config.History.Path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to open history database")
		return
	}
	defer func() {
		_ = db.Close()
	}()

	_, err = db.RecordRun(&history.Run{
		StartedAt:      started,
		Duration:       elapsed,
		Root:           root,
		Tree:           tabulateTree,
		Mode:           string(result.Mode),
		FilesTotal:     int64(result.FilesTotal),
		FilesProcessed: int64(result.FilesProcessed),
		FilesSkipped:   int64(result.FilesSkipped),
		Samples:        int64(len(result.Totals)),
		TotalYield:     result.Grand,
		ReportPath:     tabulateOutput,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to record run history")
	}
}

func init() {
	rootCmd.AddCommand(tabulateCmd)

	tabulateCmd.Flags().StringVarP(&tabulateOutput, "output", "o", "EventYields.log", "report file path")
	tabulateCmd.Flags().StringVarP(&tabulateTree, "tree", "t", "nominal_Loose", "tree name to read in each file")
	tabulateCmd.Flags().StringVarP(&tabulateExtension, "ext", "e", ".root", "data file extension")
	tabulateCmd.Flags().StringVarP(&tabulateMode, "mode", "m", "filtered", "counting mode (raw, filtered, weighted)")
	tabulateCmd.Flags().StringVarP(&tabulateSelection, "selection", "s", "1l-5j3b", "selection expression preset ('help' to list)")
	tabulateCmd.Flags().StringVarP(&tabulateWeight, "weight", "w", "run2-lumi-weight", "weight expression preset ('help' to list)")
	tabulateCmd.Flags().StringSliceVar(&tabulateExclude, "exclude", nil, "exclude paths matching these patterns")
	tabulateCmd.Flags().StringVar(&tabulateFromList, "from-list", "", "read file paths from a list file instead of walking a directory")
	tabulateCmd.Flags().StringVar(&tabulateFilter, "filter", "", "fuzzy filter for sample names in the console summary")
	tabulateCmd.Flags().BoolVar(&tabulateWatch, "watch", false, "watch the root directory and re-run on changes")
	tabulateCmd.Flags().BoolVar(&tabulateNoProgress, "no-progress", false, "disable the progress bar")
}
