package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeisme/yieldcli/pkg/tabulate"
)

var (
	// Extract command flags
	extractOutput string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <input>",
	Short: "Extract ROOT file names from a text file",
	Long: `yieldcli extract scans a text file (a job log, a dataset listing, any
free-form text) and extracts every ROOT file name found in it, one per line.

The result can be fed back into 'yieldcli tabulate --from-list'.

Examples:
  # Print the ROOT file names found in a job log
  yieldcli extract job.log

  # Write them to a list file for later tabulation
  yieldcli extract job.log -o files.txt`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open file %s\n", args[0])
			os.Exit(1)
		}
		defer func() {
			_ = input.Close()
		}()

		names, err := tabulate.ExtractRootNames(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not read file %s\n", args[0])
			os.Exit(1)
		}

		out := cmd.OutOrStdout()
		if extractOutput != "" {
			f, err := os.Create(extractOutput)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: could not create file %s\n", extractOutput)
				os.Exit(1)
			}
			defer func() {
				_ = f.Close()
			}()
			out = f
		}

		for _, name := range names {
			fmt.Fprintln(out, name)
		}

		log.Info().Int("count", len(names)).Str("input", args[0]).Msg("extracted ROOT file names")
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write extracted names to this file instead of stdout")
}
