package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeisme/yieldcli/pkg/style"
)

//go:embed docs.md
var docsGuide string

var (
	// Docs command flags
	docsWidth int
	docsTheme string
	docsPlain bool
)

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the yieldcli user guide",
	Long: `yieldcli docs renders the built-in user guide in the terminal.

Examples:
  # Render the guide with the default theme
  yieldcli docs

  # Plain markdown output, suitable for piping
  yieldcli docs --plain`,
	Run: func(cmd *cobra.Command, _ []string) {
		if docsPlain {
			fmt.Fprint(cmd.OutOrStdout(), docsGuide)
			return
		}
		if err := style.RenderMarkdown(cmd.OutOrStdout(), docsGuide, docsWidth, docsTheme); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not render guide: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().IntVar(&docsWidth, "width", 0, "render width (0 = terminal width)")
	docsCmd.Flags().StringVar(&docsTheme, "theme", "", "render theme (e.g. dracula, dark, light)")
	docsCmd.Flags().BoolVar(&docsPlain, "plain", false, "print raw markdown without rendering")
}
