package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/yieldcli/pkg/context"
	log2 "github.com/yeisme/yieldcli/pkg/utils/log"
	"github.com/yeisme/yieldcli/pkg/utils/version"
)

var (
	yieldCtx *context.YieldContext
	log      log2.Logger

	// Global flags
	globalFlags       = context.GlobalFlags{}
	configPathFlag    = globalFlags.ConfigPath
	debugFlag         = globalFlags.Debug
	verboseFlag       = globalFlags.Verbose
	quietFlag         = globalFlags.Quiet
	cpuProfileFlag    = globalFlags.CPUProfile
	traceFlag         = globalFlags.Trace
	versionEnableFlag = globalFlags.VersionEnable
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yieldcli",
	Short: "yieldcli tallies event yields from trees stored in ROOT ntuple files",
	Long: `yieldcli walks a directory tree of ROOT ntuple files, reads a named tree
in each file and tallies raw, filtered or weighted event yields per sample,
writing per-directory tables and a grand summary to a report file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionEnableFlag {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			os.Exit(0)
		}
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No arguments provided")
			_ = cmd.Help()
		}
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if cpuProfileFlag != "" {
			f, err := os.Create(cpuProfileFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("could not create CPU profile")
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				log.Fatal().Err(err).Msg("could not start CPU profile")
			}
		}
		if traceFlag != "" {
			f, err := os.Create(traceFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("could not create trace file")
			}
			if err := trace.Start(f); err != nil {
				log.Fatal().Err(err).Msg("could not start trace")
			}
		}
		ctx := context.InitYieldContext(configPathFlag, debugFlag, verboseFlag, quietFlag)

		yieldCtx = ctx
		log = ctx.Logger

		log.Info().Msgf("Execute Command: %s %s", "yieldcli", strings.Join(os.Args[1:], " "))
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cpuProfileFlag != "" {
			pprof.StopCPUProfile()
		}
		if traceFlag != "" {
			trace.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&cpuProfileFlag, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&traceFlag, "trace", "", "write execution trace to `file`")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&versionEnableFlag, "version", "v", false, "show version information")
}
