// Package cmd provides command-line interface commands for yieldcli
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/yieldcli/pkg/configs"
)

var (
	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage yieldcli configuration",
		Long:    `yieldcli config allows you to view and manage your yieldcli configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate yieldcli configuration",
		Long:  `yieldcli config validate checks the validity of your configuration file and environment variables.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// 检查配置文件加载
			err := yieldCtx.Viper.ReadInConfig()
			if err != nil {
				cmd.PrintErrf("Config file error: %v\n", err)
				os.Exit(1)
			}

			fileUsed := yieldCtx.Viper.ConfigFileUsed()

			log.Info().Msgf("Config file used: %s", fileUsed)
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List yieldcli configuration",
		Long: `yieldcli config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - tabulate: Yield tabulation settings
  - history: Run history settings

Examples:
  yieldcli config list                    # Show all configuration (viper raw data)
  yieldcli config list --all              # Show all configuration with defaults
  yieldcli config list tabulate           # Show only tabulation settings
  yieldcli config list --format yaml      # Output in YAML format
  yieldcli config list --json             # Output in JSON format (shorthand)`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			// 确定输出格式
			format := configs.GetOutputFormatFromFlags(cmd)

			// 检查是否显示完整配置（包含默认值）
			showAll, _ := cmd.Flags().GetBool("all")

			// 获取配置数据
			data, err := configs.GetConfigSection(yieldCtx.Viper, section, showAll)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting config section: %v\n", err)
				os.Exit(1)
			}

			// 输出配置
			if err := configs.OutputData(data, format, cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Error displaying config")
			}
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize yieldcli configuration",
		Long: `yieldcli config init creates a new configuration file with default settings.

Examples:
  yieldcli config init                    # Create .yieldcli.yaml in current directory
  yieldcli config init --path ~/.yieldcli/config.yaml  # Specify custom path
  yieldcli config init --format json      # Create JSON format config`,
		Run: func(cmd *cobra.Command, _ []string) {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				log.Error().Err(err).Msg("Invalid format specified")
				return
			}
			if format == configs.FormatText {
				log.Error().Msg("Text format is not supported for config files")
				return
			}

			// 如果没有指定路径，使用默认路径
			if path == "" {
				switch format {
				case configs.FormatYAML:
					path = ".yieldcli.yaml"
				case configs.FormatJSON:
					path = ".yieldcli.json"
				case configs.FormatTOML:
					path = ".yieldcli.toml"
				}
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				log.Error().Err(err).Msg("Failed to create config file")
				return
			}

			log.Info().Msgf("Config file created successfully: %s", path)
		},
		Args: cobra.NoArgs,
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
	)

	// 添加 config list 标志
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	// 添加 config init 标志
	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
