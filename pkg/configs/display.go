package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yeisme/yieldcli/pkg/style"
	"gopkg.in/yaml.v3"
)

// OutputFormat 输出格式类型
type OutputFormat string

const (
	// FormatYAML represents the YAML output format.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON represents the JSON output format.
	FormatJSON OutputFormat = "json"
	// FormatTOML represents the TOML output format.
	FormatTOML OutputFormat = "toml"
	// FormatText represents the plain text output format.
	FormatText OutputFormat = "text"
)

// ValidFormats 返回所有有效的输出格式
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML), string(FormatText)}
}

// ParseOutputFormat 解析输出格式字符串
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format '%s', supported formats: %s", format, strings.Join(ValidFormats(), ", "))
	}
}

// GetOutputFormatFromFlags 从命令行标志获取输出格式
func GetOutputFormatFromFlags(cmd *cobra.Command) OutputFormat {
	// 首先检查 --format 标志
	if formatFlag, _ := cmd.Flags().GetString("format"); formatFlag != "" {
		if format, err := ParseOutputFormat(formatFlag); err == nil {
			return format
		}
	}

	// 检查具体的格式标志
	if yamlFlag, _ := cmd.Flags().GetBool("yaml"); yamlFlag {
		return FormatYAML
	}
	if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
		return FormatJSON
	}
	if tomlFlag, _ := cmd.Flags().GetBool("toml"); tomlFlag {
		return FormatTOML
	}
	if textFlag, _ := cmd.Flags().GetBool("text"); textFlag {
		return FormatText
	}

	// 默认格式
	return FormatYAML
}

// OutputData 根据指定格式输出数据
func OutputData(data any, format OutputFormat, out io.Writer) error {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err := enc.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		err = enc.Close()
		if err != nil {
			return fmt.Errorf("failed to close YAML encoder: %w", err)
		}
		fmt.Fprint(out, buf.String())

	case FormatJSON:
		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		_ = style.PrintJSON(out, jsonData)

	case FormatTOML:
		tomlData, err := toml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal to TOML: %w", err)
		}
		fmt.Fprint(out, string(tomlData))

	case FormatText:
		// 简单的文本格式输出
		fmt.Fprintf(out, "%+v\n", data)

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	return nil
}

// CreateDefaultConfig 按指定格式将默认配置写入 path
// 目标文件已存在时返回错误，避免覆盖用户配置
func CreateDefaultConfig(path string, format OutputFormat) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	setDefaults()
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("failed to build default config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	// JSON 走无着色的编码，文件内容须保持纯净
	if format == FormatJSON {
		jsonData, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		_, err = f.Write(append(jsonData, '\n'))
		return err
	}

	return OutputData(config, format, f)
}

// GetConfigSection 从 viper 实例获取指定配置段
func GetConfigSection(v *viper.Viper, section string, showAll bool) (any, error) {
	if showAll {
		// 返回完整的配置结构体（包含默认值）
		var config Config
		if err := v.Unmarshal(&config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}

		if section == "" {
			return config, nil
		}

		// 使用反射动态查找配置段
		val := reflect.ValueOf(config)
		typ := val.Type()
		lowerSection := strings.ToLower(section)

		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("mapstructure")
			if strings.ToLower(tag) == lowerSection {
				return val.Field(i).Interface(), nil
			}
		}

		return nil, fmt.Errorf("unknown configuration section: %s", section)
	}

	// 返回 viper 的原始数据
	lowerSection := strings.ToLower(section)

	if lowerSection == "" {
		// 显示所有配置
		return v.AllSettings(), nil
	}

	// 检查 section 是否是 viper 中的一个顶级键或已设置的键
	if v.IsSet(lowerSection) {
		return v.Get(lowerSection), nil
	}

	return nil, fmt.Errorf("unknown or unset configuration section %s", section)
}
