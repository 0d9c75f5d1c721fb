package configs

import "github.com/spf13/viper"

// TabulateConfig 事例产额统计配置
type TabulateConfig struct {
	Root      string   `mapstructure:"root"`      // 数据文件树的根目录
	Output    string   `mapstructure:"output"`    // 产额报告文件路径
	Tree      string   `mapstructure:"tree"`      // ntuple 中待读取的 tree 名称
	Extension string   `mapstructure:"extension"` // 数据文件扩展名
	Mode      string   `mapstructure:"mode"`      // 统计模式: raw, filtered, weighted
	Selection string   `mapstructure:"selection"` // 选择表达式预设名称
	Weight    string   `mapstructure:"weight"`    // 权重表达式预设名称
	Exclude   []string `mapstructure:"exclude"`   // 排除匹配这些 glob 的路径
	Progress  bool     `mapstructure:"progress"`  // 是否显示进度条
	Watch     bool     `mapstructure:"watch"`     // 是否监视目录变化并自动重跑
	Debounce  int      `mapstructure:"debounce"`  // 监视模式防抖时间，毫秒
}

func setTabulateConfigDefaults() {
	viper.SetDefault("tabulate.root", ".")
	viper.SetDefault("tabulate.output", "EventYields.log")
	viper.SetDefault("tabulate.tree", "nominal_Loose")
	viper.SetDefault("tabulate.extension", ".root")
	viper.SetDefault("tabulate.mode", "filtered")
	viper.SetDefault("tabulate.selection", "1l-5j3b")
	viper.SetDefault("tabulate.weight", "run2-lumi-weight")
	viper.SetDefault("tabulate.exclude", []string{})
	viper.SetDefault("tabulate.progress", true)
	viper.SetDefault("tabulate.watch", false)
	viper.SetDefault("tabulate.debounce", 500) // 毫秒
}
