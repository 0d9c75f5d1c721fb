package configs

import "github.com/spf13/viper"

// HistoryConfig 运行历史记录配置
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"` // 是否记录每次统计运行
	Path    string `mapstructure:"path"`    // SQLite 数据库文件路径
	Limit   int    `mapstructure:"limit"`   // history 命令默认显示的条数
}

func setHistoryConfigDefaults() {
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", ".yieldcli/history.db")
	viper.SetDefault("history.limit", 20)
}
