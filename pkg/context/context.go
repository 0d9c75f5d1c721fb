// Package context 提供 yieldcli 运行期上下文
package context

import (
	"context"

	"github.com/spf13/viper"
	"github.com/yeisme/yieldcli/pkg/configs"
	"github.com/yeisme/yieldcli/pkg/utils/log"
)

// GlobalFlags 保存根命令的全局标志
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	CPUProfile    string
	Trace         string
	VersionEnable bool
}

// YieldContext 聚合配置、viper 实例与日志记录器，随命令传递
type YieldContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // viper 实例，config 子命令直接读取
	Logger log.Logger      // 日志记录器
}

// InitYieldContext 加载配置并初始化日志，构造运行期上下文
// 命令行标志优先于配置文件
func InitYieldContext(configPath string, debug, verbose, quiet bool) *YieldContext {
	ctx := context.Background()
	config, err := configs.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}

	if debug {
		config.App.Debug = true
	}
	if verbose {
		config.App.Verbose = true
	}
	if quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &YieldContext{
		Context: ctx,
		Config:  config,
		Viper:   viper.GetViper(),
		Logger:  logger,
	}
}
