/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/packagewjx/feature-clusterer/internal/logutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"os"
	"strings"
)

const (
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagLogFile   = "log-file"
)

var cfgFile string

var logger = zap.NewNop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "feature-clusterer",
	Short: "对特征向量聚类",
	Long: "读取每行一个元素的特征数据，使用贪心、KMeans、谱聚类或自动确定类别数量的算法聚类。\n" +
		"也可以作为HTTP服务器运行，接收聚类请求并保存聚类结果。",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logutil.NewLogger(&logutil.LogConfig{
			Level:      viper.GetString("log.level"),
			Format:     viper.GetString("log.format"),
			Filename:   viper.GetString("log.filename"),
			MaxSize:    viper.GetInt("log.max-size"),
			MaxDays:    viper.GetInt("log.max-days"),
			MaxBackups: viper.GetInt("log.max-backups"),
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, FlagConfig, "",
		"配置文件，默认为$HOME/.feature-clusterer.yaml")
	rootCmd.PersistentFlags().String(FlagLogLevel, "info", "日志级别：debug、info、warn、error")
	rootCmd.PersistentFlags().String(FlagLogFormat, logutil.FormatConsole, "日志格式：console或json")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "日志文件，为空时输出到标准错误")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup(FlagLogLevel))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup(FlagLogFormat))
	_ = viper.BindPFlag("log.filename", rootCmd.PersistentFlags().Lookup(FlagLogFile))
	viper.SetDefault("log.max-size", logutil.DefaultConfig().MaxSize)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".feature-clusterer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".feature-clusterer")
	}

	viper.SetEnvPrefix("FEATURE_CLUSTERER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
