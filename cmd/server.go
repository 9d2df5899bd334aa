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
	"github.com/packagewjx/feature-clusterer/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	FlagPort             = "port"
	FlagMysqlHost        = "mysql-host"
	FlagDefaultAlgorithm = "algorithm"
	FlagMaxPoints        = "max-points"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "聚类服务器",
	Long: "提供HTTP接口接收特征点并聚类。POST /cluster提交聚类请求，GET /runs/{runId}查询聚类结果，\n" +
		"DELETE /runs/{runId}删除聚类结果。配置了MySQL时聚类结果将会保存。\n",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := &server.ServerConfig{
			Port:             uint16(viper.GetUint("server.port")),
			MysqlHost:        viper.GetString("server.mysql-host"),
			DefaultAlgorithm: viper.GetString("server.algorithm"),
			MaxPoints:        viper.GetInt("server.max-points"),
		}
		s, err := server.NewServer(config, logger)
		if err != nil {
			return err
		}

		return s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().Uint16P(FlagPort, "p", server.DefaultPort,
		"服务端口号")
	serverCmd.Flags().String(FlagMysqlHost, "",
		"Mysql服务器主机端口，格式为：host:port。若为空，则读取环境变量MYSQL_SERVICE_HOST与MYSQL_SERVICE_PORT取得")
	serverCmd.Flags().StringP(FlagDefaultAlgorithm, "a", "",
		"请求未指定算法时使用的算法，默认为automatic")
	serverCmd.Flags().Int(FlagMaxPoints, server.DefaultMaxPoints,
		"单次请求的最大点数")

	for _, name := range []string{FlagPort, FlagMysqlHost, FlagDefaultAlgorithm, FlagMaxPoints} {
		_ = viper.BindPFlag("server."+name, serverCmd.Flags().Lookup(name))
	}
}
