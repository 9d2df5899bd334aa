package server

import (
	"encoding/json"
	"fmt"
	"github.com/packagewjx/feature-clusterer/internal/classify"
	"os"
)

const (
	DefaultPort      = 2000
	DefaultMaxPoints = 5000
)

type ServerConfig struct {
	Port uint16 `mapstructure:"port"` // 本服务器监听端口
	// 为空时尝试从MYSQL_SERVICE_HOST与MYSQL_SERVICE_PORT环境变量获取，仍为空则不保存聚类结果
	MysqlHost        string `mapstructure:"mysql-host"`
	DefaultAlgorithm string `mapstructure:"algorithm"` // 请求未指定算法时使用的算法
	// 单次请求的最大点数。距离缓存与拉普拉斯矩阵的空间为点数的平方
	MaxPoints int `mapstructure:"max-points"`
}

func (s ServerConfig) String() string {
	marshal, _ := json.Marshal(s)
	return string(marshal)
}

func (config *ServerConfig) Complete() error {
	if config.Port < 1024 {
		return fmt.Errorf("端口号应该在1024到65535之间，现在为%d", config.Port)
	}

	if config.DefaultAlgorithm == "" {
		config.DefaultAlgorithm = string(classify.AutomaticType)
	}
	supported := false
	for _, t := range classify.AlgorithmTypes() {
		if string(t) == config.DefaultAlgorithm {
			supported = true
		}
	}
	if !supported {
		return fmt.Errorf("不支持的聚类算法：%s", config.DefaultAlgorithm)
	}

	if config.MaxPoints < 0 {
		return fmt.Errorf("最大点数不能为负数，现在为%d", config.MaxPoints)
	} else if config.MaxPoints == 0 {
		config.MaxPoints = DefaultMaxPoints
	}

	if config.MysqlHost == "" && os.Getenv("MYSQL_SERVICE_HOST") != "" {
		config.MysqlHost = fmt.Sprintf("%s:%s",
			os.Getenv("MYSQL_SERVICE_HOST"), os.Getenv("MYSQL_SERVICE_PORT"))
	}

	return nil
}
