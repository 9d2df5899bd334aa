package logutil

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"strings"
)

const (
	FormatConsole = "console"
	FormatJson    = "json"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// 为空时输出到标准错误
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max-size"`
	MaxDays    int    `mapstructure:"max-days"`
	MaxBackups int    `mapstructure:"max-backups"`
}

func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:   zapcore.InfoLevel.String(),
		Format:  FormatConsole,
		MaxSize: 512,
	}
}

func (c *LogConfig) getLevel() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
		return level, fmt.Errorf("日志级别%s有误", c.Level)
	}
	return level, nil
}

func (c *LogConfig) getEncoder() (zapcore.Encoder, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(c.Format) {
	case "", FormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	case FormatJson:
		return zapcore.NewJSONEncoder(encoderConfig), nil
	default:
		return nil, fmt.Errorf("日志格式%s有误，仅支持%s与%s", c.Format, FormatConsole, FormatJson)
	}
}

func (c *LogConfig) getSyncer() zapcore.WriteSyncer {
	if c.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.Filename,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxDays,
		MaxBackups: c.MaxBackups,
		LocalTime:  true,
	})
}

// NewLogger 根据配置创建日志记录器。配置为nil时使用默认配置。
func NewLogger(conf *LogConfig) (*zap.Logger, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	level, err := conf.getLevel()
	if err != nil {
		return nil, err
	}
	encoder, err := conf.getEncoder()
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, conf.getSyncer(), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
