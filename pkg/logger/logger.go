// Package logger 基于zap的结构化日志
//
// 设计说明：
// 1. 日志级别、格式、输出目标全部由配置驱动（config.yaml的log段）
// 2. 开发环境使用console格式（彩色、易读），生产环境使用json格式（便于采集）
// 3. 通过全局Logger暴露，业务代码直接logger.L().Info(...)
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | 文件路径
	EnableCaller bool   // 是否记录调用位置
}

var global = zap.NewNop()

// Init 初始化全局日志器
func Init(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("非法的日志级别 %q: %w", opts.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch opts.Format {
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var sink zapcore.WriteSyncer
	switch opts.Output {
	case "", "stdout":
		sink = zapcore.AddSync(os.Stdout)
	case "stderr":
		sink = zapcore.AddSync(os.Stderr)
	default:
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		sink = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(encoder, sink, level)

	zapOpts := []zap.Option{}
	if opts.EnableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}

	global = zap.New(core, zapOpts...)
	return global, nil
}

// L 获取全局日志器
// 说明：未初始化时返回Nop日志器（单元测试中无需Init）
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲区（程序退出前调用）
func Sync() {
	_ = global.Sync()
}
