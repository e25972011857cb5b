package logger

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// DefaultLogger 全局日志实例
var DefaultLogger Logger

// InitLogger 根据环境变量初始化日志系统，并设置全局日志实例
func InitLogger(serviceName string) (Logger, error) {
	cfg := DefaultConfig()
	cfg.ServiceName = serviceName

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	cfg.FilePath = os.Getenv("LOG_FILE_PATH")
	cfg.ConsoleOutput = envBool("LOG_CONSOLE_OUTPUT", true)
	cfg.JSONFormat = envBool("LOG_JSON_FORMAT", true)
	cfg.ReportCaller = envBool("LOG_REPORT_CALLER", false)

	l, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建日志器失败: %w", err)
	}

	// 标准库日志也写到同一个输出
	log.SetOutput(l.GetOutput())
	log.SetFlags(0)

	l.Info("日志系统已初始化: 服务=%s, 级别=%s", serviceName, cfg.Level)

	DefaultLogger = l
	return l, nil
}

func envBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
