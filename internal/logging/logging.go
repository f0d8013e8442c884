// Package logging 提供写入滚动日志文件并同步输出到终端的日志器。
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New 返回一个同时写入 stderr 与 logDir 下滚动文件的日志器。
// name 决定日志文件名与前缀，例如 tracker 或 dashboard。
func New(name, logDir string) (*log.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, name+".log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	writer := io.MultiWriter(os.Stderr, fileWriter)

	return log.New(writer, fmt.Sprintf("[%s] ", name), log.LstdFlags), nil
}
