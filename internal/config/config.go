package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const appDirName = "studytimer"

// AppConfig 汇总运行追踪守护进程与仪表盘所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabasePath       string
	GinMode            string
	LogDir             string
	TrackingConfigPath string
	TrackingInterval   time.Duration
	IdleTimeout        time.Duration
	BreakThreshold     time.Duration
	StatsEvery         int
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 路径类配置缺省时落在 XDG 数据/配置目录下。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf("127.0.0.1:%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = filepath.Join(xdg.DataHome, appDirName, "study_data.db")
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	logDir := strings.TrimSpace(os.Getenv("LOG_DIR"))
	if logDir == "" {
		logDir = filepath.Join(xdg.DataHome, appDirName, "logs")
	}

	trackingConfigPath := strings.TrimSpace(os.Getenv("TRACKING_CONFIG"))
	if trackingConfigPath == "" {
		trackingConfigPath = filepath.Join(xdg.ConfigHome, appDirName, "tracking.yml")
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabasePath:       databasePath,
		GinMode:            ginMode,
		LogDir:             logDir,
		TrackingConfigPath: trackingConfigPath,
		TrackingInterval:   secondsEnv("TRACKING_INTERVAL", 5),
		IdleTimeout:        secondsEnv("IDLE_TIMEOUT", 300),
		BreakThreshold:     secondsEnv("BREAK_THRESHOLD", 900),
		StatsEvery:         intEnv("STATS_EVERY", 10),
	}
}

// secondsEnv 将以秒计的环境变量解析为 Duration，非法值回退默认。
func secondsEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
