package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/studytimer/internal/config"
	"github.com/studytimer/internal/db"
	"github.com/studytimer/internal/logging"
	"github.com/studytimer/internal/service"
	"github.com/studytimer/internal/tracker"
)

func main() {
	pterm.DefaultHeader.Println("Study Timer - Procrastination Detector")
	pterm.Info.Println("Tracking study sessions automatically. Press Ctrl+C to stop.")
	pterm.Println("Grant Accessibility permissions in System Preferences if sampling fails.")

	cfg := config.Load()

	logger, err := logging.New("tracker", cfg.LogDir)
	if err != nil {
		pterm.Error.Printfln("failed to set up logging: %v", err)
		os.Exit(1)
	}

	tracking, err := config.LoadTracking(cfg.TrackingConfigPath)
	if err != nil {
		pterm.Error.Printfln("failed to load tracking config: %v", err)
		os.Exit(1)
	}

	// 打不开数据库属于构造期致命错误，循环内的持久化错误则只记录不退出
	if err := db.Init(cfg.DatabasePath); err != nil {
		pterm.Error.Printfln("failed to initialize database: %v", err)
		os.Exit(1)
	}

	t := tracker.New(
		tracker.Config{
			Interval:       cfg.TrackingInterval,
			IdleTimeout:    cfg.IdleTimeout,
			BreakThreshold: cfg.BreakThreshold,
			StatsEvery:     cfg.StatsEvery,
		},
		tracker.NewPlatformSampler(),
		service.NewClassifier(tracking),
		service.NewSessionService(db.DB),
		service.NewStatsService(db.DB, tracking.Quotes),
		service.NewTabActivityService(db.DB),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := t.Run(ctx); err != nil {
		logger.Printf("tracker exited with error: %v", err)
	}

	// 收尾动作（关闭会话、重算统计）完成后才释放数据库连接
	if sqlDB, err := db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
