package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pterm/pterm"
	"github.com/studytimer/internal/config"
	"github.com/studytimer/internal/db"
	"github.com/studytimer/internal/handler"
	"github.com/studytimer/internal/router"
)

func main() {
	pterm.DefaultHeader.Println("Study Timer Dashboard")

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	tracking, err := config.LoadTracking(cfg.TrackingConfigPath)
	if err != nil {
		pterm.Error.Printfln("failed to load tracking config: %v", err)
		os.Exit(1)
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		pterm.Error.Printfln("failed to initialize database: %v", err)
		os.Exit(1)
	}

	pterm.Info.Printfln("Dashboard listening at http://%s", cfg.ListenAddr)
	pterm.Println("Keep the tracker running (trackerd) to collect data.")

	api := handler.NewAPI(db.DB, tracking.Quotes)
	r := router.SetupRouter(api)

	if err := r.Run(cfg.ListenAddr); err != nil {
		pterm.Error.Printfln("failed to run server: %v", err)
		os.Exit(1)
	}
}
