package handler

import (
	"github.com/studytimer/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	sessions *service.SessionService
	stats    *service.StatsService
	tabs     *service.TabActivityService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, quotes []string) *API {
	return &API{
		db:       gdb,
		sessions: service.NewSessionService(gdb),
		stats:    service.NewStatsService(gdb, quotes),
		tabs:     service.NewTabActivityService(gdb),
	}
}
