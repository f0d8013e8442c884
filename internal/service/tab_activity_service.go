package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/studytimer/internal/db"
	"gorm.io/gorm"
)

// TabActivityService 负责仪表盘前台信号的写入与读取。
// 仪表盘是 tab_activity 表唯一的写入方，追踪端只读最新一条。
type TabActivityService struct {
	db *gorm.DB
}

// NewTabActivityService 构造 TabActivityService
func NewTabActivityService(gdb *gorm.DB) *TabActivityService {
	return &TabActivityService{db: gdb}
}

// Record 追加一条前台信号。
func (s *TabActivityService) Record(visitorID string, isActive bool, at time.Time) error {
	entry := db.TabActivity{
		Timestamp: at,
		IsActive:  isActive,
		VisitorID: visitorID,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("record tab activity: %w", err)
	}
	return nil
}

// Latest 返回最新一条前台信号；一条都没有时返回 (nil, nil)。
func (s *TabActivityService) Latest() (*db.TabActivity, error) {
	var entry db.TabActivity
	if err := s.db.Order("timestamp DESC").First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest tab activity: %w", err)
	}
	return &entry, nil
}
