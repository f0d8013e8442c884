package db

import (
	"time"

	"gorm.io/gorm"
)

// ActivityLog 记录每个采样周期的原始活动快照，只追加不修改
// 仅用于审计与排查，核心逻辑不会读取该表
type ActivityLog struct {
	gorm.Model
	Timestamp   time.Time `gorm:"not null;index"`
	AppName     string    `gorm:"not null"`
	WindowTitle string
	FilePath    string
	WebsiteURL  string
	IsActive    bool `gorm:"default:true"`
}

// TableName 保持与历史数据库一致的表名
func (ActivityLog) TableName() string {
	return "activity_log"
}
