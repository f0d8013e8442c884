package db

import (
	"time"

	"gorm.io/gorm"
)

// Session 定义了一段同类别连续活动的模型
// EndTime 为空表示会话仍处于打开状态，任一时刻最多只有一条打开的会话
// Duration 单位为秒：关闭后等于 end_time - start_time，打开期间保存"到目前为止"的时长，便于崩溃恢复
// IsStudy / IsProcrastination 互斥，持久化的会话恰好有一个为真
type Session struct {
	gorm.Model
	AppName           string `gorm:"not null;index"`
	WindowTitle       string
	FilePath          string
	WebsiteURL        string
	ProjectName       string
	StartTime         time.Time `gorm:"not null;index"`
	EndTime           *time.Time
	Duration          int  `gorm:"default:0"`
	IsStudy           bool `gorm:"default:false"`
	IsProcrastination bool `gorm:"default:false"`
}
