package db

import (
	"time"

	"gorm.io/gorm"
)

// TabActivity 记录仪表盘页面是否处于前台的信号，只追加
// 追踪端只读取最新一条记录来决定是否暂停计时
type TabActivity struct {
	gorm.Model
	Timestamp time.Time `gorm:"not null;index"`
	IsActive  bool      `gorm:"not null"`
	VisitorID string    `gorm:"size:64"`
}

// TableName 保持与历史数据库一致的表名
func (TabActivity) TableName() string {
	return "tab_activity"
}
