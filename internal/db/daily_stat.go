package db

import "gorm.io/gorm"

// DailyStat 按日期汇总会话数据，是可随时从 Session 重建的物化视图
// Date 采用 YYYY-MM-DD 文本作为唯一键，时长单位为秒
// MostUsedApp / Quote 为展示用字段，不参与任何判定
type DailyStat struct {
	gorm.Model
	Date                     string `gorm:"uniqueIndex;not null"`
	TotalStudyTime           int    `gorm:"default:0"`
	TotalProcrastinationTime int    `gorm:"default:0"`
	TotalSessions            int    `gorm:"default:0"`
	MostUsedApp              string
	Quote                    string
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (DailyStat) TableName() string {
	return "daily_stats"
}
