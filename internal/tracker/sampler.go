// Package tracker 驱动采样-分类-会话切分的守护循环。
package tracker

import (
	"strings"
	"time"
)

// Sample 是一次采样周期得到的前台活动快照。
// 除 AppName 外的字段都是尽力而为：空串表示不可用。
type Sample struct {
	Timestamp   time.Time
	AppName     string
	WindowTitle string
	FilePath    string
}

// BrowserSample 是浏览器前台标签页的快照，字段可能为空。
type BrowserSample struct {
	URL       string
	PageTitle string
}

// Sampler 抽象操作系统层的活动采样，追踪循环每个周期调用一次。
// 所有方法都是尽力而为：失败用零值/错误表达，绝不中断循环。
type Sampler interface {
	// CurrentActivity 返回当前前台活动快照。
	CurrentActivity() (Sample, error)
	// IsIdle 判断用户空闲是否超过阈值。
	IsIdle(threshold time.Duration) bool
	// BrowserActivity 返回指定浏览器当前标签页的网址与标题。
	BrowserActivity(appName string) BrowserSample
	// IsSystemAsleep 判断系统是否处于睡眠/锁屏，失败时默认未睡眠。
	IsSystemAsleep() bool
}

// titleSeparators 是窗口标题里常见的"文件名 - 应用名"分隔符。
var titleSeparators = []string{" - ", " — ", " – ", " | "}

// ExtractFilePath 尽力从窗口标题推测文件或文档名。
// 带扩展名的首段优先；Notes 与 Obsidian 的标题本身就是笔记名。
func ExtractFilePath(windowTitle, appName string) string {
	if windowTitle == "" {
		return ""
	}

	for _, sep := range titleSeparators {
		if !strings.Contains(windowTitle, sep) {
			continue
		}
		candidate := strings.TrimSpace(strings.SplitN(windowTitle, sep, 2)[0])
		if strings.Contains(candidate, ".") {
			return candidate
		}
	}

	if appName == "Notes" {
		return windowTitle
	}

	if appName == "Obsidian" && windowTitle != "Obsidian" {
		return windowTitle
	}

	return ""
}
