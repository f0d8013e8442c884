//go:build darwin

package tracker

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// osascriptTimeout 限制每次 AppleScript 调用的耗时。
const osascriptTimeout = 2 * time.Second

// browserTabSplit 是 AppleScript 返回值里网址与标题的分隔标记。
const browserTabSplit = "|SPLIT|"

// chromiumTabScript 适用于 Chrome 系浏览器（Chrome/Arc/Comet）。
const chromiumTabScript = `
tell application "%s"
	if (count of windows) > 0 then
		set currentTab to active tab of front window
		set currentURL to URL of currentTab
		set currentTitle to title of currentTab
		return currentURL & "|SPLIT|" & currentTitle
	end if
end tell
`

// safariTabScript 适用于 Safari。
const safariTabScript = `
tell application "Safari"
	if (count of windows) > 0 then
		set currentURL to URL of current tab of front window
		set currentTitle to name of current tab of front window
		return currentURL & "|SPLIT|" & currentTitle
	end if
end tell
`

const frontAppScript = `tell application "System Events" to get name of first application process whose frontmost is true`

const frontWindowScript = `tell application "System Events" to tell (first application process whose frontmost is true) to get name of front window`

var (
	hidIdleRe    = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)
	powerStateRe = regexp.MustCompile(`"DevicePowerState"\s*=\s*(\d+)`)
)

// macSampler 通过 osascript / ioreg 采样 macOS 前台活动。
// 所有调用都带超时且失败返回零值，保证循环不被卡住。
type macSampler struct{}

// NewPlatformSampler 返回 macOS 的活动采样器。
func NewPlatformSampler() Sampler {
	return &macSampler{}
}

func (m *macSampler) CurrentActivity() (Sample, error) {
	appName, err := runOsascript(frontAppScript)
	if err != nil {
		return Sample{}, err
	}

	// 窗口标题拿不到不算错误
	windowTitle, _ := runOsascript(frontWindowScript)

	return Sample{
		Timestamp:   time.Now(),
		AppName:     appName,
		WindowTitle: windowTitle,
		FilePath:    ExtractFilePath(windowTitle, appName),
	}, nil
}

func (m *macSampler) IsIdle(threshold time.Duration) bool {
	idle, ok := hidIdleTime()
	return ok && idle > threshold
}

func (m *macSampler) BrowserActivity(appName string) BrowserSample {
	var script string

	switch appName {
	case "Google Chrome", "Arc", "Comet":
		script = strings.Replace(chromiumTabScript, "%s", appName, 1)
	case "Safari":
		script = safariTabScript
	default:
		// Firefox 不暴露 AppleScript 接口，只能依赖窗口标题
		return BrowserSample{}
	}

	output, err := runOsascript(script)
	if err != nil {
		return BrowserSample{}
	}

	parts := strings.SplitN(output, browserTabSplit, 2)
	if len(parts) != 2 {
		return BrowserSample{}
	}

	return BrowserSample{
		URL:       strings.TrimSpace(parts[0]),
		PageTitle: strings.TrimSpace(parts[1]),
	}
}

func (m *macSampler) IsSystemAsleep() bool {
	ctx, cancel := context.WithTimeout(context.Background(), osascriptTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ioreg", "-n", "IODisplayWrangler", "-r", "-d", "1").Output()
	if err != nil {
		return false
	}

	match := powerStateRe.FindStringSubmatch(string(out))
	if match == nil {
		return false
	}

	state, err := strconv.Atoi(match[1])
	if err != nil {
		return false
	}

	// 显示器电源状态 <= 1 视为睡眠/锁屏
	return state <= 1
}

// hidIdleTime 读取 HID 空闲时间（纳秒）。
func hidIdleTime() (time.Duration, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), osascriptTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem").Output()
	if err != nil {
		return 0, false
	}

	match := hidIdleRe.FindStringSubmatch(string(out))
	if match == nil {
		return 0, false
	}

	ns, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(ns), true
}

func runOsascript(script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), osascriptTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}
