//go:build !darwin

package tracker

import (
	"errors"
	"time"
)

var errUnsupportedPlatform = errors.New("activity sampling is only implemented on macOS")

// stubSampler 在不支持的平台上让守护进程按"本周期无活动"降级运行。
type stubSampler struct{}

// NewPlatformSampler 返回当前平台的活动采样器。
func NewPlatformSampler() Sampler {
	return &stubSampler{}
}

func (s *stubSampler) CurrentActivity() (Sample, error) {
	return Sample{}, errUnsupportedPlatform
}

func (s *stubSampler) IsIdle(time.Duration) bool { return false }

func (s *stubSampler) BrowserActivity(string) BrowserSample { return BrowserSample{} }

func (s *stubSampler) IsSystemAsleep() bool { return false }
