package tracker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/studytimer/internal/service"
)

// sleepPollInterval 是系统睡眠期间重新探测的粗粒度间隔。
const sleepPollInterval = 30 * time.Second

// Config 汇总追踪循环的时间参数。
type Config struct {
	// Interval 是两次采样之间的间隔
	Interval time.Duration
	// IdleTimeout 是判定用户空闲的阈值
	IdleTimeout time.Duration
	// BreakThreshold 是强制切分会话的休息阈值
	BreakThreshold time.Duration
	// StatsEvery 表示每处理多少个周期重算一次每日统计
	StatsEvery int
}

// Tracker 是会话切分状态机与守护循环本体。
// 状态（当前会话指针、最近活动时间）全部挂在结构体上而非包级变量，
// 单线程顺序处理，每个周期恰好消费一条采样。
type Tracker struct {
	cfg        Config
	sampler    Sampler
	classifier *service.Classifier
	sessions   *service.SessionService
	stats      *service.StatsService
	tabs       *service.TabActivityService
	logger     *log.Logger

	now func() time.Time

	// 状态机状态：currentID 为 0 表示没有打开的会话；
	// pendingCloseAt 非零表示有一次失败的关闭欠着重试
	currentID       uint
	currentCategory service.Category
	lastActivity    time.Time
	pendingCloseAt  time.Time
	asleep          bool
	ticks           int
}

// New 构造 Tracker。
func New(
	cfg Config,
	sampler Sampler,
	classifier *service.Classifier,
	sessions *service.SessionService,
	stats *service.StatsService,
	tabs *service.TabActivityService,
	logger *log.Logger,
) *Tracker {
	return &Tracker{
		cfg:        cfg,
		sampler:    sampler,
		classifier: classifier,
		sessions:   sessions,
		stats:      stats,
		tabs:       tabs,
		logger:     logger,
		now:        time.Now,
	}
}

// Run 以固定间隔驱动追踪循环，直到 ctx 被取消。
// 取消时关闭打开的会话并重算当日统计后才返回。
func (t *Tracker) Run(ctx context.Context) error {
	// 上次进程异常退出可能遗留打开的会话，先兜底关闭
	if closed, err := t.sessions.CloseLeftovers(); err != nil {
		t.logger.Printf("error closing leftover sessions: %v", err)
	} else if closed > 0 {
		t.logger.Printf("closed %d leftover open session(s)", closed)
	}

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	t.logger.Printf("starting study tracking (interval %s)", t.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			t.shutdown()
			return nil
		case <-ticker.C:
			if t.sampler.IsSystemAsleep() {
				if !t.asleep {
					t.logger.Println("system asleep, tracking suspended")
					t.asleep = true
				}
				// 睡眠期间不处理任何采样，粗粒度轮询直到信号清除
				select {
				case <-ctx.Done():
					t.shutdown()
					return nil
				case <-time.After(sleepPollInterval):
				}
				continue
			}
			if t.asleep {
				t.logger.Println("system awake, tracking resumed")
				t.asleep = false
			}

			t.processTick(t.now())
		}
	}
}

// processTick 处理一个采样周期：门控检查、采样、分类、状态机迁移。
func (t *Tracker) processTick(now time.Time) {
	// 仪表盘页面不在前台时整个周期跳过：不记日志、不延长、也不关闭
	if t.tabGated() {
		return
	}

	sample, err := t.sampler.CurrentActivity()
	if err != nil {
		t.logger.Printf("sampler error: %v", err)
		return
	}
	if sample.AppName == "" {
		return
	}

	if t.sampler.IsIdle(t.cfg.IdleTimeout) {
		// 空闲时不延长；超过休息阈值则以最近一次活动时间收尾
		if t.currentID != 0 && !t.lastActivity.IsZero() &&
			now.Sub(t.lastActivity) > t.cfg.BreakThreshold {
			t.closeCurrent(t.lastActivity)
		}
		return
	}

	ts := sample.Timestamp
	if ts.IsZero() {
		ts = now
	}

	var rawURL, pageTitle string
	if t.classifier.IsBrowser(sample.AppName) {
		browser := t.sampler.BrowserActivity(sample.AppName)
		rawURL, pageTitle = browser.URL, browser.PageTitle
	}

	category := t.classifier.Classify(sample.AppName, rawURL)

	var project string
	if rawURL != "" {
		project = service.ExtractProjectName(rawURL, pageTitle)
	}

	if err := t.sessions.LogActivity(service.ActivityInput{
		Timestamp:   ts,
		AppName:     sample.AppName,
		WindowTitle: sample.WindowTitle,
		FilePath:    sample.FilePath,
		WebsiteURL:  rawURL,
	}); err != nil {
		t.logger.Printf("error logging activity: %v", err)
	}

	t.transition(ts, sample, rawURL, project, category)
	t.lastActivity = ts

	t.ticks++
	if t.cfg.StatsEvery > 0 && t.ticks%t.cfg.StatsEvery == 0 {
		if _, err := t.stats.Recompute(ts); err != nil {
			t.logger.Printf("error updating daily stats: %v", err)
		}
	}
}

// transition 执行状态机迁移。
// 会话表示一段最长的同类别连续活动：未跟踪活动既不延长也不终止，
// 真正的类别翻转或足够长的间隔才会切分。
func (t *Tracker) transition(ts time.Time, sample Sample, rawURL, project string, category service.Category) {
	// 距最近活动超过休息阈值：无条件先收尾，结束点取最近活动时间
	if t.currentID != 0 && !t.lastActivity.IsZero() &&
		ts.Sub(t.lastActivity) > t.cfg.BreakThreshold {
		t.pendingCloseAt = t.lastActivity
	}

	// 有欠着的关闭时先还账，还不上就整个周期跳过，绝不延长本该结束的会话
	if t.currentID != 0 && !t.pendingCloseAt.IsZero() {
		t.closeCurrent(t.pendingCloseAt)
		if t.currentID != 0 {
			return
		}
		t.pendingCloseAt = time.Time{}
	}

	switch {
	case t.currentID == 0:
		if category != service.CategoryNone {
			t.openNew(ts, sample, rawURL, project, category)
		}

	case category == service.CategoryNone:
		// 短暂切去未跟踪应用：保持打开但不延长

	case category != t.currentCategory:
		t.closeCurrent(ts)
		// 关闭失败时指针保留，下个周期重试，避免出现两条打开的会话
		if t.currentID == 0 {
			t.openNew(ts, sample, rawURL, project, category)
		}

	default:
		if err := t.sessions.Extend(t.currentID, service.SessionUpdate{
			AppName:     sample.AppName,
			WindowTitle: sample.WindowTitle,
			FilePath:    sample.FilePath,
			WebsiteURL:  rawURL,
			ProjectName: project,
			EndTime:     ts,
		}); err != nil {
			if errors.Is(err, service.ErrNoOpenSession) {
				t.currentID = 0
				return
			}
			t.logger.Printf("error extending session: %v", err)
		}
	}
}

// openNew 打开新会话并更新指针；失败时停留在空闲态等待下一条合格采样。
func (t *Tracker) openNew(ts time.Time, sample Sample, rawURL, project string, category service.Category) {
	sess, err := t.sessions.Start(service.SessionStart{
		AppName:           sample.AppName,
		WindowTitle:       sample.WindowTitle,
		FilePath:          sample.FilePath,
		WebsiteURL:        rawURL,
		ProjectName:       project,
		StartTime:         ts,
		IsStudy:           category == service.CategoryStudy,
		IsProcrastination: category == service.CategoryProcrastination,
	})
	if err != nil {
		t.logger.Printf("error starting session: %v", err)
		return
	}

	t.currentID = sess.ID
	t.currentCategory = category
	t.logger.Printf("new session: %s - %s", statusLabel(category), sample.AppName)
}

// closeCurrent 关闭当前会话；持久化失败时保留指针供下个周期重试。
func (t *Tracker) closeCurrent(endTime time.Time) {
	err := t.sessions.Close(t.currentID, endTime)
	if err != nil && !errors.Is(err, service.ErrNoOpenSession) {
		t.logger.Printf("error ending session: %v", err)
		return
	}

	t.currentID = 0
	t.currentCategory = service.CategoryNone
}

// tabGated 检查仪表盘最新的前台信号，inactive 时本周期跳过。
// 没有任何信号记录时不做门控。
func (t *Tracker) tabGated() bool {
	latest, err := t.tabs.Latest()
	if err != nil {
		t.logger.Printf("error reading tab activity: %v", err)
		return false
	}
	return latest != nil && !latest.IsActive
}

// shutdown 收尾：关闭打开的会话并重算当日统计。
func (t *Tracker) shutdown() {
	now := t.now()

	if t.currentID != 0 {
		end := now
		if !t.pendingCloseAt.IsZero() {
			end = t.pendingCloseAt
		}
		t.closeCurrent(end)
	}

	if _, err := t.stats.Recompute(now); err != nil {
		t.logger.Printf("error updating daily stats: %v", err)
	}

	t.logger.Println("tracker stopped")
}

// statusLabel 返回会话日志里的状态字样。
func statusLabel(category service.Category) string {
	switch category {
	case service.CategoryStudy:
		return "STUDYING"
	case service.CategoryProcrastination:
		return "PROCRASTINATING"
	default:
		return "WORKING"
	}
}
