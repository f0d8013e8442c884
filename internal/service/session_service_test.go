package service

import (
	"errors"
	"testing"
	"time"

	"github.com/studytimer/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSessionTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Session{}, &db.ActivityLog{}, &db.DailyStat{}, &db.TabActivity{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSessionServiceStartExtendClose(t *testing.T) {
	cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewSessionService(db.DB)
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	sess, err := svc.Start(SessionStart{
		AppName:     "Obsidian",
		WindowTitle: "chemistry.md",
		FilePath:    "chemistry.md",
		StartTime:   start,
		IsStudy:     true,
	})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if sess.ID == 0 {
		t.Fatal("expected session to have ID")
	}
	if sess.EndTime != nil {
		t.Fatal("new session must be open")
	}

	err = svc.Extend(sess.ID, SessionUpdate{
		AppName:     "Obsidian",
		WindowTitle: "physics.md",
		FilePath:    "physics.md",
		EndTime:     start.Add(10 * time.Second),
	})
	if err != nil {
		t.Fatalf("Extend returned error: %v", err)
	}

	open, err := svc.Open()
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if open.ID != sess.ID {
		t.Fatalf("unexpected open session: %d", open.ID)
	}
	// 延长只持久化时长，end_time 在关闭前保持为空
	if open.EndTime != nil {
		t.Fatalf("extend must not set end_time, got %v", open.EndTime)
	}
	if open.Duration != 10 {
		t.Fatalf("unexpected duration after extend: %d", open.Duration)
	}
	if open.FilePath != "physics.md" {
		t.Fatalf("descriptive fields not refreshed: %s", open.FilePath)
	}

	if err := svc.Close(sess.ID, start.Add(25*time.Second)); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	var closed db.Session
	if err := db.DB.First(&closed, sess.ID).Error; err != nil {
		t.Fatalf("failed to load closed session: %v", err)
	}
	if closed.EndTime == nil {
		t.Fatal("session should be closed")
	}
	if closed.Duration != 25 {
		t.Fatalf("unexpected final duration: %d", closed.Duration)
	}
	if got := int(closed.EndTime.Sub(closed.StartTime).Seconds()); got != closed.Duration {
		t.Fatalf("duration %d does not match end-start %d", closed.Duration, got)
	}

	if _, err := svc.Open(); !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession after close, got %v", err)
	}
}

func TestSessionServiceMissingSession(t *testing.T) {
	cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewSessionService(db.DB)

	if err := svc.Extend(99, SessionUpdate{EndTime: time.Now()}); !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession from Extend, got %v", err)
	}
	if err := svc.Close(99, time.Now()); !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession from Close, got %v", err)
	}
}

func TestSessionServiceCloseLeftovers(t *testing.T) {
	cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewSessionService(db.DB)
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	// 一条刚打开还没延长过的会话，一条已经延长到 5 分钟的会话
	fresh, err := svc.Start(SessionStart{AppName: "Terminal", StartTime: start, IsStudy: true})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	extended, err := svc.Start(SessionStart{AppName: "Obsidian", StartTime: start.Add(time.Minute), IsStudy: true})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := svc.Extend(extended.ID, SessionUpdate{
		AppName: "Obsidian",
		EndTime: extended.StartTime.Add(5 * time.Minute),
	}); err != nil {
		t.Fatalf("Extend returned error: %v", err)
	}

	affected, err := svc.CloseLeftovers()
	if err != nil {
		t.Fatalf("CloseLeftovers returned error: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 leftover sessions closed, got %d", affected)
	}

	var openCount int64
	db.DB.Model(&db.Session{}).Where("end_time IS NULL").Count(&openCount)
	if openCount != 0 {
		t.Fatalf("expected no open sessions, found %d", openCount)
	}

	// 结束点必须是开始时间加已持久化的时长，宕机的时间不计入
	var got db.Session
	if err := db.DB.First(&got, fresh.ID).Error; err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if got.EndTime == nil || !got.EndTime.Equal(got.StartTime) {
		t.Fatalf("unextended leftover must close at its start time, got %v", got.EndTime)
	}
	got = db.Session{}
	if err := db.DB.First(&got, extended.ID).Error; err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if got.EndTime == nil || !got.EndTime.Equal(got.StartTime.Add(5*time.Minute)) {
		t.Fatalf("extended leftover must close at start+duration, got %v", got.EndTime)
	}
	if want := int(got.EndTime.Sub(got.StartTime).Seconds()); want != got.Duration {
		t.Fatalf("duration %d does not match end-start %d", got.Duration, want)
	}

	// 再跑一次应当没有可关的行
	affected, err = svc.CloseLeftovers()
	if err != nil {
		t.Fatalf("CloseLeftovers returned error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected no rows affected, got %d", affected)
	}
}

func TestSessionServiceRecentOrdering(t *testing.T) {
	cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewSessionService(db.DB)
	base := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		sess, err := svc.Start(SessionStart{
			AppName:   "Safari",
			StartTime: base.Add(time.Duration(i) * time.Hour),
			IsStudy:   true,
		})
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
		if err := svc.Close(sess.ID, base.Add(time.Duration(i)*time.Hour+30*time.Minute)); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	}

	recent, err := svc.Recent(base.Add(30*time.Minute), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions after cutoff, got %d", len(recent))
	}
	if !recent[0].StartTime.After(recent[1].StartTime) {
		t.Fatal("expected newest session first")
	}
}

func TestSessionServiceLogActivity(t *testing.T) {
	cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewSessionService(db.DB)

	err := svc.LogActivity(ActivityInput{
		Timestamp:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		AppName:     "Google Chrome",
		WindowTitle: "Haber process - Wikipedia",
		WebsiteURL:  "https://en.wikipedia.org/wiki/Haber_process",
	})
	if err != nil {
		t.Fatalf("LogActivity returned error: %v", err)
	}

	var entry db.ActivityLog
	if err := db.DB.First(&entry).Error; err != nil {
		t.Fatalf("failed to load activity log: %v", err)
	}
	if entry.AppName != "Google Chrome" || !entry.IsActive {
		t.Fatalf("unexpected activity log row: %+v", entry)
	}
}
