package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/studytimer/internal/db"
	"gorm.io/gorm"
)

// ErrNoOpenSession 在没有打开的会话可供操作时返回
var ErrNoOpenSession = errors.New("no open session")

// SessionService 负责 Session 与 ActivityLog 的全部写入，
// 追踪守护进程是这两张表唯一的写入方。
type SessionService struct {
	db *gorm.DB
}

// NewSessionService 构造 SessionService
func NewSessionService(gdb *gorm.DB) *SessionService {
	return &SessionService{db: gdb}
}

// SessionStart 描述打开一条新会话所需的字段。
type SessionStart struct {
	AppName           string
	WindowTitle       string
	FilePath          string
	WebsiteURL        string
	ProjectName       string
	StartTime         time.Time
	IsStudy           bool
	IsProcrastination bool
}

// Start 插入一条新的打开会话并返回。
func (s *SessionService) Start(in SessionStart) (*db.Session, error) {
	sess := db.Session{
		AppName:           in.AppName,
		WindowTitle:       in.WindowTitle,
		FilePath:          in.FilePath,
		WebsiteURL:        in.WebsiteURL,
		ProjectName:       in.ProjectName,
		StartTime:         in.StartTime,
		IsStudy:           in.IsStudy,
		IsProcrastination: in.IsProcrastination,
	}

	if err := s.db.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &sess, nil
}

// SessionUpdate 描述延长会话时要覆盖的描述性字段。
type SessionUpdate struct {
	AppName     string
	WindowTitle string
	FilePath    string
	WebsiteURL  string
	ProjectName string
	EndTime     time.Time
}

// Extend 延长打开的会话：刷新"到目前为止"的时长并用最新采样覆盖描述性字段。
// end_time 在关闭前保持为空，打开状态只靠它判定。
func (s *SessionService) Extend(id uint, in SessionUpdate) error {
	var sess db.Session
	if err := s.db.First(&sess, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoOpenSession
		}
		return fmt.Errorf("find session: %w", err)
	}

	sess.AppName = in.AppName
	sess.WindowTitle = in.WindowTitle
	sess.FilePath = in.FilePath
	sess.WebsiteURL = in.WebsiteURL
	sess.ProjectName = in.ProjectName
	sess.Duration = int(in.EndTime.Sub(sess.StartTime).Seconds())

	if err := s.db.Save(&sess).Error; err != nil {
		return fmt.Errorf("extend session: %w", err)
	}
	return nil
}

// Close 关闭会话并写入最终时长。
func (s *SessionService) Close(id uint, endTime time.Time) error {
	var sess db.Session
	if err := s.db.First(&sess, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoOpenSession
		}
		return fmt.Errorf("find session: %w", err)
	}

	sess.EndTime = &endTime
	sess.Duration = int(endTime.Sub(sess.StartTime).Seconds())

	if err := s.db.Save(&sess).Error; err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// CloseLeftovers 关闭所有遗留的打开会话（守护进程异常退出后的兜底），
// 返回受影响的行数。结束点取 start_time 加上已持久化的 duration，
// 宕机期间的时间不能算进会话。
func (s *SessionService) CloseLeftovers() (int64, error) {
	var leftovers []db.Session
	if err := s.db.Where("end_time IS NULL").Find(&leftovers).Error; err != nil {
		return 0, fmt.Errorf("find leftover sessions: %w", err)
	}

	for i := range leftovers {
		end := leftovers[i].StartTime.Add(time.Duration(leftovers[i].Duration) * time.Second)
		leftovers[i].EndTime = &end
		if err := s.db.Save(&leftovers[i]).Error; err != nil {
			return int64(i), fmt.Errorf("close leftover session: %w", err)
		}
	}

	return int64(len(leftovers)), nil
}

// Open 返回当前打开的会话，没有时返回 ErrNoOpenSession。
func (s *SessionService) Open() (*db.Session, error) {
	var sess db.Session
	if err := s.db.Where("end_time IS NULL").
		Order("start_time DESC").
		First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, fmt.Errorf("find open session: %w", err)
	}
	return &sess, nil
}

// ActivityInput 描述一条活动日志。
type ActivityInput struct {
	Timestamp   time.Time
	AppName     string
	WindowTitle string
	FilePath    string
	WebsiteURL  string
}

// LogActivity 追加一条活动日志。
func (s *SessionService) LogActivity(in ActivityInput) error {
	entry := db.ActivityLog{
		Timestamp:   in.Timestamp,
		AppName:     in.AppName,
		WindowTitle: in.WindowTitle,
		FilePath:    in.FilePath,
		WebsiteURL:  in.WebsiteURL,
		IsActive:    true,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// Recent 返回 since 之后开始的会话，新的在前。
func (s *SessionService) Recent(since time.Time, limit int) ([]db.Session, error) {
	var sessions []db.Session
	if err := s.db.Where("start_time >= ?", since).
		Order("start_time DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	return sessions, nil
}

// All 按开始时间升序返回全部会话，供导出使用。
func (s *SessionService) All() ([]db.Session, error) {
	var sessions []db.Session
	if err := s.db.Order("start_time ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list all sessions: %w", err)
	}
	return sessions, nil
}
