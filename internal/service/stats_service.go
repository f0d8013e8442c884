package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/studytimer/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dateLayout 是 daily_stats.date 的存储格式。
const dateLayout = "2006-01-02"

// StatsService 负责把 Session 行汇总成每日统计，并承担仪表盘的聚合查询。
// DailyStat 只是物化视图：Recompute 总能从会话数据整体重建。
type StatsService struct {
	db     *gorm.DB
	quotes []string
}

// NewStatsService 构造 StatsService，quotes 用于每日统计的轮换语录。
func NewStatsService(gdb *gorm.DB, quotes []string) *StatsService {
	return &StatsService{db: gdb, quotes: quotes}
}

// DateKey 返回某时刻所属日期的存储键。
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// Recompute 从当天的会话整体重算每日统计并按日期键 upsert，
// 不会产生重复行。
func (s *StatsService) Recompute(day time.Time) (*db.DailyStat, error) {
	date := DateKey(day)

	var totals struct {
		StudyTime           int
		ProcrastinationTime int
		SessionCount        int
	}

	err := s.db.Model(&db.Session{}).
		Select(
			"COALESCE(SUM(CASE WHEN is_study THEN duration ELSE 0 END), 0) AS study_time, " +
				"COALESCE(SUM(CASE WHEN is_procrastination THEN duration ELSE 0 END), 0) AS procrastination_time, " +
				"COUNT(*) AS session_count",
		).
		Where("DATE(start_time) = ?", date).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("sum sessions: %w", err)
	}

	mostUsed, err := s.mostUsedApp(date)
	if err != nil {
		return nil, err
	}

	stat := db.DailyStat{
		Date:                     date,
		TotalStudyTime:           totals.StudyTime,
		TotalProcrastinationTime: totals.ProcrastinationTime,
		TotalSessions:            totals.SessionCount,
		MostUsedApp:              mostUsed,
		Quote:                    s.RandomQuote(),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_study_time",
			"total_procrastination_time",
			"total_sessions",
			"most_used_app",
			"quote",
			"updated_at",
		}),
	}).Create(&stat).Error; err != nil {
		return nil, fmt.Errorf("upsert daily stats: %w", err)
	}

	return &stat, nil
}

// mostUsedApp 返回当天学习时长最高的应用，没有数据时为空串。
func (s *StatsService) mostUsedApp(date string) (string, error) {
	var row struct{ AppName string }

	err := s.db.Model(&db.Session{}).
		Select("app_name").
		Where("DATE(start_time) = ? AND is_study", date).
		Group("app_name").
		Order("SUM(duration) DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", fmt.Errorf("most used app: %w", err)
	}
	return row.AppName, nil
}

// ForDate 返回指定日期的每日统计，没有时返回 gorm.ErrRecordNotFound。
func (s *StatsService) ForDate(date string) (*db.DailyStat, error) {
	var stat db.DailyStat
	if err := s.db.Where("date = ?", date).First(&stat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find daily stats: %w", err)
	}
	return &stat, nil
}

// LastNDays 返回以 today 结尾的连续 n 天统计，缺失的日期补零行，
// 日期升序。
func (s *StatsService) LastNDays(n int, today time.Time) ([]db.DailyStat, error) {
	first := today.AddDate(0, 0, -(n - 1))

	var rows []db.DailyStat
	if err := s.db.Where("date BETWEEN ? AND ?", DateKey(first), DateKey(today)).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}

	byDate := make(map[string]db.DailyStat, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	filled := make([]db.DailyStat, 0, n)
	for i := 0; i < n; i++ {
		date := DateKey(first.AddDate(0, 0, i))
		if row, ok := byDate[date]; ok {
			filled = append(filled, row)
		} else {
			filled = append(filled, db.DailyStat{Date: date})
		}
	}

	return filled, nil
}

// AppUsage 描述一个应用在统计区间内的使用情况。
type AppUsage struct {
	AppName       string
	TotalDuration int
	SessionCount  int
}

// TopApps 返回区间内学习时长最高的应用。
func (s *StatsService) TopApps(from, to time.Time, limit int) ([]AppUsage, error) {
	var rows []AppUsage
	err := s.db.Model(&db.Session{}).
		Select("app_name, SUM(duration) AS total_duration, COUNT(*) AS session_count").
		Where("DATE(start_time) BETWEEN ? AND ? AND is_study", DateKey(from), DateKey(to)).
		Group("app_name").
		Order("total_duration DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top apps: %w", err)
	}
	return rows, nil
}

// WebsiteUsage 描述一个网址在统计区间内的访问情况。
type WebsiteUsage struct {
	WebsiteURL    string
	TotalDuration int
	VisitCount    int
}

// TopWebsites 返回区间内指定类别下访问时长最高的网址。
func (s *StatsService) TopWebsites(from, to time.Time, category Category, limit int) ([]WebsiteUsage, error) {
	query := s.db.Model(&db.Session{}).
		Select("website_url, SUM(duration) AS total_duration, COUNT(*) AS visit_count").
		Where("DATE(start_time) BETWEEN ? AND ?", DateKey(from), DateKey(to)).
		Where("website_url <> ''")

	switch category {
	case CategoryStudy:
		query = query.Where("is_study")
	case CategoryProcrastination:
		query = query.Where("is_procrastination")
	}

	var rows []WebsiteUsage
	if err := query.Group("website_url").
		Order("total_duration DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("top websites: %w", err)
	}
	return rows, nil
}

// FileUsage 描述最近处理过的文件。
// LastWorked 保留 MAX(start_time) 的原始文本：聚合列在 sqlite 里
// 失去时间类型，按字符串扫描（同一库内仍可按字典序排序）。
type FileUsage struct {
	FilePath      string
	AppName       string
	TotalDuration int
	LastWorked    string
}

// RecentFiles 返回区间内学习会话里最近处理过的文件。
func (s *StatsService) RecentFiles(from, to time.Time, limit int) ([]FileUsage, error) {
	var rows []FileUsage
	err := s.db.Model(&db.Session{}).
		Select("file_path, app_name, SUM(duration) AS total_duration, MAX(start_time) AS last_worked").
		Where("DATE(start_time) BETWEEN ? AND ?", DateKey(from), DateKey(to)).
		Where("file_path <> '' AND is_study").
		Group("file_path, app_name").
		Order("last_worked DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent files: %w", err)
	}
	return rows, nil
}

// Summary 汇总全部历史的学习数据。
type Summary struct {
	TotalStudyTime int
	AvgDailyStudy  int
	BestDayDate    string
	BestDayTime    int
	CurrentStreak  int
}

// Overview 返回全历史汇总：总学习时长、非零日均值、最佳日，
// 以及从最新日期往回数、遇到零学习日即止的连续学习天数。
func (s *StatsService) Overview() (*Summary, error) {
	var summary Summary

	err := s.db.Model(&db.DailyStat{}).
		Select("COALESCE(SUM(total_study_time), 0)").
		Scan(&summary.TotalStudyTime).Error
	if err != nil {
		return nil, fmt.Errorf("total study time: %w", err)
	}

	var avg float64
	err = s.db.Model(&db.DailyStat{}).
		Select("COALESCE(AVG(total_study_time), 0)").
		Where("total_study_time > 0").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("average study time: %w", err)
	}
	summary.AvgDailyStudy = int(avg)

	var best db.DailyStat
	err = s.db.Order("total_study_time DESC").Limit(1).Find(&best).Error
	if err != nil {
		return nil, fmt.Errorf("best day: %w", err)
	}
	summary.BestDayDate = best.Date
	summary.BestDayTime = best.TotalStudyTime

	var days []db.DailyStat
	if err := s.db.Order("date DESC").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("streak scan: %w", err)
	}
	for _, day := range days {
		if day.TotalStudyTime == 0 {
			break
		}
		summary.CurrentStreak++
	}

	return &summary, nil
}

// RandomQuote 返回一条随机语录，名单为空时返回空串。
func (s *StatsService) RandomQuote() string {
	if len(s.quotes) == 0 {
		return ""
	}
	return s.quotes[rand.Intn(len(s.quotes))]
}
