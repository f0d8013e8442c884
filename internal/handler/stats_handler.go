package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studytimer/internal/service"
)

// reportRangeDays 是应用/网站/文件榜单的默认统计区间（含当天共 7 天）。
const reportRangeDays = 6

// GetToday 返回今天的每日统计；还没有数据时返回零值结构而不是错误。
func (a *API) GetToday(c *gin.Context) {
	stat, err := a.stats.ForDate(service.DateKey(time.Now()))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"study_time":                     0,
			"study_time_formatted":           "0m",
			"procrastination_time":           0,
			"procrastination_time_formatted": "0m",
			"total_sessions":                 0,
			"most_used_app":                  "",
			"quote":                          a.stats.RandomQuote(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"study_time":                     stat.TotalStudyTime,
		"study_time_formatted":           formatDuration(stat.TotalStudyTime),
		"procrastination_time":           stat.TotalProcrastinationTime,
		"procrastination_time_formatted": formatDuration(stat.TotalProcrastinationTime),
		"total_sessions":                 stat.TotalSessions,
		"most_used_app":                  stat.MostUsedApp,
		"quote":                          stat.Quote,
	})
}

// GetWeek 返回最近 7 天的统计，缺失日期补零。
func (a *API) GetWeek(c *gin.Context) {
	days, err := a.stats.LastNDays(7, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load weekly stats")
		return
	}

	data := make([]gin.H, 0, len(days))
	for _, day := range days {
		parsed, parseErr := time.Parse("2006-01-02", day.Date)
		weekday := ""
		if parseErr == nil {
			weekday = parsed.Format("Mon")
		}
		data = append(data, gin.H{
			"date":                 day.Date,
			"day":                  weekday,
			"study_time":           day.TotalStudyTime,
			"procrastination_time": day.TotalProcrastinationTime,
		})
	}

	c.JSON(http.StatusOK, data)
}

// GetTopApps 返回最近一周学习时长最高的应用。
func (a *API) GetTopApps(c *gin.Context) {
	now := time.Now()
	rows, err := a.stats.TopApps(now.AddDate(0, 0, -reportRangeDays), now, 10)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load app stats")
		return
	}

	data := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		data = append(data, gin.H{
			"app_name":           row.AppName,
			"duration":           row.TotalDuration,
			"duration_formatted": formatDuration(row.TotalDuration),
			"session_count":      row.SessionCount,
		})
	}

	c.JSON(http.StatusOK, data)
}

// GetStudyWebsites 返回最近一周学习类网站的访问榜单。
func (a *API) GetStudyWebsites(c *gin.Context) {
	a.topWebsites(c, service.CategoryStudy)
}

// GetProcrastinationWebsites 返回最近一周摸鱼类网站的访问榜单。
func (a *API) GetProcrastinationWebsites(c *gin.Context) {
	a.topWebsites(c, service.CategoryProcrastination)
}

func (a *API) topWebsites(c *gin.Context, category service.Category) {
	now := time.Now()
	rows, err := a.stats.TopWebsites(now.AddDate(0, 0, -reportRangeDays), now, category, 15)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load website stats")
		return
	}

	data := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		data = append(data, gin.H{
			"domain":             displayDomain(row.WebsiteURL),
			"url":                row.WebsiteURL,
			"duration":           row.TotalDuration,
			"duration_formatted": formatDuration(row.TotalDuration),
			"visit_count":        row.VisitCount,
		})
	}

	c.JSON(http.StatusOK, data)
}

// GetRecentFiles 返回最近一周处理过的文件。
func (a *API) GetRecentFiles(c *gin.Context) {
	now := time.Now()
	rows, err := a.stats.RecentFiles(now.AddDate(0, 0, -reportRangeDays), now, 20)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load file stats")
		return
	}

	data := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		data = append(data, gin.H{
			"file_path":          row.FilePath,
			"app_name":           row.AppName,
			"duration":           row.TotalDuration,
			"duration_formatted": formatDuration(row.TotalDuration),
			"last_worked":        row.LastWorked,
		})
	}

	c.JSON(http.StatusOK, data)
}

// GetRecentSessions 返回最近 24 小时的会话，新的在前。
func (a *API) GetRecentSessions(c *gin.Context) {
	sessions, err := a.sessions.Recent(time.Now().Add(-24*time.Hour), 50)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load recent sessions")
		return
	}

	data := make([]gin.H, 0, len(sessions))
	for _, sess := range sessions {
		data = append(data, gin.H{
			"app_name":           sess.AppName,
			"window_title":       sess.WindowTitle,
			"file_path":          sess.FilePath,
			"website_url":        sess.WebsiteURL,
			"website_domain":     displayDomain(sess.WebsiteURL),
			"project_name":       sess.ProjectName,
			"start_time":         sess.StartTime,
			"end_time":           sess.EndTime,
			"duration":           sess.Duration,
			"duration_formatted": formatDuration(sess.Duration),
			"is_study":           sess.IsStudy,
			"is_procrastination": sess.IsProcrastination,
		})
	}

	c.JSON(http.StatusOK, data)
}

// GetSummary 返回全历史汇总：总时长、日均、最佳日与连续学习天数。
func (a *API) GetSummary(c *gin.Context) {
	summary, err := a.stats.Overview()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_study_time":           summary.TotalStudyTime,
		"total_study_time_formatted": formatDuration(summary.TotalStudyTime),
		"avg_daily_study":            summary.AvgDailyStudy,
		"avg_daily_study_formatted":  formatDuration(summary.AvgDailyStudy),
		"best_day_date":              summary.BestDayDate,
		"best_day_time":              summary.BestDayTime,
		"best_day_time_formatted":    formatDuration(summary.BestDayTime),
		"current_streak":             summary.CurrentStreak,
	})
}
