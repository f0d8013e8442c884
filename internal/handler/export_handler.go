package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ExportSessions 把全部会话导出为 CSV 附件。
func (a *API) ExportSessions(c *gin.Context) {
	sessions, err := a.sessions.All()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to export sessions")
		return
	}

	filename := fmt.Sprintf("studytimer_sessions_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{
		"id", "app_name", "window_title", "file_path", "website_url",
		"project_name", "start_time", "end_time", "duration",
		"is_study", "is_procrastination",
	}
	if err := writer.Write(header); err != nil {
		return
	}

	for _, sess := range sessions {
		endTime := ""
		if sess.EndTime != nil {
			endTime = sess.EndTime.Format(time.RFC3339)
		}

		record := []string{
			strconv.FormatUint(uint64(sess.ID), 10),
			sess.AppName,
			sess.WindowTitle,
			sess.FilePath,
			sess.WebsiteURL,
			sess.ProjectName,
			sess.StartTime.Format(time.RFC3339),
			endTime,
			strconv.Itoa(sess.Duration),
			strconv.FormatBool(sess.IsStudy),
			strconv.FormatBool(sess.IsProcrastination),
		}
		if err := writer.Write(record); err != nil {
			return
		}
	}
}
