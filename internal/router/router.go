package router

import (
	"github.com/gin-gonic/gin"
	"github.com/studytimer/internal/handler"
)

// SetupRouter 配置 Gin 引擎和仪表盘路由
func SetupRouter(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 只读统计接口 + 前台信号写入
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/today", api.GetToday)
		apiGroup.GET("/week", api.GetWeek)
		apiGroup.GET("/apps", api.GetTopApps)
		apiGroup.GET("/websites/study", api.GetStudyWebsites)
		apiGroup.GET("/websites/procrastination", api.GetProcrastinationWebsites)
		apiGroup.GET("/files", api.GetRecentFiles)
		apiGroup.GET("/recent_sessions", api.GetRecentSessions)
		apiGroup.GET("/stats/summary", api.GetSummary)
		apiGroup.GET("/export", api.ExportSessions)
		apiGroup.POST("/tab_activity", api.PostTabActivity)
	}

	return r
}
