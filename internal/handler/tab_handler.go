package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName   = "studytimer_visitor"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

type tabActivityRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// PostTabActivity 追加一条仪表盘前台信号，追踪端按"最新一条生效"读取。
func (a *API) PostTabActivity(c *gin.Context) {
	var req tabActivityRequest
	if !bindJSON(c, &req, "is_active is required") {
		return
	}

	if err := a.tabs.Record(a.ensureVisitorID(c), *req.IsActive, time.Now()); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to record tab activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}
