package api

import (
	"academy/internal/auth"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	sessionContextKey = "current-session"
)

// SessionMiddleware 从 cookie 还原会话；无效或缺失时上下文中不放任何会话
func (h *HTTPHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cfg.SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		session, err := h.sessions.Validate(ctx, token)
		cancel()
		if err != nil {
			entry := logrus.WithError(err).WithField("path", c.Request.URL.Path)
			if errors.Is(err, auth.ErrInvalidSession) || errors.Is(err, auth.ErrSessionRevoked) {
				entry.Debug("ignoring session cookie")
			} else {
				entry.Warn("failed to validate session")
			}
			c.Next()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// GateMiddleware 根据路径与会话决定放行或跳转登录页
func (h *HTTPHandler) GateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := auth.AuthorizeRequest(c.Request.URL.Path, CurrentSession(c))
		if decision.Action == auth.Redirect {
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession 从上下文获取当前会话
func CurrentSession(c *gin.Context) *auth.Session {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	session, ok := value.(*auth.Session)
	if !ok {
		return nil
	}
	return session
}
