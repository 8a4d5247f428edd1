package api

import (
	"academy/internal/auth"
	"academy/internal/entity"
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultCallback = auth.AdminPathPrefix

// SignInPage describes the credentials form.
func (h *HTTPHandler) SignInPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"provider":    "credentials",
		"fields":      []string{"email", "password"},
		"callbackUrl": safeCallback(c.Query("callbackUrl")),
	})
}

func (h *HTTPHandler) SignIn(c *gin.Context) {
	var req entity.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logrus.WithField("client_ip", c.ClientIP()).Warn("invalid credentials")
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, msgInvalidCredentials)
			return
		}
		logrus.WithError(err).Error("failed to authenticate")
		InternalError(c)
		return
	}

	token, expiresAt, err := h.sessions.Mint(user)
	if err != nil {
		logrus.WithError(err).Error("failed to mint session")
		InternalError(c)
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	logrus.WithField("user_id", user.ID).Info("admin signed in")
	c.JSON(http.StatusOK, entity.SignInResponse{
		User:      user,
		ExpiresAt: expiresAt,
		Redirect:  safeCallback(req.CallbackURL),
	})
}

func (h *HTTPHandler) SignOut(c *gin.Context) {
	if session := CurrentSession(c); session != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		if err := h.sessions.Revoke(ctx, session); err != nil {
			logrus.WithError(err).WithField("user_id", session.ID).Warn("failed to revoke session")
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports the signed-in user, or an empty object.
func (h *HTTPHandler) Session(c *gin.Context) {
	session := CurrentSession(c)
	if session == nil {
		c.JSON(http.StatusOK, entity.SessionResponse{})
		return
	}
	user := session.User()
	expiresAt := session.ExpiresAt
	c.JSON(http.StatusOK, entity.SessionResponse{User: &user, ExpiresAt: &expiresAt})
}

func (h *HTTPHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, value, maxAge, "/", "", h.cfg.SessionSecure, true)
}

// safeCallback only allows same-site paths outside the authentication service.
func safeCallback(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return defaultCallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultCallback
	}
	cleaned := path.Clean(u.Path)
	if cleaned == auth.AuthPathPrefix || strings.HasPrefix(cleaned, auth.AuthPathPrefix+"/") {
		return defaultCallback
	}
	if u.RawQuery != "" {
		return cleaned + "?" + u.RawQuery
	}
	return cleaned
}
