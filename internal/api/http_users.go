package api

import (
	"academy/internal/entity"
	"academy/internal/service"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListAdminUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.admins.List(ctx, CurrentSession(c))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) CreateAdminUser(c *gin.Context) {
	var req entity.AdminUserCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.admins.Create(ctx, CurrentSession(c), req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": service.MsgAdminCreated,
		"user":    user,
	})
}

func (h *HTTPHandler) DeleteAdminUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.admins.Delete(ctx, CurrentSession(c), c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": service.MsgUserDeleted})
}

func (h *HTTPHandler) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.dashboard.Dashboard(ctx, CurrentSession(c))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
