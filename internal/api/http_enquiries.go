package api

import (
	"academy/internal/entity"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SubmitEnquiry accepts the public contact form as form data or JSON.
func (h *HTTPHandler) SubmitEnquiry(c *gin.Context) {
	var sub entity.EnquirySubmission
	if err := c.ShouldBind(&sub); err != nil {
		InvalidPayload(c)
		return
	}
	sub.RemoteIP = c.ClientIP()

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout+time.Second)
	defer cancel()

	resp, err := h.enquiries.Submit(ctx, sub)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HTTPHandler) ListEnquiries(c *gin.Context) {
	var query entity.EnquiryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.enquiries.List(ctx, CurrentSession(c), query)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportEnquiries downloads the filtered view as CSV; repeated ids= narrow it to a selection.
func (h *HTTPHandler) ExportEnquiries(c *gin.Context) {
	var query entity.EnquiryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	data, count, err := h.enquiries.ExportCSV(ctx, CurrentSession(c), query, c.QueryArray("ids"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("enquiries-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Total-Count", strconv.Itoa(count))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *HTTPHandler) ArchiveEnquiries(c *gin.Context) {
	var query entity.EnquiryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	// 上传对象存储可能较慢
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	resp, err := h.enquiries.Archive(ctx, CurrentSession(c), query)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HTTPHandler) DeleteEnquiries(c *gin.Context) {
	var req entity.EnquiryDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	count, err := h.enquiries.BulkDelete(ctx, CurrentSession(c), req.IDs)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.EnquiryDeleteResponse{Success: true, Count: count})
}
