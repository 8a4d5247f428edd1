package api

import (
	"academy/internal/content"
	"academy/internal/entity"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxLandingItems = 24

// Landing 首页内容，上游失败时整体回退到内置数据
func (h *HTTPHandler) Landing(c *gin.Context) {
	courses := queryLimit(c, "courses", content.DefaultLandingCourses)
	posts := queryLimit(c, "posts", content.DefaultLandingPosts)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	c.JSON(http.StatusOK, h.content.Landing(ctx, courses, posts))
}

func (h *HTTPHandler) ListCourses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	courses, source := h.content.Courses(ctx)
	c.JSON(http.StatusOK, gin.H{"courses": courses, "source": source})
}

func (h *HTTPHandler) GetCourse(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	course, source, err := h.content.CourseBySlug(ctx, c.Param("slug"))
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course, "source": source})
}

func (h *HTTPHandler) ListBlogPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	posts, source := h.content.BlogPosts(ctx)
	c.JSON(http.StatusOK, gin.H{"posts": posts, "source": source})
}

func (h *HTTPHandler) GetBlogPost(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	post, source, err := h.content.BlogPostBySlug(ctx, c.Param("slug"))
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "source": source})
}

func (h *HTTPHandler) ListFAQs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	faqs, source := h.content.FAQs(ctx)
	c.JSON(http.StatusOK, gin.H{"faqs": faqs, "source": source})
}

func (h *HTTPHandler) GetSEO(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	record, source := h.content.SEORecord(ctx, c.Param("name"))
	c.JSON(http.StatusOK, entity.SEOResponse{Record: record, Source: source})
}

func writeContentError(c *gin.Context, err error) {
	if errors.Is(err, content.ErrNotFound) {
		NotFound(c, msgContentNotFound)
		return
	}
	InternalError(c)
}

// queryLimit reads a positive count from the query string, capped at maxLandingItems.
func queryLimit(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if n > maxLandingItems {
		return maxLandingItems
	}
	return n
}
