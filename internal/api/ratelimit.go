package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	limiterTableSize = 10000
	limiterIdleTTL   = 30 * time.Minute
)

// ipRateLimiter keeps one token bucket per client IP. Idle buckets age out of the table.
type ipRateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters *expirable.LRU[string, *rate.Limiter]
}

// newIPRateLimiter returns nil when limiting is switched off.
func newIPRateLimiter(perMinute float64, burst int) *ipRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &ipRateLimiter{
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterTableSize, nil, limiterIdleTTL),
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// 重新写入以刷新过期时间
	l.limiters.Add(ip, limiter)
	l.mu.Unlock()
	return limiter.Allow()
}

// RateLimitMiddleware 按客户端 IP 限制公开表单的提交频率
func (h *HTTPHandler) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !h.limiter.allow(ip) {
			logrus.WithField("client_ip", ip).Warn("enquiry rate limit exceeded")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, APIError{
				Code:    ErrCodeRateLimited,
				Message: msgTooManySubmissions,
			})
			return
		}
		c.Next()
	}
}
