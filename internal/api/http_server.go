package api

import (
	"academy/internal/auth"
	"academy/internal/config"
	"academy/internal/content"
	"academy/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestTimeout bounds every store or upstream call made on behalf of one request.
const requestTimeout = 5 * time.Second

// Dependencies 由 cmd/server 组装后注入
type Dependencies struct {
	Sessions      *auth.Manager
	Authenticator *auth.Authenticator
	Enquiries     *service.EnquiryService
	Admins        *service.AdminService
	Dashboard     *service.DashboardService
	Content       *content.Provider
}

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg           config.Config
	sessions      *auth.Manager
	authenticator *auth.Authenticator
	enquiries     *service.EnquiryService
	admins        *service.AdminService
	dashboard     *service.DashboardService
	content       *content.Provider
	limiter       *ipRateLimiter
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, deps Dependencies) (*HTTPHandler, error) {
	if deps.Sessions == nil || deps.Authenticator == nil {
		return nil, errors.New("session manager and authenticator are required")
	}
	if deps.Enquiries == nil || deps.Admins == nil || deps.Dashboard == nil || deps.Content == nil {
		return nil, errors.New("services are required")
	}
	return &HTTPHandler{
		cfg:           cfg,
		sessions:      deps.Sessions,
		authenticator: deps.Authenticator,
		enquiries:     deps.Enquiries,
		admins:        deps.Admins,
		dashboard:     deps.Dashboard,
		content:       deps.Content,
		limiter:       newIPRateLimiter(cfg.EnquiryRatePerMinute, cfg.EnquiryRateBurst),
	}, nil
}

// Router 注册全部路由
func (h *HTTPHandler) Router() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(h.cfg.TrustedProxies); err != nil {
		logrus.WithError(err).Error("invalid TRUSTED_PROXIES, forwarded headers are ignored")
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware(h.cfg.BaseURL))
	r.Use(SecurityHeadersMiddleware())
	r.Use(gin.Recovery())
	r.Use(h.SessionMiddleware())
	r.Use(h.GateMiddleware())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")
	apiGroup.POST("/enquiries", h.RateLimitMiddleware(), h.SubmitEnquiry)

	contentGroup := apiGroup.Group("/content")
	contentGroup.GET("/landing", h.Landing)
	contentGroup.GET("/courses", h.ListCourses)
	contentGroup.GET("/courses/:slug", h.GetCourse)
	contentGroup.GET("/blog", h.ListBlogPosts)
	contentGroup.GET("/blog/:slug", h.GetBlogPost)
	contentGroup.GET("/faqs", h.ListFAQs)
	contentGroup.GET("/seo/:name", h.GetSEO)

	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/signin", h.SignInPage)
	authGroup.POST("/signin", h.SignIn)
	authGroup.POST("/signout", h.SignOut)
	authGroup.GET("/session", h.Session)

	// 网关已保证会话有效，角色校验在服务层完成
	admin := r.Group("/admin")
	admin.GET("", h.Dashboard)
	admin.GET("/enquiries", h.ListEnquiries)
	admin.GET("/enquiries/export", h.ExportEnquiries)
	admin.POST("/enquiries/archive", h.ArchiveEnquiries)
	admin.POST("/enquiries/delete", h.DeleteEnquiries)
	admin.GET("/users", h.ListAdminUsers)
	admin.POST("/users", h.CreateAdminUser)
	admin.DELETE("/users/:id", h.DeleteAdminUser)

	return r
}
