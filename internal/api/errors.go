package api

import (
	"academy/internal/captcha"
	"academy/internal/service"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"

	// 线索提交错误码
	ErrCodeBotSuspected = "ERR_BOT_SUSPECTED"
)

const (
	msgInvalidPayload     = "Invalid request payload."
	msgInternalError      = "Something went wrong. Please try again."
	msgInvalidCredentials = "Invalid email or password."
	msgTooManySubmissions = "Too many submissions. Please try again later."
	msgContentNotFound    = "Content not found."
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, msgInvalidPayload)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, msgInternalError)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// WriteServiceError maps a service failure onto a status code. Only the display message
// and field messages reach the client; the cause is logged.
func WriteServiceError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
		InternalError(c)
		return
	}

	var details any
	if len(se.Fields) > 0 {
		details = se.Fields
	}

	switch se.Kind {
	case service.KindValidation:
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeValidation, se.Message, details)
	case service.KindBotSuspected:
		ErrorResponse(c, http.StatusBadRequest, ErrCodeBotSuspected, se.Message)
	case service.KindUnauthorized:
		ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, se.Message)
	case service.KindConflict:
		ErrorResponseWithDetails(c, http.StatusConflict, ErrCodeConflict, se.Message, details)
	case service.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, ErrCodeNotFound, se.Message)
	case service.KindDependency:
		if errors.Is(se, captcha.ErrUnavailable) || errors.Is(se, context.DeadlineExceeded) {
			ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, se.Message)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, se.Message)
	default:
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, se.Message)
	}
}
