package api

import (
	"academy/internal/captcha"
	"academy/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorResponseWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	details := map[string]string{"name": "Name must be at least 2 characters"}
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeValidation, "Please correct the highlighted fields.", details)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, response.Code)
	}
	if response.Details == nil {
		t.Error("expected details to be set")
	}
}

func TestWriteServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
		expectDetails  bool
	}{
		{
			name:           "validation",
			err:            &service.Error{Kind: service.KindValidation, Message: service.MsgValidationFailed, Fields: map[string]string{"phone": service.MsgInvalidPhone}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeValidation,
			expectedMsg:    service.MsgValidationFailed,
			expectDetails:  true,
		},
		{
			name:           "bot suspected",
			err:            &service.Error{Kind: service.KindBotSuspected, Message: service.MsgBotChallenge},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeBotSuspected,
			expectedMsg:    service.MsgBotChallenge,
		},
		{
			name:           "unauthorized",
			err:            &service.Error{Kind: service.KindUnauthorized, Message: service.MsgUnauthorized},
			expectedStatus: http.StatusForbidden,
			expectedCode:   ErrCodeForbidden,
			expectedMsg:    service.MsgUnauthorized,
		},
		{
			name:           "conflict",
			err:            &service.Error{Kind: service.KindConflict, Message: service.MsgEmailExists, Fields: map[string]string{"email": service.MsgEmailExists}},
			expectedStatus: http.StatusConflict,
			expectedCode:   ErrCodeConflict,
			expectedMsg:    service.MsgEmailExists,
			expectDetails:  true,
		},
		{
			name:           "not found",
			err:            &service.Error{Kind: service.KindNotFound, Message: service.MsgUserNotFound},
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrCodeNotFound,
			expectedMsg:    service.MsgUserNotFound,
		},
		{
			name:           "verifier unavailable",
			err:            &service.Error{Kind: service.KindDependency, Message: service.MsgBotUnavailable, Err: fmt.Errorf("%w: status 502", captcha.ErrUnavailable)},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   ErrCodeServiceUnavailable,
			expectedMsg:    service.MsgBotUnavailable,
		},
		{
			name:           "store failure",
			err:            &service.Error{Kind: service.KindDependency, Message: service.MsgEnquiryStoreFailed, Err: errors.New("connection refused")},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    service.MsgEnquiryStoreFailed,
		},
		{
			name:           "plain error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    msgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			WriteServiceError(c, tt.err)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
			if response.Message != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, response.Message)
			}
			if (response.Details != nil) != tt.expectDetails {
				t.Errorf("unexpected details %v", response.Details)
			}
		})
	}
}

func TestWriteServiceErrorHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/enquiries", nil)

	WriteServiceError(c, &service.Error{
		Kind:    service.KindDependency,
		Message: service.MsgEnquiryStoreFailed,
		Err:     errors.New("pq: password authentication failed for user academy"),
	})

	if body := w.Body.String(); strings.Contains(body, "pq:") || strings.Contains(body, "password authentication") {
		t.Fatalf("store error leaked into response: %s", body)
	}
}
