package auth

import (
	"academy/internal/entity"
	"testing"
	"time"
)

func TestAuthorizeRequest(t *testing.T) {
	now := time.Now()
	valid := &Session{ID: "u-1", Role: entity.RoleAdmin, ExpiresAt: now.Add(time.Hour)}
	expired := &Session{ID: "u-1", Role: entity.RoleAdmin, ExpiresAt: now.Add(-time.Minute)}

	tests := []struct {
		name         string
		path         string
		session      *Session
		wantAction   Action
		wantLocation string
	}{
		{name: "public page", path: "/courses", wantAction: Allow},
		{name: "sign-in page anonymous", path: "/api/auth/signin", wantAction: Allow},
		{name: "auth callback anonymous", path: "/api/auth/callback/credentials", wantAction: Allow},
		{name: "admin anonymous", path: "/admin", wantAction: Redirect, wantLocation: "/api/auth/signin?callbackUrl=%2Fadmin"},
		{name: "admin subpath anonymous", path: "/admin/users", wantAction: Redirect, wantLocation: "/api/auth/signin?callbackUrl=%2Fadmin%2Fusers"},
		{name: "admin expired", path: "/admin", session: expired, wantAction: Redirect, wantLocation: "/api/auth/signin?callbackUrl=%2Fadmin"},
		{name: "admin valid", path: "/admin/enquiries", session: valid, wantAction: Allow},
		{name: "sign-in page signed in", path: "/api/auth/signin", session: valid, wantAction: Redirect, wantLocation: "/admin"},
		{name: "sign-in page expired session", path: "/api/auth/signin", session: expired, wantAction: Allow},
		{name: "signout signed in", path: "/api/auth/signout", session: valid, wantAction: Allow},
		{name: "lookalike prefix", path: "/administrator", wantAction: Allow},
		{name: "dot segments", path: "/public/../admin", wantAction: Redirect, wantLocation: "/api/auth/signin?callbackUrl=%2Fadmin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := authorizeAt(tt.path, tt.session, now)
			if got.Action != tt.wantAction {
				t.Fatalf("expected action %v, got %v", tt.wantAction, got.Action)
			}
			if got.Location != tt.wantLocation {
				t.Fatalf("expected location %q, got %q", tt.wantLocation, got.Location)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	if err := RequireRole(nil, entity.RoleAdmin); err != ErrForbidden {
		t.Fatalf("expected forbidden for nil session, got %v", err)
	}
	if err := RequireRole(&Session{ID: "u", Role: "editor"}, entity.RoleAdmin); err != ErrForbidden {
		t.Fatalf("expected forbidden for wrong role, got %v", err)
	}
	if err := RequireRole(&Session{ID: "u", Role: entity.RoleAdmin}, entity.RoleAdmin); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
}
