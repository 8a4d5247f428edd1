package config

import (
	"testing"

	"github.com/caarlos0/env/v10"
	"github.com/gin-gonic/gin"
)

func TestValidateSessionSecret(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		mode      string
		secret    string
		expectErr bool
	}{
		{name: "default secret in release", mode: gin.ReleaseMode, secret: DefaultSessionSecret, expectErr: true},
		{name: "default secret in debug", mode: gin.DebugMode, secret: DefaultSessionSecret},
		{name: "custom secret in release", mode: gin.ReleaseMode, secret: "a-long-random-secret"},
		{name: "empty secret", mode: gin.DebugMode, secret: "  ", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(tt.mode)
			cfg := Config{AuthMode: AuthModeDatabase, SessionSecret: tt.secret}
			err := cfg.Validate()
			if tt.expectErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAuthMode(t *testing.T) {
	if err := (Config{AuthMode: AuthModeEnv, SessionSecret: "s"}).Validate(); err == nil {
		t.Fatal("expected env mode without credentials to fail")
	}
	if err := (Config{AuthMode: "ldap", SessionSecret: "s"}).Validate(); err == nil {
		t.Fatal("expected unknown auth mode to fail")
	}
	cfg := Config{AuthMode: AuthModeEnv, AdminEmail: "root@academy.test", AdminPassword: "secret1", SessionSecret: "s"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTrustedProxiesFromEnv(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" || cfg.TrustedProxies[1] != "192.0.2.1" {
		t.Fatalf("unexpected proxies %v", cfg.TrustedProxies)
	}
}
