package captcha

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTurnstileVerify(t *testing.T) {
	var gotSecret, gotResponse, gotIP string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotSecret = r.PostForm.Get("secret")
		gotResponse = r.PostForm.Get("response")
		gotIP = r.PostForm.Get("remoteip")
		w.Header().Set("Content-Type", "application/json")
		if gotResponse == "good" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer server.Close()

	verifier := NewTurnstile("s3cret", server.URL, time.Second)

	if err := verifier.Verify(context.Background(), "good", "203.0.113.9"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotSecret != "s3cret" || gotResponse != "good" || gotIP != "203.0.113.9" {
		t.Fatalf("unexpected form %q %q %q", gotSecret, gotResponse, gotIP)
	}

	if err := verifier.Verify(context.Background(), "bad", ""); !errors.Is(err, ErrRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if err := verifier.Verify(context.Background(), "  ", ""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token, got %v", err)
	}
}

func TestTurnstileFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{name: "garbage body", handler: func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{name: "timeout", handler: func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"success":true}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			verifier := NewTurnstile("s3cret", server.URL, 50*time.Millisecond)
			if err := verifier.Verify(context.Background(), "token", ""); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected unavailable, got %v", err)
			}
		})
	}
}

func TestTurnstileWithoutSecret(t *testing.T) {
	verifier := NewTurnstile("", "http://127.0.0.1:0", time.Second)
	if err := verifier.Verify(context.Background(), "token", ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable without secret, got %v", err)
	}
}
