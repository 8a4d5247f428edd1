package auth

import (
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	AuthPathPrefix  = "/api/auth"
	SignInPath      = "/api/auth/signin"
	AdminPathPrefix = "/admin"
)

type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Action   Action
	Location string
}

// AuthorizeRequest decides whether a request may proceed. It never mutates state.
// Authentication paths are always allowed so the sign-in page can never redirect to itself;
// a signed-in visitor of the sign-in page is sent to the admin home instead.
func AuthorizeRequest(requestPath string, session *Session) Decision {
	return authorizeAt(requestPath, session, time.Now())
}

func authorizeAt(requestPath string, session *Session, now time.Time) Decision {
	cleaned := cleanPath(requestPath)

	signedIn := session != nil && session.ID != "" && now.Before(session.ExpiresAt)

	if cleaned == SignInPath && signedIn {
		return Decision{Action: Redirect, Location: AdminPathPrefix}
	}
	if hasSegmentPrefix(cleaned, AuthPathPrefix) {
		return Decision{Action: Allow}
	}
	if !hasSegmentPrefix(cleaned, AdminPathPrefix) {
		return Decision{Action: Allow}
	}
	if signedIn {
		return Decision{Action: Allow}
	}

	query := url.Values{}
	query.Set("callbackUrl", cleaned)
	return Decision{Action: Redirect, Location: SignInPath + "?" + query.Encode()}
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// hasSegmentPrefix matches "/admin" and "/admin/..." but not "/administrator".
func hasSegmentPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
