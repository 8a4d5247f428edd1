package auth

import "errors"

var ErrForbidden = errors.New("forbidden")

// RequireRole is the per-operation trust boundary for admin mutations.
func RequireRole(session *Session, role string) error {
	if session == nil || session.ID == "" || session.Role != role {
		return ErrForbidden
	}
	return nil
}
