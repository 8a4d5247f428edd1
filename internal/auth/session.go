package auth

import (
	"academy/internal/entity"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionRevoked = errors.New("session revoked")
)

// Claims represents the JWT payload stored in the session cookie.
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the identity re-derived from a token on every protected request.
type Session struct {
	ID        string
	TokenID   string
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}

func (s *Session) User() entity.SessionUser {
	return entity.SessionUser{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role}
}

// RevocationList remembers signed-out token ids until they would have expired anyway.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Manager mints and validates session tokens.
type Manager struct {
	secret  []byte
	issuer  string
	expiry  time.Duration
	revoked RevocationList
	now     func() time.Time
}

// NewManager creates a new session manager. revoked may be nil.
func NewManager(secret, issuer string, expiry time.Duration, revoked RevocationList) (*Manager, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if expiry <= 0 {
		expiry = time.Hour * 24
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "academy"
	}
	return &Manager{
		secret:  []byte(trimmed),
		issuer:  issuer,
		expiry:  expiry,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

// Mint issues a signed token carrying the user's id and role.
func (m *Manager) Mint(user entity.SessionUser) (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("session manager is nil")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Role) == "" {
		return "", time.Time{}, errors.New("invalid user for session")
	}
	now := m.now().UTC()
	expiry := now.Add(m.expiry)

	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// Validate verifies signature, issuer, expiry and revocation, yielding the session.
func (m *Manager) Validate(ctx context.Context, tokenString string) (*Session, error) {
	if m == nil {
		return nil, errors.New("session manager is nil")
	}
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidSession
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}

	if m.revoked != nil && claims.ID != "" {
		revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrSessionRevoked
		}
	}

	return &Session{
		ID:        claims.UserID,
		TokenID:   claims.ID,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke discards a session so later requests carrying the same token are rejected.
func (m *Manager) Revoke(ctx context.Context, session *Session) error {
	if m == nil || m.revoked == nil || session == nil || session.TokenID == "" {
		return nil
	}
	return m.revoked.Revoke(ctx, session.TokenID, session.ExpiresAt)
}

// TTL reports how long newly minted sessions live.
func (m *Manager) TTL() time.Duration {
	return m.expiry
}
