package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the cost used by the seeded accounts.
const PasswordCost = 10

// HashPassword 对明文密码进行哈希处理
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports bcrypt.ErrMismatchedHashAndPassword on a wrong candidate.
func VerifyPassword(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}
