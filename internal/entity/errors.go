package entity

import "errors"

// Store-level sentinels. The SQL repository translates driver errors into these so callers
// never depend on the driver.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicatedEmail = errors.New("email already in use")
)
