package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleAdmin is the only role the back-office issues.
const RoleAdmin = "admin"

// DbAdminUser represents a persisted administrator account.
type DbAdminUser struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(50);not null;default:admin" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;<-:create" json:"created_at"`
}

// TableName overrides default pluralised name.
func (DbAdminUser) TableName() string {
	return "users"
}

// BeforeCreate assigns the identifier and role when the caller left them empty.
func (u *DbAdminUser) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(u.ID) == "" {
		u.ID = uuid.NewString()
	}
	if strings.TrimSpace(u.Role) == "" {
		u.Role = RoleAdmin
	}
	return nil
}

// AdminUserSummary is the listing shape; it never carries the password hash.
type AdminUserSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	IsCurrent bool      `json:"is_current"`
	IsRoot    bool      `json:"is_root"`
}

type AdminUserCreateRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AdminUserListResponse struct {
	Users []AdminUserSummary `json:"users"`
	Total int                `json:"total"`
}

type SignInRequest struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	CallbackURL string `json:"callbackUrl" form:"callbackUrl"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SignInResponse struct {
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
	Redirect  string      `json:"redirect"`
}

type SessionResponse struct {
	User      *SessionUser `json:"user,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}
