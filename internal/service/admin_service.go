package service

import (
	"academy/internal/auth"
	"academy/internal/cache"
	"academy/internal/entity"
	"academy/internal/model"
	"academy/internal/validation"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var adminMessages = validation.Messages{
	"name":     MsgNameTooShort,
	"email":    MsgInvalidEmail,
	"password": MsgPasswordTooShort,
}

type adminInput struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6"`
}

// AdminService manages administrator accounts.
type AdminService struct {
	repo      model.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	rootEmail string

	// bumped on every write; a listing that raced a write is not cached
	generation atomic.Uint64
}

// NewAdminService needs the root admin email to protect that account from deletion.
func NewAdminService(repo model.Repository, store cache.Store, cacheTTL time.Duration, rootEmail string) *AdminService {
	return &AdminService{
		repo:      repo,
		cache:     store,
		cacheTTL:  cacheTTL,
		rootEmail: strings.TrimSpace(rootEmail),
	}
}

// Create adds an administrator. A taken email is reported as a conflict on the email field.
func (s *AdminService) Create(ctx context.Context, session *auth.Session, req entity.AdminUserCreateRequest) (*entity.AdminUserSummary, error) {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return nil, newError(KindUnauthorized, MsgUnauthorized, err)
	}

	input := adminInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}
	fields, err := validation.Struct(input, adminMessages)
	if err != nil {
		return nil, newError(KindDependency, MsgAdminCreateFail, err)
	}
	if len(fields) > 0 {
		return nil, validationError(MsgValidationFailed, fields)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		return nil, newError(KindDependency, MsgAdminCreateFail, err)
	}

	user := &entity.DbAdminUser{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
	}
	if err := s.repo.CreateAdminUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicatedEmail) {
			return nil, &Error{
				Kind:    KindConflict,
				Message: MsgEmailExists,
				Fields:  map[string]string{"email": MsgEmailExists},
				Err:     err,
			}
		}
		logrus.WithError(err).WithField("email", input.Email).Error("failed to create admin user")
		return nil, newError(KindDependency, MsgAdminCreateFail, err)
	}

	s.invalidate(ctx)
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "created_by": session.ID}).Info("admin user created")
	summary := s.summarize(*user, session)
	return &summary, nil
}

// Delete removes another administrator. Self-deletion and the root admin are refused.
func (s *AdminService) Delete(ctx context.Context, session *auth.Session, targetID string) error {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return newError(KindUnauthorized, MsgUnauthorized, err)
	}

	targetID = strings.TrimSpace(targetID)
	if targetID == session.ID {
		return newError(KindValidation, MsgCannotDeleteSelf, nil)
	}
	if targetID == "" {
		return newError(KindNotFound, MsgUserNotFound, nil)
	}

	target, err := s.repo.GetAdminUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return newError(KindNotFound, MsgUserNotFound, err)
		}
		logrus.WithError(err).WithField("target_id", targetID).Error("failed to load admin user")
		return newError(KindDependency, MsgUserDeleteFailed, err)
	}
	if s.isRoot(target.Email) {
		logrus.WithFields(logrus.Fields{"target_id": targetID, "user_id": session.ID}).Warn("attempt to delete root admin")
		return newError(KindValidation, MsgCannotDeleteRoot, nil)
	}

	if err := s.repo.DeleteAdminUser(ctx, targetID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return newError(KindNotFound, MsgUserNotFound, err)
		}
		logrus.WithError(err).WithField("target_id", targetID).Error("failed to delete admin user")
		return newError(KindDependency, MsgUserDeleteFailed, err)
	}

	s.invalidate(ctx)
	logrus.WithFields(logrus.Fields{"target_id": targetID, "user_id": session.ID}).Info("admin user deleted")
	return nil
}

// List returns every administrator, newest first, without password hashes.
func (s *AdminService) List(ctx context.Context, session *auth.Session) (*entity.AdminUserListResponse, error) {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return nil, newError(KindUnauthorized, MsgUnauthorized, err)
	}

	var users []entity.DbAdminUser
	cached := false
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, cache.KeyAdminUsers, &users)
		if err != nil {
			logrus.WithError(err).Warn("admin user cache read failed")
		}
		cached = ok
	}
	if !cached {
		generation := s.generation.Load()
		var err error
		users, err = s.repo.ListAdminUsers(ctx)
		if err != nil {
			logrus.WithError(err).Error("failed to list admin users")
			return nil, newError(KindDependency, MsgLoadUsersFailed, err)
		}
		if s.cache != nil && s.generation.Load() == generation {
			if err := s.cache.Set(ctx, cache.KeyAdminUsers, users, s.cacheTTL); err != nil {
				logrus.WithError(err).Warn("admin user cache write failed")
			}
		}
	}

	out := make([]entity.AdminUserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, s.summarize(u, session))
	}
	return &entity.AdminUserListResponse{Users: out, Total: len(out)}, nil
}

func (s *AdminService) summarize(u entity.DbAdminUser, session *auth.Session) entity.AdminUserSummary {
	return entity.AdminUserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		IsCurrent: session != nil && u.ID == session.ID,
		IsRoot:    s.isRoot(u.Email),
	}
}

func (s *AdminService) isRoot(email string) bool {
	return s.rootEmail != "" && email == s.rootEmail
}

func (s *AdminService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyAdminUsers); err != nil {
		logrus.WithError(err).Warn("cache invalidation failed")
	}
}
