package service

import (
	"academy/internal/auth"
	"academy/internal/captcha"
	"academy/internal/entity"
	"academy/internal/model"
	sqlrepo "academy/internal/model/sql"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
)

type fakeVerifier struct {
	err   error
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, token, _ string) error {
	f.calls++
	if strings.TrimSpace(token) == "" {
		return captcha.ErrMissingToken
	}
	return f.err
}

// failingRepo overrides selected calls of a working repository with errors.
type failingRepo struct {
	model.Repository
	createEnquiryErr error
	deleteEnquiryErr error
	createUserErr    error
	getUserErr       error
	// afterList runs once a listing has been read from the store
	afterList func()
}

func (f *failingRepo) ListEnquiries(ctx context.Context, limit int) ([]entity.DbEnquiry, error) {
	rows, err := f.Repository.ListEnquiries(ctx, limit)
	if f.afterList != nil {
		f.afterList()
	}
	return rows, err
}

func (f *failingRepo) ListAdminUsers(ctx context.Context) ([]entity.DbAdminUser, error) {
	users, err := f.Repository.ListAdminUsers(ctx)
	if f.afterList != nil {
		f.afterList()
	}
	return users, err
}

func (f *failingRepo) CreateEnquiry(ctx context.Context, e *entity.DbEnquiry) error {
	if f.createEnquiryErr != nil {
		return f.createEnquiryErr
	}
	return f.Repository.CreateEnquiry(ctx, e)
}

func (f *failingRepo) DeleteEnquiries(ctx context.Context, ids []uint) (int64, error) {
	if f.deleteEnquiryErr != nil {
		return 0, f.deleteEnquiryErr
	}
	return f.Repository.DeleteEnquiries(ctx, ids)
}

func (f *failingRepo) CreateAdminUser(ctx context.Context, u *entity.DbAdminUser) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	return f.Repository.CreateAdminUser(ctx, u)
}

func (f *failingRepo) GetAdminUserByID(ctx context.Context, id string) (*entity.DbAdminUser, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	return f.Repository.GetAdminUserByID(ctx, id)
}

func newTestRepo(t *testing.T) model.Repository {
	t.Helper()
	db, err := model.OpenGormDB(sqlite.Open(filepath.Join(t.TempDir(), "academy.db")))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := model.MigrateSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := sqlrepo.NewGormRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func adminSession(id string) *auth.Session {
	return &auth.Session{ID: id, Role: entity.RoleAdmin, Email: id + "@example.com", ExpiresAt: time.Now().Add(time.Hour)}
}

func expectKind(t *testing.T, err error, kind Kind, message string) *Error {
	t.Helper()
	se, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *service.Error, got %T (%v)", err, err)
	}
	if se.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, se.Kind, err)
	}
	if message != "" && se.Message != message {
		t.Fatalf("expected message %q, got %q", message, se.Message)
	}
	return se
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
