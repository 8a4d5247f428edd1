package service

import (
	"academy/internal/auth"
	"academy/internal/cache"
	"academy/internal/captcha"
	"academy/internal/entity"
	"academy/internal/model"
	"academy/internal/storage"
	"academy/internal/validation"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// EnquiryViewLimit caps the admin enquiry view.
	EnquiryViewLimit = 100
	csvDateLayout    = "02/01/2006"
	exportCategory   = "exports"

	// column widths of the enquiries table
	nameColumnWidth   = 255
	phoneColumnWidth  = 50
	courseColumnWidth = 100
)

var csvHeader = []string{"Date", "Name", "Phone", "Course Interest", "Status"}

var enquiryMessages = validation.Messages{
	"name":  MsgNameTooShort,
	"phone": MsgInvalidPhone,
}

// enquiryInput is checked exactly as submitted. Course is free text.
type enquiryInput struct {
	Name  string `json:"name" validate:"min=2"`
	Phone string `json:"phone" validate:"phone"`
}

// EnquiryService runs the public lead capture pipeline and the admin enquiry console.
type EnquiryService struct {
	repo     model.Repository
	verifier captcha.Verifier
	cache    cache.Store
	storage  storage.Storage
	cacheTTL time.Duration
	now      func() time.Time

	// bumped on every write; a view read that raced a write is not cached
	generation atomic.Uint64
}

// NewEnquiryService wires the pipeline. store and archive may be nil.
func NewEnquiryService(repo model.Repository, verifier captcha.Verifier, store cache.Store, archive storage.Storage, cacheTTL time.Duration) *EnquiryService {
	return &EnquiryService{
		repo:     repo,
		verifier: verifier,
		cache:    store,
		storage:  archive,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Submit accepts an untrusted form. Steps short-circuit in order: honeypot, bot challenge,
// field validation, persistence, view invalidation.
func (s *EnquiryService) Submit(ctx context.Context, sub entity.EnquirySubmission) (*entity.EnquirySubmitResponse, error) {
	logger := logrus.WithField("remote_ip", sub.RemoteIP)

	if strings.TrimSpace(sub.Honeypot) != "" {
		logger.Info("honeypot triggered, discarding enquiry")
		return &entity.EnquirySubmitResponse{Success: true, Message: MsgEnquiryAccepted}, nil
	}

	if err := s.verifier.Verify(ctx, sub.ChallengeToken, sub.RemoteIP); err != nil {
		if errors.Is(err, captcha.ErrMissingToken) || errors.Is(err, captcha.ErrRejected) {
			return nil, newError(KindBotSuspected, MsgBotChallenge, err)
		}
		logger.WithError(err).Error("bot verification failed")
		return nil, newError(KindDependency, MsgBotUnavailable, err)
	}

	input := enquiryInput{Name: sub.Name, Phone: sub.Phone}
	fields, err := validation.Struct(input, enquiryMessages)
	if err != nil {
		return nil, newError(KindDependency, MsgEnquiryStoreFailed, err)
	}
	if len(fields) > 0 {
		return nil, validationError(MsgValidationFailed, fields)
	}

	course := clip(sub.Course, courseColumnWidth)
	if course == "" {
		course = entity.EnquiryDefaultCourse
	}
	record := &entity.DbEnquiry{
		Name:           clip(sub.Name, nameColumnWidth),
		Phone:          clip(sub.Phone, phoneColumnWidth),
		CourseInterest: course,
		Status:         entity.EnquiryStatusNew,
	}
	if err := s.repo.CreateEnquiry(ctx, record); err != nil {
		logger.WithError(err).Error("failed to save enquiry")
		return nil, newError(KindDependency, MsgEnquiryStoreFailed, err)
	}

	s.invalidate(ctx, cache.KeyEnquiries)
	logger.WithField("enquiry_id", record.ID).Info("enquiry stored")
	return &entity.EnquirySubmitResponse{Success: true, Message: MsgEnquiryAccepted}, nil
}

// BulkDelete removes the parsable ids in one transaction and reports rows actually removed.
func (s *EnquiryService) BulkDelete(ctx context.Context, session *auth.Session, ids []string) (int, error) {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return 0, newError(KindUnauthorized, MsgUnauthorized, err)
	}

	numeric := ParseIDs(ids)
	if len(numeric) == 0 {
		return 0, validationError(MsgNoValidIDs, nil)
	}

	affected, err := s.repo.DeleteEnquiries(ctx, numeric)
	if err != nil {
		logrus.WithError(err).WithField("ids", numeric).Error("failed to delete enquiries")
		return 0, newError(KindDependency, MsgDeleteEnquiryFailed, err)
	}

	s.invalidate(ctx, cache.KeyEnquiries)
	logrus.WithFields(logrus.Fields{
		"user_id":   session.ID,
		"requested": len(numeric),
		"deleted":   affected,
	}).Info("enquiries deleted")
	return int(affected), nil
}

// ParseIDs keeps ids that parse as positive integers, dropping duplicates and everything else.
func ParseIDs(ids []string) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		if _, ok := seen[uint(id)]; ok {
			continue
		}
		seen[uint(id)] = struct{}{}
		out = append(out, uint(id))
	}
	return out
}

// List returns the filtered admin view of the newest enquiries.
func (s *EnquiryService) List(ctx context.Context, session *auth.Session, query entity.EnquiryQuery) (*entity.EnquiryListResponse, error) {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return nil, newError(KindUnauthorized, MsgUnauthorized, err)
	}
	all, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterEnquiries(all, query, s.now())
	return &entity.EnquiryListResponse{Enquiries: filtered, Shown: len(filtered), Total: len(all)}, nil
}

// ExportCSV renders the filtered view, or only the selected ids when any are given.
func (s *EnquiryService) ExportCSV(ctx context.Context, session *auth.Session, query entity.EnquiryQuery, ids []string) ([]byte, int, error) {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return nil, 0, newError(KindUnauthorized, MsgUnauthorized, err)
	}
	all, err := s.view(ctx)
	if err != nil {
		return nil, 0, err
	}

	var rows []entity.DbEnquiry
	if selected := ParseIDs(ids); len(selected) > 0 {
		wanted := make(map[uint]struct{}, len(selected))
		for _, id := range selected {
			wanted[id] = struct{}{}
		}
		for _, e := range all {
			if _, ok := wanted[e.ID]; ok {
				rows = append(rows, e)
			}
		}
	} else {
		rows = FilterEnquiries(all, query, s.now())
	}

	data, err := EncodeCSV(rows)
	if err != nil {
		return nil, 0, newError(KindDependency, MsgLoadEnquiryFailed, err)
	}
	return data, len(rows), nil
}

// Archive writes the filtered CSV to object storage and returns its key.
func (s *EnquiryService) Archive(ctx context.Context, session *auth.Session, query entity.EnquiryQuery) (*entity.EnquiryArchiveResponse, error) {
	data, count, err := s.ExportCSV(ctx, session, query, nil)
	if err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, newError(KindDependency, MsgArchiveFailed, errors.New("storage not configured"))
	}

	key, err := s.storage.Put(ctx, storage.Object{
		Category:    exportCategory,
		BaseName:    fmt.Sprintf("enquiries-%s", s.now().UTC().Format("20060102-150405.000000000")),
		Extension:   "csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        data,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to archive enquiries")
		return nil, newError(KindDependency, MsgArchiveFailed, err)
	}
	logrus.WithFields(logrus.Fields{"key": key, "rows": count, "user_id": session.ID}).Info("enquiries archived")
	return &entity.EnquiryArchiveResponse{Key: key, Count: count}, nil
}

// Count returns the number of stored enquiries, not only those in the admin view.
func (s *EnquiryService) Count(ctx context.Context, session *auth.Session) (int, error) {
	if err := auth.RequireRole(session, entity.RoleAdmin); err != nil {
		return 0, newError(KindUnauthorized, MsgUnauthorized, err)
	}
	count, err := s.repo.CountEnquiries(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count enquiries")
		return 0, newError(KindDependency, MsgLoadEnquiryFailed, err)
	}
	return int(count), nil
}

// view loads the newest enquiries through the cache.
func (s *EnquiryService) view(ctx context.Context) ([]entity.DbEnquiry, error) {
	var cached []entity.DbEnquiry
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, cache.KeyEnquiries, &cached)
		if err != nil {
			logrus.WithError(err).Warn("enquiry cache read failed")
		}
		if ok {
			return cached, nil
		}
	}

	generation := s.generation.Load()
	rows, err := s.repo.ListEnquiries(ctx, EnquiryViewLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to list enquiries")
		return nil, newError(KindDependency, MsgLoadEnquiryFailed, err)
	}
	// 读取期间发生写入时不回填缓存
	if s.cache != nil && s.generation.Load() == generation {
		if err := s.cache.Set(ctx, cache.KeyEnquiries, rows, s.cacheTTL); err != nil {
			logrus.WithError(err).Warn("enquiry cache write failed")
		}
	}
	return rows, nil
}

// clip trims surrounding space and cuts the value to the column width in runes.
func clip(value string, width int) string {
	value = strings.TrimSpace(value)
	if runes := []rune(value); len(runes) > width {
		value = strings.TrimSpace(string(runes[:width]))
	}
	return value
}

func (s *EnquiryService) invalidate(ctx context.Context, keys ...string) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logrus.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}

// FilterEnquiries applies the admin search box and date range.
func FilterEnquiries(rows []entity.DbEnquiry, query entity.EnquiryQuery, now time.Time) []entity.DbEnquiry {
	term := strings.ToLower(strings.TrimSpace(query.Q))
	maxDays := 0
	switch strings.TrimSpace(query.Range) {
	case entity.EnquiryRangeLast7Days:
		maxDays = 7
	case entity.EnquiryRange30Days:
		maxDays = 30
	}

	out := make([]entity.DbEnquiry, 0, len(rows))
	for _, e := range rows {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(e.Phone, term) &&
			!strings.Contains(strings.ToLower(e.CourseInterest), term) {
			continue
		}
		if maxDays > 0 && ageInDays(e.CreatedAt, now) > maxDays {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ageInDays rounds the absolute elapsed time up to whole days.
func ageInDays(created, now time.Time) int {
	diff := now.Sub(created)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// EncodeCSV renders rows with the export header and en-GB dates.
func EncodeCSV(rows []entity.DbEnquiry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range rows {
		record := []string{
			e.CreatedAt.Format(csvDateLayout),
			e.Name,
			e.Phone,
			e.CourseInterest,
			e.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
