package sql

import (
	"academy/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CreateEnquiry persists a new lead.
func (r *GormRepository) CreateEnquiry(ctx context.Context, enquiry *entity.DbEnquiry) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if enquiry == nil {
		return fmt.Errorf("enquiry is nil")
	}
	if enquiry.Status == "" {
		enquiry.Status = entity.EnquiryStatusNew
	}
	return r.db.WithContext(ctx).Create(enquiry).Error
}

// ListEnquiries returns the newest enquiries first.
func (r *GormRepository) ListEnquiries(ctx context.Context, limit int) ([]entity.DbEnquiry, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []entity.DbEnquiry
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountEnquiries returns the total number of stored enquiries.
func (r *GormRepository) CountEnquiries(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errNotInitialised
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbEnquiry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteEnquiries removes the given ids atomically; unknown ids are ignored.
func (r *GormRepository) DeleteEnquiries(ctx context.Context, ids []uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errNotInitialised
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", ids).Delete(&entity.DbEnquiry{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
