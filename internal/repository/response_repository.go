package repository

import (
	"context"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(ctx context.Context, response *domain.Response) error {
	return r.db.WithContext(ctx).Create(response).Error
}

// ListByForm returns one page of a form's responses, newest first
func (r *ResponseRepository) ListByForm(ctx context.Context, formID uuid.UUID, page, pageSize int) ([]domain.Response, int64, error) {
	var responses []domain.Response
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Response{}).Where("form_id = ?", formID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := Paginate(query, page, pageSize).
		Order("created_at DESC").
		Find(&responses).Error
	return responses, total, err
}

// ListAllByForm returns every response of a form, newest first
func (r *ResponseRepository) ListAllByForm(ctx context.Context, formID uuid.UUID) ([]domain.Response, error) {
	var responses []domain.Response
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at DESC").
		Find(&responses).Error
	return responses, err
}

// ExistsForIP reports whether the address already answered the form
func (r *ResponseRepository) ExistsForIP(ctx context.Context, formID uuid.UUID, ip string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Response{}).
		Where("form_id = ? AND ip_address = ?", formID, ip).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepository) CountByForm(ctx context.Context, formID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Response{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}
