package repository

import (
	"context"
	"strings"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormFilter narrows form list queries
type FormFilter struct {
	IsQuiz *bool
	Search string
}

type FormRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) Create(ctx context.Context, form *domain.Form) error {
	return r.db.WithContext(ctx).Create(form).Error
}

// GetByID returns a form visible to the caller. Forms owned by someone else
// are reported as gorm.ErrRecordNotFound.
func (r *FormRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	var form domain.Form
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)
	if err := query.First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// GetByIDWithQuestions returns an owned form with its questions in order
func (r *FormRepository) GetByIDWithQuestions(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	var form domain.Form
	query := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("created_at ASC")
		}).
		Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)
	if err := query.First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// GetUnscopedByID loads a form without owner filtering, for public flows
func (r *FormRepository) GetUnscopedByID(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	var form domain.Form
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// GetByPublicID loads a form by its public identifier without owner filtering
func (r *FormRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Form, error) {
	var form domain.Form
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// GetQuizByAccessCode loads a quiz by its access code
func (r *FormRepository) GetQuizByAccessCode(ctx context.Context, code string) (*domain.Form, error) {
	var form domain.Form
	err := r.db.WithContext(ctx).
		Where("access_code = ? AND is_quiz = ?", code, true).
		First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *FormRepository) AccessCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Form{}).Where("access_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *FormRepository) PublicIDExists(ctx context.Context, publicID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Form{}).Where("public_id = ?", publicID).Count(&count).Error
	return count > 0, err
}

func (r *FormRepository) Update(ctx context.Context, form *domain.Form) error {
	return r.db.WithContext(ctx).Omit("Questions", "Responses", "Creator").Save(form).Error
}

// MarkPaid flags a form as paid and links the purchase
func (r *FormRepository) MarkPaid(ctx context.Context, formID, purchaseID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Form{}).
		Where("id = ?", formID).
		Updates(map[string]interface{}{
			"is_paid":     true,
			"purchase_id": purchaseID,
		}).Error
}

// Delete removes a form together with its questions, responses and file records
func (r *FormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&domain.File{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", id).Delete(&domain.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", id).Delete(&domain.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.FormPurchase{}).Where("form_id = ?", id).Update("form_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Form{}, "id = ?", id).Error
	})
}

var formSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

// List returns the caller's forms for one page
func (r *FormRepository) List(ctx context.Context, page, pageSize int, filter FormFilter, sort SortConfig) ([]domain.Form, int64, error) {
	var forms []domain.Form
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Form{})
	query = ApplyOwnerFilter(ctx, query)

	if filter.IsQuiz != nil {
		query = query.Where("is_quiz = ?", *filter.IsQuiz)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := Paginate(query, page, pageSize).
		Order(BuildOrderClause(sort, formSortFields, "updated_at")).
		Find(&forms).Error

	return forms, total, err
}

// ListByCreator returns every form of a creator, newest first
func (r *FormRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, filter FormFilter) ([]domain.Form, error) {
	var forms []domain.Form
	query := r.db.WithContext(ctx).Where("creator_id = ?", creatorID)
	if filter.IsQuiz != nil {
		query = query.Where("is_quiz = ?", *filter.IsQuiz)
	}
	err := query.Order("created_at DESC").Find(&forms).Error
	return forms, err
}

// Counts returns question and response counts keyed by form id
func (r *FormRepository) Counts(ctx context.Context, formIDs []uuid.UUID) (map[uuid.UUID]domain.FormCounts, error) {
	counts := make(map[uuid.UUID]domain.FormCounts, len(formIDs))
	if len(formIDs) == 0 {
		return counts, nil
	}

	type row struct {
		FormID uuid.UUID
		Count  int64
	}

	var questionRows []row
	if err := r.db.WithContext(ctx).Model(&domain.Question{}).
		Select("form_id, COUNT(*) AS count").
		Where("form_id IN ?", formIDs).
		Group("form_id").
		Scan(&questionRows).Error; err != nil {
		return nil, err
	}
	for _, qr := range questionRows {
		c := counts[qr.FormID]
		c.Questions = qr.Count
		counts[qr.FormID] = c
	}

	var responseRows []row
	if err := r.db.WithContext(ctx).Model(&domain.Response{}).
		Select("form_id, COUNT(*) AS count").
		Where("form_id IN ?", formIDs).
		Group("form_id").
		Scan(&responseRows).Error; err != nil {
		return nil, err
	}
	for _, rr := range responseRows {
		c := counts[rr.FormID]
		c.Responses = rr.Count
		counts[rr.FormID] = c
	}

	return counts, nil
}
