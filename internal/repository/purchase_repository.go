package repository

import (
	"context"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// CreateForForm stores the purchase and, when it targets a form, marks the
// form as paid in the same transaction
func (r *PurchaseRepository) CreateForForm(ctx context.Context, purchase *domain.FormPurchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Form").Create(purchase).Error; err != nil {
			return err
		}
		if purchase.FormID == nil {
			return nil
		}
		return tx.Model(&domain.Form{}).
			Where("id = ?", *purchase.FormID).
			Updates(map[string]interface{}{
				"is_paid":     true,
				"purchase_id": purchase.ID,
			}).Error
	})
}

// ListByUser returns the user's purchases newest first with their form preloaded
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FormPurchase, error) {
	var purchases []domain.FormPurchase
	err := r.db.WithContext(ctx).
		Preload("Form").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
