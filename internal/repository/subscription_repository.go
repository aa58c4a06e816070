package repository

import (
	"context"
	"errors"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert creates the user's subscription or overwrites the existing one.
// The id of an existing row is kept.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Subscription
		err := tx.Where("user_id = ?", sub.UserID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(sub).Error
		case err != nil:
			return err
		}
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		return tx.Save(sub).Error
	})
}

// ExpireEnded marks active subscriptions whose end date is not after now as
// expired and returns how many rows changed
func (r *SubscriptionRepository) ExpireEnded(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("status = ? AND end_date <= ?", domain.SubscriptionStatusActive, now).
		Update("status", domain.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
