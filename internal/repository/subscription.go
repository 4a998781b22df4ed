package repository

import (
	"context"
	"smartsub/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	FindByID(ctx context.Context, id uint64) (*model.Subscription, error)
	// FindByIDTx reads a record inside an open transaction so purchase
	// validation and the resulting writes see one snapshot.
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*model.Subscription, error)
	UpdateState(ctx context.Context, id uint64, state model.SubscriptionState) error
	UpdatePrice(ctx context.Context, id uint64, priceWei uint64) error
	UpdateDuration(ctx context.Context, id uint64, durationSeconds uint64) error
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepoImpl) FindByID(ctx context.Context, id uint64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sub).Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*model.Subscription, error) {
	var sub model.Subscription
	err := tx.WithContext(ctx).
		Where("id = ?", id).
		First(&sub).Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) UpdateState(ctx context.Context, id uint64, state model.SubscriptionState) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"state": state,
	})
}

func (r *subscriptionRepoImpl) UpdatePrice(ctx context.Context, id uint64, priceWei uint64) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"price_wei": priceWei,
	})
}

func (r *subscriptionRepoImpl) UpdateDuration(ctx context.Context, id uint64, durationSeconds uint64) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"duration_seconds": durationSeconds,
	})
}

func (r *subscriptionRepoImpl) updateColumns(ctx context.Context, id uint64, values map[string]interface{}) error {
	values["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ?", id).
		Updates(values)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
