package repository

import (
	"context"
	"smartsub/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveSub is one row of the active-subscription enumeration: the product
// and the user's expiry for it.
type ActiveSub struct {
	SubscriptionID uint64
	Title          string
	ExpiresAt      int64
}

type UserSubRepository interface {
	Get(ctx context.Context, userAddress string, subscriptionID uint64) (*model.UserSubscription, error)
	GetTx(ctx context.Context, tx *gorm.DB, userAddress string, subscriptionID uint64) (*model.UserSubscription, error)
	Upsert(ctx context.Context, tx *gorm.DB, userSub *model.UserSubscription) error
	// ActiveForUser lists every existing product the user still has unexpired
	// access to, ascending by subscription ID.
	ActiveForUser(ctx context.Context, userAddress string, now int64) ([]*ActiveSub, error)
}

type userSubRepoImpl struct {
	db *gorm.DB
}

func NewUserSubRepository(db *gorm.DB) UserSubRepository {
	return &userSubRepoImpl{
		db: db,
	}
}

func (r *userSubRepoImpl) Get(ctx context.Context, userAddress string, subscriptionID uint64) (*model.UserSubscription, error) {
	return r.get(ctx, r.db, userAddress, subscriptionID)
}

func (r *userSubRepoImpl) GetTx(ctx context.Context, tx *gorm.DB, userAddress string, subscriptionID uint64) (*model.UserSubscription, error) {
	return r.get(ctx, tx, userAddress, subscriptionID)
}

func (r *userSubRepoImpl) get(ctx context.Context, db *gorm.DB, userAddress string, subscriptionID uint64) (*model.UserSubscription, error) {
	var userSub model.UserSubscription
	err := db.WithContext(ctx).
		Where("user_address = ? AND subscription_id = ?", userAddress, subscriptionID).
		First(&userSub).Error

	if err != nil {
		return nil, err
	}

	return &userSub, nil
}

func (r *userSubRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, userSub *model.UserSubscription) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_address"}, {Name: "subscription_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"expires_at": userSub.ExpiresAt,
			"updated_at": time.Now(),
		}),
	}).Create(&userSub).Error
}

func (r *userSubRepoImpl) ActiveForUser(ctx context.Context, userAddress string, now int64) ([]*ActiveSub, error) {
	var rows []*ActiveSub

	err := r.db.WithContext(ctx).
		Table("user_subscriptions").
		Select("user_subscriptions.subscription_id, subscriptions.title, user_subscriptions.expires_at").
		Joins("JOIN subscriptions ON subscriptions.id = user_subscriptions.subscription_id").
		Where("user_subscriptions.user_address = ?", userAddress).
		Where("user_subscriptions.expires_at > ?", now).
		Order("user_subscriptions.subscription_id ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
