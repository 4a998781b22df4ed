package repository

import (
	"context"
	"errors"
	"smartsub/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository interface {
	Get(ctx context.Context, creator string) (*model.CreatorBalance, error)
	// Credit adds amountWei to the creator's balance, creating the row on
	// first credit. Runs inside the purchase transaction.
	Credit(ctx context.Context, tx *gorm.DB, creator string, amountWei uint64) error
	// DebitAll zeroes the balance and returns the amount it held. The update
	// is guarded by the previously read amount, so a concurrent credit or
	// withdrawal makes the guarded update match nothing and the transaction
	// retries at the caller's discretion rather than double-paying.
	DebitAll(ctx context.Context, tx *gorm.DB, creator string) (uint64, error)
}

type balanceRepoImpl struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepoImpl{
		db: db,
	}
}

func (r *balanceRepoImpl) Get(ctx context.Context, creator string) (*model.CreatorBalance, error) {
	var balance model.CreatorBalance
	err := r.db.WithContext(ctx).
		Where("creator = ?", creator).
		First(&balance).Error

	if err != nil {
		return nil, err
	}

	return &balance, nil
}

func (r *balanceRepoImpl) Credit(ctx context.Context, tx *gorm.DB, creator string, amountWei uint64) error {
	balance := &model.CreatorBalance{
		Creator:   creator,
		AmountWei: amountWei,
	}

	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount_wei": gorm.Expr("creator_balances.amount_wei + ?", amountWei),
			"updated_at": time.Now(),
		}),
	}).Create(&balance).Error
}

func (r *balanceRepoImpl) DebitAll(ctx context.Context, tx *gorm.DB, creator string) (uint64, error) {
	var balance model.CreatorBalance
	err := tx.WithContext(ctx).
		Where("creator = ?", creator).
		First(&balance).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, model.ErrEmptyBalance
		}
		return 0, err
	}

	if balance.AmountWei == 0 {
		return 0, model.ErrEmptyBalance
	}

	result := tx.WithContext(ctx).
		Model(&model.CreatorBalance{}).
		Where("creator = ? AND amount_wei = ?", creator, balance.AmountWei).
		Updates(map[string]interface{}{
			"amount_wei": 0,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	return balance.AmountWei, nil
}
