package repository

import (
	"context"
	"smartsub/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	// ListForAddress returns the journal rows where the address paid or was
	// paid, newest first.
	ListForAddress(ctx context.Context, address string) ([]*model.Payment, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) ListForAddress(ctx context.Context, address string) ([]*model.Payment, error) {
	var payments []*model.Payment

	err := r.db.WithContext(ctx).
		Where("payer = ? OR beneficiary = ?", address, address).
		Order("id DESC").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}
