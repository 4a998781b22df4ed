package service

import (
	"context"
	"errors"
	"fmt"
	"smartsub/internal/client"
	"smartsub/internal/model"
	"smartsub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BalanceService exposes a creator's own accumulated balance and its
// withdrawal. There is no way to read or withdraw someone else's balance.
type BalanceService interface {
	ViewBalance(ctx context.Context, caller string) (uint64, error)
	// WithdrawBalance pays out the full balance and zeroes it, atomically.
	// Returns the amount paid and the payout reference.
	WithdrawBalance(ctx context.Context, caller string) (uint64, string, error)
	PaymentHistory(ctx context.Context, caller string) ([]*model.Payment, error)
}

type balanceServiceImpl struct {
	db           *gorm.DB
	balanceRepo  repository.BalanceRepository
	paymentRepo  repository.PaymentRepository
	payoutClient client.PayoutClient
}

func NewBalanceService(
	db *gorm.DB,
	balanceRepo repository.BalanceRepository,
	paymentRepo repository.PaymentRepository,
	payoutClient client.PayoutClient,
) BalanceService {
	return &balanceServiceImpl{
		db:           db,
		balanceRepo:  balanceRepo,
		paymentRepo:  paymentRepo,
		payoutClient: payoutClient,
	}
}

func (s *balanceServiceImpl) ViewBalance(ctx context.Context, caller string) (uint64, error) {
	balance, err := s.balanceRepo.Get(ctx, caller)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance.AmountWei, nil
}

func (s *balanceServiceImpl) WithdrawBalance(ctx context.Context, caller string) (uint64, string, error) {
	var amount uint64
	payoutRef := uuid.NewString()

	// The debit lands strictly before the outbound transfer. A transfer
	// failure returns an error out of the closure, which rolls the debit
	// back; the two can never commit separately.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		amount, err = s.balanceRepo.DebitAll(ctx, tx, caller)
		if err != nil {
			return err
		}

		err = s.paymentRepo.Create(ctx, tx, &model.Payment{
			Kind:        model.PaymentWithdrawal,
			Beneficiary: caller,
			AmountWei:   amount,
			PayoutRef:   payoutRef,
		})
		if err != nil {
			return fmt.Errorf("journal withdrawal: %w", err)
		}

		if err := s.payoutClient.Transfer(ctx, caller, amount, payoutRef); err != nil {
			return fmt.Errorf("payout transfer: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, "", err
	}

	return amount, payoutRef, nil
}

func (s *balanceServiceImpl) PaymentHistory(ctx context.Context, caller string) ([]*model.Payment, error) {
	return s.paymentRepo.ListForAddress(ctx, caller)
}
