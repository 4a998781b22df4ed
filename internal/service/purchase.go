package service

import (
	"context"
	"errors"
	"fmt"
	"smartsub/internal/model"
	"smartsub/internal/repository"
	"time"

	"gorm.io/gorm"
)

// PurchaseService is the user side of the ledger: buying and gifting access,
// and reading who holds what.
type PurchaseService interface {
	// BuySub grants the buyer access to the product, paying amountWei.
	// The amount must exactly equal the product price.
	BuySub(ctx context.Context, buyer string, id uint64, amountWei uint64) (int64, error)
	// GiftSub is a purchase where the payer and the access recipient differ.
	GiftSub(ctx context.Context, payer, recipient string, id uint64, amountWei uint64) (int64, error)
	IsUserSubscribed(ctx context.Context, userAddress string, id uint64) (bool, error)
	// UserSubExpiry returns the raw stored expiry, 0 for never subscribed.
	UserSubExpiry(ctx context.Context, userAddress string, id uint64) (int64, error)
	GetActiveSubs(ctx context.Context, userAddress string) ([]*repository.ActiveSub, error)
}

type purchaseServiceImpl struct {
	db          *gorm.DB
	subRepo     repository.SubscriptionRepository
	userSubRepo repository.UserSubRepository
	balanceRepo repository.BalanceRepository
	paymentRepo repository.PaymentRepository
	now         func() time.Time
}

// NewPurchaseService wires the purchase path. A nil now falls back to
// time.Now; tests pass a fixed clock to pin expiry arithmetic.
func NewPurchaseService(
	db *gorm.DB,
	subRepo repository.SubscriptionRepository,
	userSubRepo repository.UserSubRepository,
	balanceRepo repository.BalanceRepository,
	paymentRepo repository.PaymentRepository,
	now func() time.Time,
) PurchaseService {
	if now == nil {
		now = time.Now
	}
	return &purchaseServiceImpl{
		db:          db,
		subRepo:     subRepo,
		userSubRepo: userSubRepo,
		balanceRepo: balanceRepo,
		paymentRepo: paymentRepo,
		now:         now,
	}
}

func (s *purchaseServiceImpl) BuySub(ctx context.Context, buyer string, id uint64, amountWei uint64) (int64, error) {
	return s.grant(ctx, buyer, buyer, id, amountWei, model.PaymentPurchase)
}

func (s *purchaseServiceImpl) GiftSub(ctx context.Context, payer, recipient string, id uint64, amountWei uint64) (int64, error) {
	return s.grant(ctx, payer, recipient, id, amountWei, model.PaymentGift)
}

// grant runs the whole purchase as one transaction: validate the product and
// payment, extend the recipient's expiry, credit the owner, journal the
// payment. A failure at any step leaves no state change.
func (s *purchaseServiceImpl) grant(ctx context.Context, payer, recipient string, id uint64, amountWei uint64, kind model.PaymentKind) (int64, error) {
	var newExpiry int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.subRepo.FindByIDTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrSubscriptionPaused
			}
			return fmt.Errorf("load subscription: %w", err)
		}

		if sub.State != model.StateActive {
			return model.ErrSubscriptionPaused
		}

		if amountWei != sub.PriceWei {
			return &model.IncorrectValueError{Sent: amountWei, Required: sub.PriceWei}
		}

		// purchases stack: extend from the current expiry when it is still
		// in the future, otherwise start fresh from now
		start := s.now().Unix()
		if current, err := s.userSubRepo.GetTx(ctx, tx, recipient, id); err == nil {
			if current.ExpiresAt > start {
				start = current.ExpiresAt
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load user subscription: %w", err)
		}
		newExpiry = start + int64(sub.DurationSeconds)

		err = s.userSubRepo.Upsert(ctx, tx, &model.UserSubscription{
			UserAddress:    recipient,
			SubscriptionID: id,
			ExpiresAt:      newExpiry,
		})
		if err != nil {
			return fmt.Errorf("store user subscription: %w", err)
		}

		if err := s.balanceRepo.Credit(ctx, tx, sub.Owner, amountWei); err != nil {
			return fmt.Errorf("credit creator balance: %w", err)
		}

		err = s.paymentRepo.Create(ctx, tx, &model.Payment{
			Kind:           kind,
			Payer:          payer,
			Beneficiary:    recipient,
			SubscriptionID: id,
			AmountWei:      amountWei,
		})
		if err != nil {
			return fmt.Errorf("journal payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newExpiry, nil
}

func (s *purchaseServiceImpl) IsUserSubscribed(ctx context.Context, userAddress string, id uint64) (bool, error) {
	expiry, err := s.UserSubExpiry(ctx, userAddress, id)
	if err != nil {
		return false, err
	}
	return expiry > s.now().Unix(), nil
}

func (s *purchaseServiceImpl) UserSubExpiry(ctx context.Context, userAddress string, id uint64) (int64, error) {
	userSub, err := s.userSubRepo.Get(ctx, userAddress, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return userSub.ExpiresAt, nil
}

func (s *purchaseServiceImpl) GetActiveSubs(ctx context.Context, userAddress string) ([]*repository.ActiveSub, error) {
	return s.userSubRepo.ActiveForUser(ctx, userAddress, s.now().Unix())
}
