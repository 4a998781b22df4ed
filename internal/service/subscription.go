package service

import (
	"context"
	"errors"
	"fmt"
	"smartsub/internal/model"
	"smartsub/internal/repository"

	"gorm.io/gorm"
)

// SubscriptionService is the registry side of the ledger: product records,
// their state toggles, and the owner-only field updates.
type SubscriptionService interface {
	CreateSub(ctx context.Context, owner, title string, durationSeconds, priceWei uint64, activateImmediately bool) (uint64, error)
	ActivateSub(ctx context.Context, caller string, id uint64) error
	PauseSub(ctx context.Context, caller string, id uint64) error
	SetSubPrice(ctx context.Context, caller string, id uint64, priceWei uint64) error
	SetSubDuration(ctx context.Context, caller string, id uint64, durationSeconds uint64) error
	IsSubActive(ctx context.Context, id uint64) (bool, error)
	// GetSub returns the raw record; the bool reports existence, and a
	// never-created ID yields (nil, false, nil) rather than an error.
	GetSub(ctx context.Context, id uint64) (*model.Subscription, bool, error)
}

type subscriptionServiceImpl struct {
	subRepo repository.SubscriptionRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionServiceImpl{
		subRepo: subRepo,
	}
}

func (s *subscriptionServiceImpl) CreateSub(ctx context.Context, owner, title string, durationSeconds, priceWei uint64, activateImmediately bool) (uint64, error) {
	if durationSeconds == 0 {
		return 0, model.ErrInvalidDuration
	}

	state := model.StatePaused
	if activateImmediately {
		state = model.StateActive
	}

	sub := &model.Subscription{
		Title:           title,
		DurationSeconds: durationSeconds,
		PriceWei:        priceWei,
		Owner:           owner,
		State:           state,
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		return 0, fmt.Errorf("store subscription in db: %w", err)
	}

	return sub.ID, nil
}

func (s *subscriptionServiceImpl) ActivateSub(ctx context.Context, caller string, id uint64) error {
	if err := s.requireOwner(ctx, caller, id); err != nil {
		return err
	}
	return s.subRepo.UpdateState(ctx, id, model.StateActive)
}

func (s *subscriptionServiceImpl) PauseSub(ctx context.Context, caller string, id uint64) error {
	if err := s.requireOwner(ctx, caller, id); err != nil {
		return err
	}
	return s.subRepo.UpdateState(ctx, id, model.StatePaused)
}

func (s *subscriptionServiceImpl) SetSubPrice(ctx context.Context, caller string, id uint64, priceWei uint64) error {
	if err := s.requireOwner(ctx, caller, id); err != nil {
		return err
	}
	// takes effect for subsequent purchases only; granted access is untouched
	return s.subRepo.UpdatePrice(ctx, id, priceWei)
}

func (s *subscriptionServiceImpl) SetSubDuration(ctx context.Context, caller string, id uint64, durationSeconds uint64) error {
	if durationSeconds == 0 {
		return model.ErrInvalidDuration
	}
	if err := s.requireOwner(ctx, caller, id); err != nil {
		return err
	}
	return s.subRepo.UpdateDuration(ctx, id, durationSeconds)
}

func (s *subscriptionServiceImpl) IsSubActive(ctx context.Context, id uint64) (bool, error) {
	sub, exists, err := s.GetSub(ctx, id)
	if err != nil {
		return false, err
	}
	return exists && sub.State == model.StateActive, nil
}

func (s *subscriptionServiceImpl) GetSub(ctx context.Context, id uint64) (*model.Subscription, bool, error) {
	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return sub, true, nil
}

func (s *subscriptionServiceImpl) requireOwner(ctx context.Context, caller string, id uint64) error {
	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrSubscriptionNotFound
		}
		return err
	}

	if sub.Owner != caller {
		return &model.NotOwnerError{Caller: caller}
	}

	return nil
}
