package dto

type CreateSubRequest struct {
	Title               string `json:"title" validate:"required"`
	DurationSeconds     uint64 `json:"duration_seconds" validate:"gt=0"`
	PriceWei            uint64 `json:"price_wei"`
	ActivateImmediately bool   `json:"activate_immediately"`
}

type CreateSubResponse struct {
	ID uint64 `json:"id"`
}

type SetPriceRequest struct {
	PriceWei uint64 `json:"price_wei"`
}

type SetDurationRequest struct {
	DurationSeconds uint64 `json:"duration_seconds" validate:"gt=0"`
}

// SubRecord mirrors the raw registry record; never-created IDs come back
// all-zero with Exists false rather than as an error.
type SubRecord struct {
	Exists          bool   `json:"exists"`
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	DurationSeconds uint64 `json:"duration_seconds"`
	PriceWei        uint64 `json:"price_wei"`
	Owner           string `json:"owner"`
	State           string `json:"state"`
}

type BuySubRequest struct {
	AmountWei uint64 `json:"amount_wei"`
}

type GiftSubRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	AmountWei uint64 `json:"amount_wei"`
}

type PurchaseResponse struct {
	SubscriptionID uint64 `json:"subscription_id"`
	ExpiresAt      int64  `json:"expires_at"`
}

type UserSubResponse struct {
	ExpiresAt int64 `json:"expires_at"`
}

type SubscribedResponse struct {
	Subscribed bool `json:"subscribed"`
}

// ActiveSubsResponse carries three parallel slices of equal length,
// ordered by ascending subscription ID.
type ActiveSubsResponse struct {
	Titles      []string `json:"titles"`
	IDs         []uint64 `json:"ids"`
	Expirations []int64  `json:"expirations"`
}

type BalanceResponse struct {
	AmountWei uint64 `json:"amount_wei"`
}

type WithdrawResponse struct {
	AmountWei uint64 `json:"amount_wei"`
	PayoutRef string `json:"payout_ref"`
}

type PaymentRecord struct {
	Kind           string `json:"kind"`
	Payer          string `json:"payer,omitempty"`
	Beneficiary    string `json:"beneficiary"`
	SubscriptionID uint64 `json:"subscription_id,omitempty"`
	AmountWei      uint64 `json:"amount_wei"`
	PayoutRef      string `json:"payout_ref,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}
