package model

import "time"

type SubscriptionState string

const (
	StateActive SubscriptionState = "ACTIVE"
	StatePaused SubscriptionState = "PAUSED"
)

// Subscription is a creator-defined product. IDs are allocated by the
// database in one global sequence starting at 1; 0 never identifies a record.
type Subscription struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement"`
	Title           string            `gorm:"size:255;not null"`
	DurationSeconds uint64            `gorm:"not null"` // access granted per purchase
	PriceWei        uint64            `gorm:"not null"` // exact payment required per purchase
	Owner           string            `gorm:"size:64;index;not null"`
	State           SubscriptionState `gorm:"size:16;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserSubscription holds the absolute expiry of a user's access to one
// product. No row means the user never held the product (expiry 0).
type UserSubscription struct {
	UserAddress    string `gorm:"primaryKey;size:64;not null"`
	SubscriptionID uint64 `gorm:"primaryKey;autoIncrement:false;not null"`
	ExpiresAt      int64  `gorm:"not null"` // unix seconds
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreatorBalance is the withdrawable total owed to a creator, credited on
// every purchase or gift of their products and zeroed on withdrawal.
type CreatorBalance struct {
	Creator   string `gorm:"primaryKey;size:64;not null"`
	AmountWei uint64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PaymentKind string

const (
	PaymentPurchase   PaymentKind = "PURCHASE"
	PaymentGift       PaymentKind = "GIFT"
	PaymentWithdrawal PaymentKind = "WITHDRAWAL"
)

// Payment is the journal row written for every movement of value: who paid,
// who benefited, and for withdrawals the payout reference.
type Payment struct {
	ID             uint64      `gorm:"primaryKey"`
	Kind           PaymentKind `gorm:"size:16;index;not null"`
	Payer          string      `gorm:"size:64;index"`
	Beneficiary    string      `gorm:"size:64;index;not null"`
	SubscriptionID uint64      `gorm:"index"` // 0 for withdrawals
	AmountWei      uint64      `gorm:"not null"`
	PayoutRef      string      `gorm:"size:64"`
	CreatedAt      time.Time
}
