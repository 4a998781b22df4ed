package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"smartsub/internal/client"
	"smartsub/internal/repository"
	"smartsub/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	alice = "0xa11ce00000000000000000000000000000000001"
	bob   = "0xb0b0000000000000000000000000000000000002"
	carol = "0xca401000000000000000000000000000000000003"
)

// testClock is a controllable time source for pinning expiry arithmetic.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type payout struct {
	toAddress string
	amountWei uint64
	reference string
}

type fakePayoutClient struct {
	mu        sync.Mutex
	transfers []payout
	failWith  error
}

func (f *fakePayoutClient) Transfer(_ context.Context, toAddress string, amountWei uint64, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.transfers = append(f.transfers, payout{toAddress: toAddress, amountWei: amountWei, reference: reference})
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.Migrate(db))
	return db
}

type testEnv struct {
	db        *gorm.DB
	clock     *testClock
	payout    *fakePayoutClient
	subs      service.SubscriptionService
	purchases service.PurchaseService
	balances  service.BalanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	clock := newTestClock()
	payoutClient := &fakePayoutClient{}

	subRepo := repository.NewSubscriptionRepository(db)
	userSubRepo := repository.NewUserSubRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	return &testEnv{
		db:        db,
		clock:     clock,
		payout:    payoutClient,
		subs:      service.NewSubscriptionService(subRepo),
		purchases: service.NewPurchaseService(db, subRepo, userSubRepo, balanceRepo, paymentRepo, clock.Now),
		balances:  service.NewBalanceService(db, balanceRepo, paymentRepo, payoutClient),
	}
}

// createSub is a shorthand for registering a product owned by owner.
func (e *testEnv) createSub(t *testing.T, owner, title string, duration, price uint64, active bool) uint64 {
	t.Helper()
	id, err := e.subs.CreateSub(context.Background(), owner, title, duration, price, active)
	require.NoError(t, err)
	return id
}
