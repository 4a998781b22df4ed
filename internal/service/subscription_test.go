package service_test

import (
	"context"
	"testing"

	"smartsub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSub_AssignsSequentialIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// the ID sequence is global, not per creator
	first, err := env.subs.CreateSub(ctx, alice, "First", 30, 5000, true)
	require.NoError(t, err)
	second, err := env.subs.CreateSub(ctx, bob, "Second", 60, 100, false)
	require.NoError(t, err)
	third, err := env.subs.CreateSub(ctx, alice, "Third", 90, 0, true)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, uint64(3), third)
}

func TestCreateSub_StoresRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createSub(t, alice, "Premium", 2592000, 7500, true)

	sub, exists, err := env.subs.GetSub(ctx, id)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "Premium", sub.Title)
	assert.Equal(t, uint64(2592000), sub.DurationSeconds)
	assert.Equal(t, uint64(7500), sub.PriceWei)
	assert.Equal(t, alice, sub.Owner)
	assert.Equal(t, model.StateActive, sub.State)
}

func TestCreateSub_PausedUnlessActivated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createSub(t, alice, "Draft", 30, 100, false)

	sub, exists, err := env.subs.GetSub(ctx, id)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, model.StatePaused, sub.State)

	active, err := env.subs.IsSubActive(ctx, id)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCreateSub_RejectsZeroDuration(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.subs.CreateSub(context.Background(), alice, "Broken", 0, 100, true)
	assert.ErrorIs(t, err, model.ErrInvalidDuration)
}

func TestGetSub_NeverCreated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, id := range []uint64{0, 1, 42} {
		sub, exists, err := env.subs.GetSub(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Nil(t, sub)
	}
}

func TestActivatePause_FlipsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createSub(t, alice, "Toggle", 30, 100, true)

	require.NoError(t, env.subs.PauseSub(ctx, alice, id))
	active, err := env.subs.IsSubActive(ctx, id)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, env.subs.ActivateSub(ctx, alice, id))
	active, err = env.subs.IsSubActive(ctx, id)
	require.NoError(t, err)
	assert.True(t, active)

	// re-activating an already-active sub is a no-op, not an error
	require.NoError(t, env.subs.ActivateSub(ctx, alice, id))
	active, err = env.subs.IsSubActive(ctx, id)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestActivatePause_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createSub(t, alice, "Guarded", 30, 100, true)

	var notOwner *model.NotOwnerError

	err := env.subs.PauseSub(ctx, bob, id)
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, bob, notOwner.Caller)

	err = env.subs.ActivateSub(ctx, carol, id)
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, carol, notOwner.Caller)

	// the failed attempts changed nothing
	active, err := env.subs.IsSubActive(ctx, id)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestActivatePause_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	err := env.subs.ActivateSub(context.Background(), alice, 99)
	assert.ErrorIs(t, err, model.ErrSubscriptionNotFound)
}

func TestSetSubPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createSub(t, alice, "Repriced", 30, 100, true)

	require.NoError(t, env.subs.SetSubPrice(ctx, alice, id, 250))

	sub, _, err := env.subs.GetSub(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), sub.PriceWei)

	var notOwner *model.NotOwnerError
	err = env.subs.SetSubPrice(ctx, bob, id, 1)
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, bob, notOwner.Caller)
}

func TestSetSubDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createSub(t, alice, "Stretched", 30, 100, true)

	require.NoError(t, env.subs.SetSubDuration(ctx, alice, id, 90))

	sub, _, err := env.subs.GetSub(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), sub.DurationSeconds)

	assert.ErrorIs(t, env.subs.SetSubDuration(ctx, alice, id, 0), model.ErrInvalidDuration)

	var notOwner *model.NotOwnerError
	err = env.subs.SetSubDuration(ctx, bob, id, 10)
	require.ErrorAs(t, err, &notOwner)
}

func TestIsSubActive_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	active, err := env.subs.IsSubActive(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, active)
}
