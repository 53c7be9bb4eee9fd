package service

import (
	"alcyxob/workout-tracker/internal/repository/local"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer_EmptyStoreIsNoOpSuccess(t *testing.T) {
	ephemeral := local.NewLocalSessionStore(storage.NewMemoryBucket())
	durable := newFakeDurableRepo()
	svc := NewMigrationService(ephemeral, durable)
	ctx := context.Background()

	require.NoError(t, svc.Transfer(ctx, "u1"))

	count, err := durable.CountFor(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTransfer_MovesAllRecordsAndClears(t *testing.T) {
	ephemeral := local.NewLocalSessionStore(storage.NewMemoryBucket())
	durable := newFakeDurableRepo()
	svc := NewMigrationService(ephemeral, durable)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		session := validSession(time.Now().AddDate(0, 0, -i))
		session.OwnerID = "demo-owner"
		_, err := ephemeral.Save(ctx, &session)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Transfer(ctx, "u1"))

	// Durable store gained exactly the transferred records, re-owned and
	// re-identified.
	count, err := durable.CountFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page, err := durable.List(ctx, "u1", nil)
	require.NoError(t, err)
	for _, session := range page.Items {
		assert.Equal(t, "u1", session.OwnerID)
		assert.NotEmpty(t, session.ID)
	}

	// Ephemeral store is destroyed wholesale.
	remaining, err := ephemeral.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestTransfer_InsertFailureLeavesEphemeralIntact(t *testing.T) {
	ephemeral := local.NewLocalSessionStore(storage.NewMemoryBucket())
	durable := newFakeDurableRepo()
	durable.saveManyErr = errors.New("bulk insert refused")
	svc := NewMigrationService(ephemeral, durable)
	ctx := context.Background()

	session := validSession(time.Now())
	session.OwnerID = "demo-owner"
	_, err := ephemeral.Save(ctx, &session)
	require.NoError(t, err)

	err = svc.Transfer(ctx, "u1")
	assert.ErrorIs(t, err, ErrMigrationFailed)

	remaining, err := ephemeral.All(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	count, err := durable.CountFor(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTransfer_AdoptsRecordsRegardlessOfPriorOwner(t *testing.T) {
	ephemeral := local.NewLocalSessionStore(storage.NewMemoryBucket())
	durable := newFakeDurableRepo()
	svc := NewMigrationService(ephemeral, durable)
	ctx := context.Background()

	// Ephemeral data has no meaningful owner partition; everything in the
	// bucket is transferred.
	first := validSession(time.Now())
	first.OwnerID = "demo-a"
	second := validSession(time.Now().AddDate(0, 0, -1))
	second.OwnerID = "demo-b"
	_, err := ephemeral.Save(ctx, &first)
	require.NoError(t, err)
	_, err = ephemeral.Save(ctx, &second)
	require.NoError(t, err)

	require.NoError(t, svc.Transfer(ctx, "u1"))

	count, err := durable.CountFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTransfer_RequiresOwner(t *testing.T) {
	ephemeral := local.NewLocalSessionStore(storage.NewMemoryBucket())
	svc := NewMigrationService(ephemeral, newFakeDurableRepo())

	assert.Error(t, svc.Transfer(context.Background(), ""))
}
