package local

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() repository.EphemeralSessionRepository {
	return NewLocalSessionStore(storage.NewMemoryBucket())
}

func storedSession(t *testing.T, store repository.EphemeralSessionRepository, ownerID string, date time.Time) domain.WorkoutSession {
	t.Helper()
	session := domain.WorkoutSession{
		OwnerID:         ownerID,
		Date:            date,
		DurationMinutes: 30,
		Exercises:       []domain.WorkoutExercise{{Name: "Squat", Sets: 3, Reps: "5"}},
	}
	saved, err := store.Save(context.Background(), &session)
	require.NoError(t, err)
	return *saved
}

func TestSave_AssignsIDAndCreatedAt(t *testing.T) {
	store := newTestStore()

	saved := storedSession(t, store, "owner-1", time.Now())
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	other := storedSession(t, store, "owner-1", time.Now())
	assert.NotEqual(t, saved.ID, other.ID)
}

func TestSave_SurvivesReload(t *testing.T) {
	bucket := storage.NewMemoryBucket()
	ctx := context.Background()

	first := NewLocalSessionStore(bucket)
	session := domain.WorkoutSession{OwnerID: "owner-1", Date: time.Now(), DurationMinutes: 20}
	_, err := first.Save(ctx, &session)
	require.NoError(t, err)

	// A fresh store over the same bucket sees the persisted record.
	second := NewLocalSessionStore(bucket)
	count, err := second.CountFor(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestList_FiltersByOwnerInMemory(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	storedSession(t, store, "owner-1", time.Now())
	storedSession(t, store, "owner-2", time.Now())
	storedSession(t, store, "owner-1", time.Now().AddDate(0, 0, -1))

	page, err := store.List(ctx, "owner-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Equal(t, "owner-1", item.OwnerID)
	}

	// The bucket itself is a flat, unpartitioned list.
	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestList_NewestFirstWithPagination(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		storedSession(t, store, "owner-1", time.Now().AddDate(0, 0, -i))
	}

	page, err := store.List(ctx, "owner-1", &repository.Pagination{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 15, page.TotalCount)
	require.Len(t, page.Items, 5)

	// Page 2 holds the 5 oldest sessions, still date-descending.
	for i := 1; i < len(page.Items); i++ {
		assert.True(t, !page.Items[i-1].Date.Before(page.Items[i].Date))
	}

	full, err := store.List(ctx, "owner-1", nil)
	require.NoError(t, err)
	assert.Equal(t, full.Items[10:], page.Items)
}

func TestList_PageBeyondEnd(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	storedSession(t, store, "owner-1", time.Now())

	page, err := store.List(ctx, "owner-1", &repository.Pagination{Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	// TotalCount reflects the full set regardless of the requested page.
	assert.Equal(t, 1, page.TotalCount)
}

func TestDelete_OwnerScoped(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	saved := storedSession(t, store, "owner-1", time.Now())

	removed, err := store.Delete(ctx, saved.ID, "owner-2")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.Delete(ctx, saved.ID, "owner-1")
	require.NoError(t, err)
	assert.True(t, removed)

	count, err := store.CountFor(ctx, "owner-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClear_DestroysBucket(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	storedSession(t, store, "owner-1", time.Now())
	storedSession(t, store, "owner-2", time.Now())

	require.NoError(t, store.Clear(ctx))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Clearing an already absent bucket is not an error.
	require.NoError(t, store.Clear(ctx))
}

func TestFileBucketStore(t *testing.T) {
	dir := t.TempDir()
	bucket := storage.NewFileBucket(dir, "demo_sessions")
	store := NewLocalSessionStore(bucket)
	ctx := context.Background()

	session := domain.WorkoutSession{OwnerID: "owner-1", Date: time.Now(), DurationMinutes: 25}
	_, err := store.Save(ctx, &session)
	require.NoError(t, err)

	reopened := NewLocalSessionStore(storage.NewFileBucket(dir, "demo_sessions"))
	count, err := reopened.CountFor(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, reopened.Clear(ctx))
	all, err := reopened.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
