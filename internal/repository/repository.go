package repository

import (
	"alcyxob/workout-tracker/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Pagination selects one page of an owner's history. Pages are 1-based.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the index of the first item on the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// SessionPage is one slice of an owner's date-descending history.
// TotalCount is always the full owner-scoped count, regardless of the
// requested page.
type SessionPage struct {
	Items      []domain.WorkoutSession
	TotalCount int
}

// SessionRepository is the contract both session storage backends satisfy.
// Callers rely on both backends producing identical pages for identical
// underlying data, so they can switch backends transparently.
type SessionRepository interface {
	// Save assigns an id and createdAt, persists the session and returns
	// the stored record.
	Save(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error)

	// List returns the owner's sessions sorted newest-first by date.
	// A nil pagination returns the full set; otherwise Items is exactly
	// the slice [(page-1)*pageSize, page*pageSize) of the sorted set.
	List(ctx context.Context, ownerID string, page *Pagination) (SessionPage, error)

	// Delete removes the session only if it belongs to ownerID and
	// reports whether a record was removed.
	Delete(ctx context.Context, sessionID, ownerID string) (bool, error)

	// CountFor returns the number of sessions stored for the owner.
	CountFor(ctx context.Context, ownerID string) (int, error)
}

// EphemeralSessionRepository is the device-local backend used for demo
// identities. Ephemeral data has no per-owner partition at the storage
// level, so migration reads it unfiltered and clears it wholesale.
type EphemeralSessionRepository interface {
	SessionRepository

	// All returns every stored session regardless of owner.
	All(ctx context.Context) ([]domain.WorkoutSession, error)

	// Clear destroys the entire ephemeral bucket.
	Clear(ctx context.Context) error
}

// DurableSessionRepository is the multi-tenant backend used for registered
// identities. SaveMany is the bulk-insert path used by migration.
type DurableSessionRepository interface {
	SessionRepository

	// SaveMany inserts all sessions in one call, assigning fresh ids.
	SaveMany(ctx context.Context, sessions []domain.WorkoutSession) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
