// Package local implements the ephemeral, device-local session backend used
// for demo identities. All records live in one named bucket as a flat JSON
// list; there is no per-owner partition at the storage level, so owner
// filtering happens in memory on read.
package local

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// localSessionStore implements repository.EphemeralSessionRepository on top
// of an injectable storage.Bucket.
type localSessionStore struct {
	bucket storage.Bucket
	mu     sync.Mutex // serializes read-modify-write cycles on the bucket
}

// NewLocalSessionStore creates the ephemeral session store.
func NewLocalSessionStore(bucket storage.Bucket) repository.EphemeralSessionRepository {
	return &localSessionStore{bucket: bucket}
}

func (s *localSessionStore) load(ctx context.Context) ([]domain.WorkoutSession, error) {
	data, err := s.bucket.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []domain.WorkoutSession{}, nil
	}

	var sessions []domain.WorkoutSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *localSessionStore) persist(ctx context.Context, sessions []domain.WorkoutSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return s.bucket.Set(ctx, data)
}

// Save assigns an ephemeral id and createdAt, appends the session to the
// bucket and returns the stored record.
func (s *localSessionStore) Save(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	session.ID = uuid.NewString()
	session.CreatedAt = time.Now().UTC()

	sessions = append(sessions, *session)
	if err := s.persist(ctx, sessions); err != nil {
		return nil, err
	}
	return session, nil
}

// List returns one page of the owner's history, newest-first by date, with
// the same slice semantics as the durable backend.
func (s *localSessionStore) List(ctx context.Context, ownerID string, page *repository.Pagination) (repository.SessionPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return repository.SessionPage{}, err
	}

	owned := make([]domain.WorkoutSession, 0, len(sessions))
	for _, session := range sessions {
		if session.OwnerID == ownerID {
			owned = append(owned, session)
		}
	}

	// Same ordering as the mongo backend: date desc, createdAt desc.
	sort.SliceStable(owned, func(i, j int) bool {
		if !owned[i].Date.Equal(owned[j].Date) {
			return owned[i].Date.After(owned[j].Date)
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	if page != nil {
		start := page.Offset()
		if start > total {
			start = total
		}
		end := start + page.PageSize
		if end > total {
			end = total
		}
		owned = owned[start:end]
	}

	return repository.SessionPage{Items: owned, TotalCount: total}, nil
}

// Delete removes the session only if it belongs to ownerID.
func (s *localSessionStore) Delete(ctx context.Context, sessionID, ownerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i, session := range sessions {
		if session.ID == sessionID && session.OwnerID == ownerID {
			sessions = append(sessions[:i], sessions[i+1:]...)
			if err := s.persist(ctx, sessions); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// CountFor returns the number of sessions stored for the owner.
func (s *localSessionStore) CountFor(ctx context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, session := range sessions {
		if session.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// All returns every stored session regardless of owner. Migration uses this
// because ephemeral records predate any real owner.
func (s *localSessionStore) All(ctx context.Context) ([]domain.WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Clear destroys the whole ephemeral bucket.
func (s *localSessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucket.Clear(ctx)
}
