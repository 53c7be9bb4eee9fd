package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// fakeDurableRepo is an in-memory stand-in for the mongo-backed durable
// store, honoring the same ordering and paging contract.
type fakeDurableRepo struct {
	mu          sync.Mutex
	sessions    []domain.WorkoutSession
	nextID      int
	saveErr     error
	saveManyErr error
	listErr     error
}

func newFakeDurableRepo() *fakeDurableRepo {
	return &fakeDurableRepo{}
}

func (r *fakeDurableRepo) Save(_ context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.nextID++
	session.ID = fmt.Sprintf("durable-%d", r.nextID)
	session.CreatedAt = time.Now().UTC()
	r.sessions = append(r.sessions, *session)
	return session, nil
}

func (r *fakeDurableRepo) SaveMany(_ context.Context, sessions []domain.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveManyErr != nil {
		return r.saveManyErr
	}
	now := time.Now().UTC()
	for i := range sessions {
		r.nextID++
		sessions[i].ID = fmt.Sprintf("durable-%d", r.nextID)
		sessions[i].CreatedAt = now
		r.sessions = append(r.sessions, sessions[i])
	}
	return nil
}

func (r *fakeDurableRepo) List(_ context.Context, ownerID string, page *repository.Pagination) (repository.SessionPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return repository.SessionPage{}, r.listErr
	}

	owned := make([]domain.WorkoutSession, 0, len(r.sessions))
	for _, session := range r.sessions {
		if session.OwnerID == ownerID {
			owned = append(owned, session)
		}
	}
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

func (r *fakeDurableRepo) Delete(_ context.Context, sessionID, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, session := range r.sessions {
		if session.ID == sessionID && session.OwnerID == ownerID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDurableRepo) CountFor(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, session := range r.sessions {
		if session.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeArchive records uploads and hands back deterministic URLs.
type fakeArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: map[string][]byte{}}
}

func (a *fakeArchive) UploadArchive(_ context.Context, objectKey string, body []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[objectKey] = body
	return nil
}

func (a *fakeArchive) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://archive.test/" + objectKey, nil
}

func (a *fakeArchive) DeleteObject(_ context.Context, objectKey string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.objects, objectKey)
	return nil
}
