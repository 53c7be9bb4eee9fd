package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// --- Service Interface ---

// TrackingService is the single entry point for recording and reading
// workout sessions. The backend is selected per call from the identity
// mode: demo identities hit the ephemeral store, registered identities the
// durable one. All failures are returned as values; retries are left to
// the caller because a retried save after an ambiguous failure may create
// a duplicate session.
type TrackingService interface {
	TrackWorkout(ctx context.Context, identity *domain.Identity, session domain.WorkoutSession) (*domain.WorkoutSession, error)
	LoadHistory(ctx context.Context, identity *domain.Identity, page, pageSize int) (repository.SessionPage, error)
	RemoveWorkout(ctx context.Context, identity *domain.Identity, sessionID string) (bool, error)
	GetStatistics(ctx context.Context, identity *domain.Identity) (domain.Statistics, error)
	ExportHistory(ctx context.Context, identity *domain.Identity) (string, error)
}

// --- Service Implementation ---

// trackingService implements the TrackingService interface.
type trackingService struct {
	ephemeralRepo repository.EphemeralSessionRepository
	durableRepo   repository.DurableSessionRepository
	archive       storage.ArchiveStorage // nil when export is not configured
	now           func() time.Time
}

// NewTrackingService creates a new instance of trackingService.
// archive may be nil; ExportHistory then reports ErrExportUnavailable.
func NewTrackingService(
	ephemeralRepo repository.EphemeralSessionRepository,
	durableRepo repository.DurableSessionRepository,
	archive storage.ArchiveStorage,
) TrackingService {
	return &trackingService{
		ephemeralRepo: ephemeralRepo,
		durableRepo:   durableRepo,
		archive:       archive,
		now:           time.Now,
	}
}

// backendFor selects the session backend from the identity mode.
func (s *trackingService) backendFor(identity *domain.Identity) repository.SessionRepository {
	if identity.IsDemo() {
		return s.ephemeralRepo
	}
	return s.durableRepo
}

// TrackWorkout validates and persists a new session for the identity.
func (s *trackingService) TrackWorkout(ctx context.Context, identity *domain.Identity, session domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if identity == nil || identity.OwnerID == "" {
		return nil, ErrAuthenticationRequired
	}

	if verr := ValidateSession(&session, s.now()); verr != nil {
		return nil, verr
	}

	// The backend assigns id and createdAt; anything the caller set there
	// is discarded.
	session.ID = ""
	session.OwnerID = identity.OwnerID

	saved, err := s.backendFor(identity).Save(ctx, &session)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"ownerId": identity.OwnerID,
			"mode":    identity.Mode,
		}).Error("failed to save workout session")
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	log.WithFields(log.Fields{
		"ownerId":   saved.OwnerID,
		"sessionId": saved.ID,
		"mode":      identity.Mode,
	}).Info("workout session tracked")
	return saved, nil
}

// LoadHistory returns one page of the identity's session history.
func (s *trackingService) LoadHistory(ctx context.Context, identity *domain.Identity, page, pageSize int) (repository.SessionPage, error) {
	if identity == nil || identity.OwnerID == "" {
		return repository.SessionPage{}, ErrAuthenticationRequired
	}
	if page < 1 || pageSize < 1 {
		return repository.SessionPage{}, ErrInvalidPagination
	}

	result, err := s.backendFor(identity).List(ctx, identity.OwnerID, &repository.Pagination{Page: page, PageSize: pageSize})
	if err != nil {
		return repository.SessionPage{}, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return result, nil
}

// RemoveWorkout deletes one of the identity's sessions and reports whether
// anything was removed. Deletion is terminal; there is no update path.
func (s *trackingService) RemoveWorkout(ctx context.Context, identity *domain.Identity, sessionID string) (bool, error) {
	if identity == nil || identity.OwnerID == "" {
		return false, ErrAuthenticationRequired
	}

	removed, err := s.backendFor(identity).Delete(ctx, sessionID, identity.OwnerID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return removed, nil
}

// GetStatistics aggregates the identity's full (unpaginated) history.
func (s *trackingService) GetStatistics(ctx context.Context, identity *domain.Identity) (domain.Statistics, error) {
	if identity == nil || identity.OwnerID == "" {
		return domain.Statistics{}, ErrAuthenticationRequired
	}

	result, err := s.backendFor(identity).List(ctx, identity.OwnerID, nil)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return AggregateStatistics(result.Items, s.now()), nil
}

// ExportHistory serializes the identity's full history, uploads it as a
// JSON archive and returns a presigned download URL.
func (s *trackingService) ExportHistory(ctx context.Context, identity *domain.Identity) (string, error) {
	if identity == nil || identity.OwnerID == "" {
		return "", ErrAuthenticationRequired
	}
	if s.archive == nil {
		return "", ErrExportUnavailable
	}

	result, err := s.backendFor(identity).List(ctx, identity.OwnerID, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	body, err := json.MarshalIndent(result.Items, "", "  ")
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("exports/%s/history-%s.json", identity.OwnerID, s.now().UTC().Format("20060102-150405"))
	if err := s.archive.UploadArchive(ctx, objectKey, body, "application/json"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	url, err := s.archive.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	log.WithFields(log.Fields{
		"ownerId": identity.OwnerID,
		"key":     objectKey,
		"count":   result.TotalCount,
	}).Info("history archive exported")
	return url, nil
}
