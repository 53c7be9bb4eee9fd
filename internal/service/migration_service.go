package service

import (
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// --- Service Interface ---

// MigrationService performs the one-shot transfer of ephemeral demo data
// into the durable store when a demo identity converts to a real account.
//
// The transfer is NOT transactionally atomic: it is bulk-insert followed by
// a clear of the ephemeral bucket. A crash between the two steps can leave
// the ephemeral data in place, and blindly retrying after an unknown
// outcome may duplicate records in the durable store. Callers must invoke
// Transfer at most once per conversion and treat an ambiguous result as
// unsafe to retry.
type MigrationService interface {
	Transfer(ctx context.Context, ownerID string) error
}

// --- Service Implementation ---

type migrationService struct {
	ephemeralRepo repository.EphemeralSessionRepository
	durableRepo   repository.DurableSessionRepository
}

// NewMigrationService creates a new instance of migrationService.
func NewMigrationService(
	ephemeralRepo repository.EphemeralSessionRepository,
	durableRepo repository.DurableSessionRepository,
) MigrationService {
	return &migrationService{
		ephemeralRepo: ephemeralRepo,
		durableRepo:   durableRepo,
	}
}

// Transfer moves every ephemeral record to the durable store under ownerID
// and clears the ephemeral bucket on success. An empty ephemeral store is a
// no-op success. On insert failure the ephemeral data is left untouched.
func (s *migrationService) Transfer(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.New("owner ID is required for transfer")
	}

	// Ephemeral data predates any real owner, so it is read unfiltered.
	sessions, err := s.ephemeralRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading ephemeral store: %v", ErrMigrationFailed, err)
	}
	if len(sessions) == 0 {
		log.WithField("ownerId", ownerID).Info("no demo sessions to transfer")
		return nil
	}

	// Ephemeral ids are meaningless in the durable store; the bulk insert
	// assigns fresh ones.
	for i := range sessions {
		sessions[i].ID = ""
		sessions[i].OwnerID = ownerID
	}

	if err := s.durableRepo.SaveMany(ctx, sessions); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"ownerId": ownerID,
			"count":   len(sessions),
		}).Error("transfer insert failed; ephemeral data left intact")
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	if err := s.ephemeralRepo.Clear(ctx); err != nil {
		// The insert already succeeded; a retried transfer from here would
		// duplicate records. Surface the error instead of retrying.
		log.WithError(err).WithField("ownerId", ownerID).Error("transfer inserted but ephemeral clear failed")
		return fmt.Errorf("%w: clearing ephemeral store: %v", ErrMigrationFailed, err)
	}

	log.WithFields(log.Fields{
		"ownerId": ownerID,
		"count":   len(sessions),
	}).Info("demo sessions transferred to durable store")
	return nil
}
