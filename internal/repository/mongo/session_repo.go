// internal/repository/mongo/session_repo.go
package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "sessions"

// mongoSessionRepository implements repository.DurableSessionRepository.
// Row-level isolation by ownerId is enforced in every filter, never left
// to the caller.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates the durable session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.DurableSessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Save inserts a new session, assigning its id and createdAt.
func (r *mongoSessionRepository) Save(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if session.OwnerID == "" {
		return nil, errors.New("session requires an ownerId")
	}

	session.ID = primitive.NewObjectID().Hex()
	session.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveMany bulk-inserts sessions, assigning fresh ids and createdAt stamps.
// Used by migration; the insert is a single ordered InsertMany so either
// mongo accepts the batch or no clear of the ephemeral side happens.
func (r *mongoSessionRepository) SaveMany(ctx context.Context, sessions []domain.WorkoutSession) error {
	if len(sessions) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(sessions))
	for i := range sessions {
		sessions[i].ID = primitive.NewObjectID().Hex()
		sessions[i].CreatedAt = now
		docs[i] = sessions[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// List returns one page of the owner's history, newest-first by date.
// TotalCount is always the full owner-scoped count.
func (r *mongoSessionRepository) List(ctx context.Context, ownerID string, page *repository.Pagination) (repository.SessionPage, error) {
	filter := bson.M{"ownerId": ownerID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return repository.SessionPage{}, err
	}

	// createdAt breaks ties between same-date sessions so pages are stable.
	findOptions := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	if page != nil {
		findOptions = findOptions.
			SetSkip(int64(page.Offset())).
			SetLimit(int64(page.PageSize))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return repository.SessionPage{}, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.WorkoutSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return repository.SessionPage{}, err
	}
	if err = cursor.Err(); err != nil {
		return repository.SessionPage{}, err
	}

	return repository.SessionPage{Items: sessions, TotalCount: int(total)}, nil
}

// Delete removes the session only if it belongs to ownerID.
func (r *mongoSessionRepository) Delete(ctx context.Context, sessionID, ownerID string) (bool, error) {
	if sessionID == "" || ownerID == "" {
		return false, errors.New("session ID and owner ID are required for deletion")
	}

	// Filter ensures the session exists AND belongs to the owner.
	filter := bson.M{
		"_id":     sessionID,
		"ownerId": ownerID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// CountFor returns the owner's total session count.
func (r *mongoSessionRepository) CountFor(ctx context.Context, ownerID string) (int, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Covers the owner-scoped, date-descending history listing.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
