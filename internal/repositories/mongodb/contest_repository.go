package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
)

// ContestRepository implements the repositories.ContestRepository interface
type ContestRepository struct {
	collection *mongo.Collection
}

// NewContestRepository creates a new ContestRepository
func NewContestRepository(db *mongo.Database) repositories.ContestRepository {
	return &ContestRepository{
		collection: db.Collection("contests"),
	}
}

// FindBySession finds the contest record for a (date, session) pair
func (r *ContestRepository) FindBySession(ctx context.Context, date string, session int) (*models.Contest, error) {
	var c models.Contest
	err := r.collection.FindOne(ctx, bson.M{"contestDate": date, "session": session}).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClaimSelection atomically claims the right to run winner selection for a
// session. The filter only matches a document whose winnersSelected flag and
// claim timestamp are both unset; combined with the unique
// (contestDate, session) index an upsert then has three outcomes:
//   - matched: an open contest record existed and we claimed it
//   - upserted: no record existed, the insert is the claim
//   - duplicate key error: a completed or concurrently claimed record holds
//     the slot, so the guard rejects us
// This replaces a read-then-write on the boolean, which would let two
// concurrent triggers both pass the check.
func (r *ContestRepository) ClaimSelection(ctx context.Context, date string, session int) error {
	now := time.Now()
	filter := bson.M{
		"contestDate":     date,
		"session":         session,
		"winnersSelected": false,
		"selectionClaimedAt": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"selectionClaimedAt": now,
			"updatedAt":          now,
		},
		"$setOnInsert": bson.M{
			"contestDate":     date,
			"session":         session,
			"winnersSelected": false,
			"createdAt":       now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrAlreadySelected
	}
	return err
}

// ReleaseClaim clears the claim timestamp of a run that aborted before
// selecting anything, reopening the session for a later trigger.
func (r *ContestRepository) ReleaseClaim(ctx context.Context, date string, session int) error {
	filter := bson.M{"contestDate": date, "session": session, "winnersSelected": false}
	update := bson.M{
		"$unset": bson.M{"selectionClaimedAt": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// CompleteSelection marks the session completed with its final totals. The
// upsert is idempotent so a retried completion write converges on the same
// terminal state.
func (r *ContestRepository) CompleteSelection(ctx context.Context, date string, session, totalParticipants, prizesAvailable int) error {
	now := time.Now()
	filter := bson.M{"contestDate": date, "session": session}
	update := bson.M{
		"$set": bson.M{
			"winnersSelected":   true,
			"totalParticipants": totalParticipants,
			"prizesAvailable":   prizesAvailable,
			"completedAt":       now,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{
			"contestDate": date,
			"session":     session,
			"createdAt":   now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// IsCompleted reports whether winner selection has concluded for a session
func (r *ContestRepository) IsCompleted(ctx context.Context, date string, session int) (bool, error) {
	c, err := r.FindBySession(ctx, date, session)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.WinnersSelected, nil
}
