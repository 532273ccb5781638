package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
)

// ParticipantRepository implements the repositories.ParticipantRepository interface
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// Create creates a new participant entry
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	participant.CreatedAt = time.Now()
	participant.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, participant)
	if err != nil {
		return err
	}
	participant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a participant by ID
func (r *ParticipantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByEmailAndSession finds a participant's entry for a specific session day
func (r *ParticipantRepository) FindByEmailAndSession(ctx context.Context, email, date string, session int) (*models.Participant, error) {
	filter := bson.M{"email": email, "entryDate": date, "session": session}
	var participant models.Participant
	err := r.collection.FindOne(ctx, filter).Decode(&participant)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments when absent
	}
	return &participant, nil
}

// CountBySession counts entries for a (date, session) pair
func (r *ParticipantRepository) CountBySession(ctx context.Context, date string, session int) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"entryDate": date, "session": session})
	return int(count), err
}

// CountByDate counts entries across all sessions of a day
func (r *ParticipantRepository) CountByDate(ctx context.Context, date string) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"entryDate": date})
	return int(count), err
}

// Count counts all participants ever entered
func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// FindEligibleBySession returns the selection pool for a session: every
// participant of the (date, session) pair that has not already won.
func (r *ParticipantRepository) FindEligibleBySession(ctx context.Context, date string, session int) ([]*models.Participant, error) {
	filter := bson.M{"entryDate": date, "session": session, "isWinner": false}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// FindBySession returns every entry of a (date, session) pair in entry order
func (r *ParticipantRepository) FindBySession(ctx context.Context, date string, session int) ([]*models.Participant, error) {
	return r.findSorted(ctx, bson.M{"entryDate": date, "session": session})
}

// FindByDate returns every entry of a day in entry order
func (r *ParticipantRepository) FindByDate(ctx context.Context, date string) ([]*models.Participant, error) {
	return r.findSorted(ctx, bson.M{"entryDate": date})
}

// FindByEmail returns a user's entry history, newest first
func (r *ParticipantRepository) FindByEmail(ctx context.Context, email string) ([]*models.Participant, error) {
	opts := optionsFindSort(bson.M{"entryTime": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []*models.Participant{}
	}
	return participants, nil
}

// MarkWinner flips the winner flag and sets the prize position. The filter
// requires isWinner to still be false, so the position can only be set once.
func (r *ParticipantRepository) MarkWinner(ctx context.Context, id primitive.ObjectID, position int) error {
	filter := bson.M{"_id": id, "isWinner": false}
	update := bson.M{"$set": bson.M{
		"isWinner":      true,
		"prizePosition": position,
		"updatedAt":     time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ParticipantRepository) findSorted(ctx context.Context, filter bson.M) ([]*models.Participant, error) {
	opts := optionsFindSort(bson.M{"entryTime": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []*models.Participant{}
	}
	return participants, nil
}
