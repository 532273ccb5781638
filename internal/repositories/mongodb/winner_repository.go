package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// Create creates a new winner record
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, winner)
	if err != nil {
		return err
	}
	winner.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindBySession finds the winners of a (date, session) pair ordered by position
func (r *WinnerRepository) FindBySession(ctx context.Context, date string, session int) ([]*models.Winner, error) {
	opts := optionsFindSort(bson.M{"prizePosition": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"contestDate": date, "session": session}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// FindAll returns every winner ordered for the public listing: newest contest
// day first, then session and position ascending.
func (r *WinnerRepository) FindAll(ctx context.Context) ([]*models.Winner, error) {
	sort := bson.D{
		{Key: "contestDate", Value: -1},
		{Key: "session", Value: 1},
		{Key: "prizePosition", Value: 1},
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// CountBySession counts winners of a (date, session) pair
func (r *WinnerRepository) CountBySession(ctx context.Context, date string, session int) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"contestDate": date, "session": session})
	return int(count), err
}

// MarkNotified records that a notification attempt was made for a winner
func (r *WinnerRepository) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"notified":   true,
		"notifiedAt": time.Now(),
		"updatedAt":  time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
