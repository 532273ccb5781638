package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the ledger invariants depend on:
//   - contests: unique (contestDate, session) — backs the atomic selection
//     claim; without it two concurrent claims could both upsert.
//   - participants: unique (email, entryDate, session) — one paid entry per
//     person per session day.
//   - winners: (contestDate, session) for per-session lookups.
//   - payment_orders: unique orderId.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	contests := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "contestDate", Value: 1}, {Key: "session", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("contests").Indexes().CreateMany(ctx, contests); err != nil {
		return err
	}

	participants := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "entryDate", Value: 1}, {Key: "session", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "entryDate", Value: 1}, {Key: "session", Value: 1}, {Key: "isWinner", Value: 1}},
		},
	}
	if _, err := db.Collection("participants").Indexes().CreateMany(ctx, participants); err != nil {
		return err
	}

	winners := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "contestDate", Value: 1}, {Key: "session", Value: 1}},
		},
	}
	if _, err := db.Collection("winners").Indexes().CreateMany(ctx, winners); err != nil {
		return err
	}

	orders := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("payment_orders").Indexes().CreateMany(ctx, orders); err != nil {
		return err
	}

	return nil
}
