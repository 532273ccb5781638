package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner links a participant to the (contestDate, session) they won, with
// the prize position assigned in draw order (1 = first drawn). Name and
// email are denormalized for the public winners listing.
type Winner struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ParticipantID primitive.ObjectID `bson:"participantId" json:"participantId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"-"`
	ContestDate   string             `bson:"contestDate" json:"contestDate"`
	Session       int                `bson:"session" json:"session"`
	PrizePosition int                `bson:"prizePosition" json:"prizePosition"`
	Notified      bool               `bson:"notified" json:"notified"`
	NotifiedAt    time.Time          `bson:"notifiedAt,omitempty" json:"notifiedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
