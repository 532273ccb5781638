package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contest tracks one (contestDate, session) pair. WinnersSelected is
// monotonic: once true it never reverts, and selection for the session can
// never run again. The claim timestamp records when a selection run won the
// atomic guard.
type Contest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ContestDate       string             `bson:"contestDate" json:"contestDate"` // YYYY-MM-DD
	Session           int                `bson:"session" json:"session"`
	TotalParticipants int                `bson:"totalParticipants" json:"totalParticipants"`
	PrizesAvailable   int                `bson:"prizesAvailable" json:"prizesAvailable"`
	WinnersSelected   bool               `bson:"winnersSelected" json:"winnersSelected"`
	SelectionClaimedAt time.Time         `bson:"selectionClaimedAt,omitempty" json:"selectionClaimedAt,omitempty"`
	CompletedAt       time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
