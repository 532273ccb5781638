package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus values for a participant entry
const (
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusPending   = "PENDING"
	PaymentStatusFailed    = "FAILED"
)

// Participant represents one paid entry into a (date, session) contest.
// A participant belongs to exactly one entry date and session; email is
// stored lowercased and is unique per (entryDate, session).
type Participant struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	EntryDate     string             `bson:"entryDate" json:"entryDate"` // YYYY-MM-DD
	EntryTime     time.Time          `bson:"entryTime" json:"entryTime"`
	Session       int                `bson:"session" json:"session"`
	IsWinner      bool               `bson:"isWinner" json:"isWinner"`
	PrizePosition *int               `bson:"prizePosition,omitempty" json:"prizePosition,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentID     string             `bson:"paymentId" json:"paymentId"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderID       string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	EntryFee      float64            `bson:"entryFee" json:"entryFee"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
