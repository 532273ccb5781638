package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentOrder status values
const (
	OrderStatusCreated  = "CREATED"
	OrderStatusVerified = "VERIFIED"
	OrderStatusFailed   = "FAILED"
)

// PaymentOrder tracks one UPI payment attempt for a contest entry. The
// gateway itself is mocked; the order records what the UI needs to drive the
// payment flow (deep link, merchant details) and the verification outcome.
type PaymentOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	PaymentID     string             `bson:"paymentId" json:"paymentId"`
	Amount        float64            `bson:"amount" json:"amount"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone string             `bson:"customerPhone" json:"customerPhone"`
	UPIURL        string             `bson:"upiUrl" json:"upiUrl"`
	Status        string             `bson:"status" json:"status"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
