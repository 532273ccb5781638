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

// PaymentOrderRepository implements the repositories.PaymentOrderRepository interface
type PaymentOrderRepository struct {
	collection *mongo.Collection
}

// NewPaymentOrderRepository creates a new PaymentOrderRepository
func NewPaymentOrderRepository(db *mongo.Database) repositories.PaymentOrderRepository {
	return &PaymentOrderRepository{
		collection: db.Collection("payment_orders"),
	}
}

// Create creates a new payment order
func (r *PaymentOrderRepository) Create(ctx context.Context, order *models.PaymentOrder) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByOrderID finds a payment order by its public order id
func (r *PaymentOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus records the verification outcome of an order
func (r *PaymentOrderRepository) UpdateStatus(ctx context.Context, orderID, status, transactionID string) error {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if transactionID != "" {
		set["transactionId"] = transactionID
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"orderId": orderID}, bson.M{"$set": set})
	return err
}
