package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/internal/config"
	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
)

// ErrOrderNotFound is returned when an order id has no record
var ErrOrderNotFound = errors.New("payment order not found")

// Compile-time check to ensure UPIPaymentService implements PaymentService
var _ PaymentService = (*UPIPaymentService)(nil)

// UPIPaymentService implements the mocked UPI payment flow: it builds real
// upi:// deep links and tracks orders, but verification is simulated — there
// is no gateway callback to confirm against.
type UPIPaymentService struct {
	orderRepo    repositories.PaymentOrderRepository
	merchantVPA  string
	merchantName string
	entryFee     float64
	mockVerify   bool
}

// NewUPIPaymentService creates a new UPIPaymentService
func NewUPIPaymentService(orderRepo repositories.PaymentOrderRepository, cfg *config.Config) *UPIPaymentService {
	return &UPIPaymentService{
		orderRepo:    orderRepo,
		merchantVPA:  cfg.UPI.MerchantVPA,
		merchantName: cfg.UPI.MerchantName,
		entryFee:     cfg.Contest.EntryFee,
		mockVerify:   cfg.UPI.MockVerify,
	}
}

// CreateOrder builds a UPI deep link for the entry fee and records the order
func (s *UPIPaymentService) CreateOrder(ctx context.Context, amount float64, name, email, phone string) (*models.PaymentOrder, error) {
	if amount != s.entryFee {
		return nil, fmt.Errorf("invalid amount: entry fee is ₹%.0f", s.entryFee)
	}

	orderID := "ORD_" + uuid.NewString()
	paymentID := fmt.Sprintf("UPI_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	note := fmt.Sprintf("Contest Entry - %s - %s", name, orderID)

	params := url.Values{}
	params.Set("pa", s.merchantVPA)
	params.Set("pn", s.merchantName)
	params.Set("am", fmt.Sprintf("%.0f", amount))
	params.Set("cu", "INR")
	params.Set("tn", note)
	params.Set("tr", orderID)

	order := &models.PaymentOrder{
		OrderID:       orderID,
		PaymentID:     paymentID,
		Amount:        amount,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		UPIURL:        "upi://pay?" + params.Encode(),
		Status:        models.OrderStatusCreated,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		slog.Error("Payment order insert failed", "error", err, "orderId", orderID)
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}
	return order, nil
}

// VerifyPayment confirms a payment against its order. With MockVerify set
// the confirmation is assumed valid; a real gateway integration would check
// the bank-side transaction here.
func (s *UPIPaymentService) VerifyPayment(ctx context.Context, paymentID, orderID, transactionID string) (*models.PaymentOrder, error) {
	if paymentID == "" || orderID == "" {
		return nil, errors.New("missing payment details")
	}

	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load payment order: %w", err)
	}

	if !s.mockVerify {
		return nil, errors.New("real UPI verification not implemented")
	}

	if transactionID == "" {
		transactionID = fmt.Sprintf("TXN_%d", time.Now().UnixMilli())
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.OrderStatusVerified, transactionID); err != nil {
		slog.Error("Payment order status update failed", "error", err, "orderId", orderID)
		return nil, fmt.Errorf("failed to update payment order: %w", err)
	}
	order.Status = models.OrderStatusVerified
	order.TransactionID = transactionID
	return order, nil
}

// OrderStatus returns the tracked state of an order
func (s *UPIPaymentService) OrderStatus(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	return order, err
}
