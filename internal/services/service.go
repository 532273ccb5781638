package services

import (
	"context"
	"time"

	"github.com/prizeday/contest-backend/internal/models"
)

// SelectionService defines the interface for winner-selection operations
type SelectionService interface {
	// SelectWinners runs the guarded selection for a (date, session) pair.
	// With force set, a pool below the configured minimum is still drawn.
	SelectWinners(ctx context.Context, date string, session int, force bool) (*models.SelectionResult, error)

	// SelectCurrent resolves "now" to today's current session and runs it.
	SelectCurrent(ctx context.Context, now time.Time, force bool) (*models.SelectionResult, error)
}

// EntryService defines the interface for paid contest entries
type EntryService interface {
	Enter(ctx context.Context, req *models.EntryRequest, now time.Time) (*models.EntryResult, error)
}

// AuthService defines the interface for account operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, name, phone string) (*models.User, error)
}

// PaymentService defines the interface for the mocked UPI flow
type PaymentService interface {
	CreateOrder(ctx context.Context, amount float64, name, email, phone string) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, paymentID, orderID, transactionID string) (*models.PaymentOrder, error)
	OrderStatus(ctx context.Context, orderID string) (*models.PaymentOrder, error)
}

// StatsService defines the interface for live contest statistics
type StatsService interface {
	ContestStats(ctx context.Context, now time.Time) (*models.ContestStats, error)
	UserStats(ctx context.Context, email string) (*models.UserStats, error)
	UserContests(ctx context.Context, email string) ([]*models.Participant, error)
}

// WinnersService defines the interface for the public winners listing
type WinnersService interface {
	ListGrouped(ctx context.Context) ([]*models.DayWinners, error)
}

// ExportService defines the interface for admin CSV exports
type ExportService interface {
	ExportCSV(ctx context.Context, exportType, date string) (filename string, csv []byte, err error)
}
