package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prizeday/contest-backend/internal/models"
)

// ErrAlreadySelected is returned by ClaimSelection when winner selection has
// already been claimed or completed for the (date, session) pair. The claim
// is an atomic compare-and-set at the store level, so two concurrent
// selection triggers can never both pass the guard.
var ErrAlreadySelected = errors.New("winners already selected for this session")

// ParticipantRepository defines the interface for participant data operations
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	FindByEmailAndSession(ctx context.Context, email, date string, session int) (*models.Participant, error)
	CountBySession(ctx context.Context, date string, session int) (int, error)
	CountByDate(ctx context.Context, date string) (int, error)
	Count(ctx context.Context) (int64, error)
	// FindEligibleBySession returns the selection pool: participants of the
	// session that have not already won. Pools can reach the session cap, so
	// implementations must stream rather than assume small result sets.
	FindEligibleBySession(ctx context.Context, date string, session int) ([]*models.Participant, error)
	FindBySession(ctx context.Context, date string, session int) ([]*models.Participant, error)
	FindByDate(ctx context.Context, date string) ([]*models.Participant, error)
	FindByEmail(ctx context.Context, email string) ([]*models.Participant, error)
	// MarkWinner flips isWinner and sets prizePosition exactly once.
	MarkWinner(ctx context.Context, id primitive.ObjectID, position int) error
}

// ContestRepository defines the interface for contest session records
type ContestRepository interface {
	FindBySession(ctx context.Context, date string, session int) (*models.Contest, error)
	// ClaimSelection atomically claims the selection run for a session.
	// Returns ErrAlreadySelected if a previous run completed or a concurrent
	// run holds the claim.
	ClaimSelection(ctx context.Context, date string, session int) error
	// ReleaseClaim undoes a claim that never selected anything (empty pool),
	// so the session is not burned by an aborted run.
	ReleaseClaim(ctx context.Context, date string, session int) error
	// CompleteSelection marks the session completed. Idempotent upsert.
	CompleteSelection(ctx context.Context, date string, session, totalParticipants, prizesAvailable int) error
	IsCompleted(ctx context.Context, date string, session int) (bool, error)
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindBySession(ctx context.Context, date string, session int) ([]*models.Winner, error)
	FindAll(ctx context.Context) ([]*models.Winner, error)
	CountBySession(ctx context.Context, date string, session int) (int, error)
	MarkNotified(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines the interface for account data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	IncrementEntries(ctx context.Context, email string) error
	IncrementWins(ctx context.Context, email string) error
}

// PaymentOrderRepository defines the interface for UPI order tracking
type PaymentOrderRepository interface {
	Create(ctx context.Context, order *models.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error)
	UpdateStatus(ctx context.Context, orderID, status, transactionID string) error
}
