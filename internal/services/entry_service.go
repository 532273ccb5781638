package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/internal/config"
	"github.com/prizeday/contest-backend/internal/contest"
	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
	"github.com/prizeday/contest-backend/internal/utils"
	"github.com/prizeday/contest-backend/pkg/mailer"
)

// Entry validation errors
var (
	ErrInvalidEntryFee  = errors.New("invalid entry fee amount")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrInvalidPhone     = errors.New("please enter a valid phone number")
	ErrDuplicateEntry   = errors.New("you have already entered this contest session today")
	ErrSessionFull      = errors.New("this contest session is full")
	ErrPaymentRequired  = errors.New("payment could not be verified")
	ErrUPIOnly          = errors.New("only UPI payments are accepted")
)

// Compile-time check to ensure EntryServiceImpl implements EntryService
var _ EntryService = (*EntryServiceImpl)(nil)

// EntryServiceImpl handles paid contest entries
type EntryServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	userRepo        repositories.UserRepository
	paymentService  PaymentService
	gateway         mailer.Gateway
	clock           contest.Clock
	entryFee        float64
	maxParticipants int
}

// NewEntryService creates a new EntryServiceImpl
func NewEntryService(
	participantRepo repositories.ParticipantRepository,
	userRepo repositories.UserRepository,
	paymentService PaymentService,
	gateway mailer.Gateway,
	cfg *config.Config,
) *EntryServiceImpl {
	return &EntryServiceImpl{
		participantRepo: participantRepo,
		userRepo:        userRepo,
		paymentService:  paymentService,
		gateway:         gateway,
		clock:           cfg.Clock(),
		entryFee:        cfg.Contest.EntryFee,
		maxParticipants: cfg.Contest.MaxParticipants,
	}
}

// Enter registers a paid entry into the current (or requested) session of
// today's contest.
func (s *EntryServiceImpl) Enter(ctx context.Context, req *models.EntryRequest, now time.Time) (*models.EntryResult, error) {
	if req.EntryFee != s.entryFee {
		return nil, ErrInvalidEntryFee
	}
	if req.PaymentMethod != "upi" {
		return nil, ErrUPIOnly
	}
	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !utils.ValidPhone(req.Phone) {
		return nil, ErrInvalidPhone
	}

	date := contest.DateKey(now)
	session := req.Session
	if session < 1 || session > contest.SessionsPerDay {
		session = s.clock.SessionAt(now)
	}

	// One entry per email per session day.
	if _, err := s.participantRepo.FindByEmailAndSession(ctx, email, date, session); err == nil {
		return nil, ErrDuplicateEntry
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Duplicate entry check failed", "error", err, "email", utils.MaskEmail(email))
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}

	count, err := s.participantRepo.CountBySession(ctx, date, session)
	if err != nil {
		slog.Error("Session count failed", "error", err, "date", date, "session", session)
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	if count >= s.maxParticipants {
		return nil, ErrSessionFull
	}

	// Confirm the payment with the gateway before recording the entry.
	order, err := s.paymentService.VerifyPayment(ctx, req.PaymentID, req.OrderID, "")
	if err != nil || order.Status != models.OrderStatusVerified {
		slog.Warn("Entry payment verification failed", "error", err, "orderId", req.OrderID)
		return nil, ErrPaymentRequired
	}

	participant := &models.Participant{
		Name:          req.Name,
		Email:         email,
		Phone:         req.Phone,
		EntryDate:     date,
		EntryTime:     now,
		Session:       session,
		IsWinner:      false,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
		PaymentStatus: models.PaymentStatusCompleted,
		OrderID:       req.OrderID,
		EntryFee:      req.EntryFee,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Concurrent duplicate submission lost the unique-index race.
			return nil, ErrDuplicateEntry
		}
		slog.Error("Participant insert failed", "error", err, "email", utils.MaskEmail(email))
		return nil, fmt.Errorf("failed to register entry: %w", err)
	}

	if err := s.userRepo.IncrementEntries(ctx, email); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Warn("Entry counter update failed", "error", err, "email", utils.MaskEmail(email))
	}

	// Confirmation email is best-effort and off the critical path.
	go s.sendConfirmation(participant)

	slog.Info("Contest entry registered", "email", utils.MaskEmail(email), "date", date, "session", session)
	return &models.EntryResult{
		Success:          true,
		Message:          "Payment successful! Contest entry confirmed.",
		EntryID:          participant.ID.Hex(),
		PaymentID:        req.PaymentID,
		ContestSession:   session,
		ParticipantCount: count + 1,
	}, nil
}

func (s *EntryServiceImpl) sendConfirmation(p *models.Participant) {
	body := mailer.EntryConfirmationBody(p.Name, p.PaymentID, p.EntryFee)
	if _, err := s.gateway.SendEmail(p.Email, mailer.EntryConfirmationSubject, body); err != nil {
		slog.Error("Entry confirmation email failed", "error", err, "email", utils.MaskEmail(p.Email))
	}
}
