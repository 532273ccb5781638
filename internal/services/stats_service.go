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
)

// Compile-time check to ensure StatsServiceImpl implements StatsService
var _ StatsService = (*StatsServiceImpl)(nil)

// StatsServiceImpl produces the live dashboard and per-user statistics
type StatsServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	contestRepo     repositories.ContestRepository
	winnerRepo      repositories.WinnerRepository
	userRepo        repositories.UserRepository
	tiers           []contest.Tier
	clock           contest.Clock
	sessionTimes    []contest.SessionInfo
	maxParticipants int
}

// NewStatsService creates a new StatsServiceImpl
func NewStatsService(
	participantRepo repositories.ParticipantRepository,
	contestRepo repositories.ContestRepository,
	winnerRepo repositories.WinnerRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		participantRepo: participantRepo,
		contestRepo:     contestRepo,
		winnerRepo:      winnerRepo,
		userRepo:        userRepo,
		tiers:           cfg.Contest.Tiers,
		clock:           cfg.Clock(),
		sessionTimes:    contest.DefaultSessionTimes,
		maxParticipants: cfg.Contest.MaxParticipants,
	}
}

// ContestStats returns the snapshot the landing page polls
func (s *StatsServiceImpl) ContestStats(ctx context.Context, now time.Time) (*models.ContestStats, error) {
	date := contest.DateKey(now)
	session := s.clock.SessionAt(now)

	sessionCount, err := s.participantRepo.CountBySession(ctx, date, session)
	if err != nil {
		return nil, fmt.Errorf("failed to count session participants: %w", err)
	}
	todayCount, err := s.participantRepo.CountByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's participants: %w", err)
	}
	totalCount, err := s.participantRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	winnersCount, err := s.winnerRepo.CountBySession(ctx, date, session)
	if err != nil {
		return nil, fmt.Errorf("failed to count winners: %w", err)
	}
	completed, err := s.contestRepo.IsCompleted(ctx, date, session)
	if err != nil {
		slog.Warn("Completion lookup failed", "error", err, "date", date, "session", session)
	}

	remaining := s.maxParticipants - sessionCount
	if remaining < 0 {
		remaining = 0
	}

	next := s.clock.NextSession(now)
	return &models.ContestStats{
		CurrentSession:             session,
		CurrentSessionParticipants: sessionCount,
		TodayTotalParticipants:     todayCount,
		TotalParticipants:          totalCount,
		CurrentSessionWinners:      winnersCount,
		AvailablePrizes:            contest.PrizesFor(s.tiers, sessionCount),
		RemainingSlots:             remaining,
		WinnersSelected:            completed,
		NextSession:                s.sessionTimes[next-1],
	}, nil
}

// UserStats summarizes an account's history for the profile page
func (s *StatsServiceImpl) UserStats(ctx context.Context, email string) (*models.UserStats, error) {
	email = utils.NormalizeEmail(email)
	entries, err := s.participantRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	stats := &models.UserStats{TotalEntries: len(entries)}
	for _, entry := range entries {
		if !entry.IsWinner || entry.PrizePosition == nil {
			continue
		}
		stats.TotalWins++
		if stats.BestPosition == 0 || *entry.PrizePosition < stats.BestPosition {
			stats.BestPosition = *entry.PrizePosition
		}
	}

	// Prefer the account counters when they exist; entry history is the
	// fallback for emails that never registered.
	if user, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		if user.TotalEntries > stats.TotalEntries {
			stats.TotalEntries = user.TotalEntries
		}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Warn("Account lookup failed for stats", "error", err, "email", utils.MaskEmail(email))
	}

	return stats, nil
}

// UserContests returns an account's entry history, newest first
func (s *StatsServiceImpl) UserContests(ctx context.Context, email string) ([]*models.Participant, error) {
	return s.participantRepo.FindByEmail(ctx, utils.NormalizeEmail(email))
}
