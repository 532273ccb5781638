package services

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/internal/contest"
	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
)

// Compile-time check to ensure WinnersServiceImpl implements WinnersService
var _ WinnersService = (*WinnersServiceImpl)(nil)

// WinnersServiceImpl assembles the public winners listing
type WinnersServiceImpl struct {
	winnerRepo  repositories.WinnerRepository
	contestRepo repositories.ContestRepository
}

// NewWinnersService creates a new WinnersServiceImpl
func NewWinnersService(winnerRepo repositories.WinnerRepository, contestRepo repositories.ContestRepository) *WinnersServiceImpl {
	return &WinnersServiceImpl{
		winnerRepo:  winnerRepo,
		contestRepo: contestRepo,
	}
}

// ListGrouped returns all winners grouped by date and session, newest day
// first. The underlying query already sorts by date desc, session asc,
// position asc, so grouping preserves order without a second sort.
func (s *WinnersServiceImpl) ListGrouped(ctx context.Context) ([]*models.DayWinners, error) {
	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load winners: %w", err)
	}

	days := make([]*models.DayWinners, 0)
	var day *models.DayWinners
	var sess *models.SessionWinners
	for _, w := range winners {
		if day == nil || day.Date != w.ContestDate {
			day = &models.DayWinners{Date: w.ContestDate}
			days = append(days, day)
			sess = nil
		}
		if sess == nil || sess.Session != w.Session {
			sess = s.newSessionGroup(ctx, w.ContestDate, w.Session)
			day.Sessions = append(day.Sessions, sess)
		}
		sess.Winners = append(sess.Winners, w)
	}
	return days, nil
}

func (s *WinnersServiceImpl) newSessionGroup(ctx context.Context, date string, session int) *models.SessionWinners {
	group := &models.SessionWinners{Session: session}
	if session >= 1 && session <= contest.SessionsPerDay {
		info := contest.DefaultSessionTimes[session-1]
		group.Time = info.Time
		group.Label = info.Label
	}
	record, err := s.contestRepo.FindBySession(ctx, date, session)
	if err != nil {
		slog.Warn("Contest record missing for winners listing", "error", err, "date", date, "session", session)
		return group
	}
	group.TotalPrizes = record.PrizesAvailable
	return group
}
