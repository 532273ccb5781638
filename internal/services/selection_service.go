package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/internal/config"
	"github.com/prizeday/contest-backend/internal/contest"
	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
	"github.com/prizeday/contest-backend/internal/rng"
	"github.com/prizeday/contest-backend/internal/utils"
)

// Selection precondition errors. These are rejected before any mutation, so
// receiving one is a logical no-op for the caller.
var (
	ErrAlreadySelected = repositories.ErrAlreadySelected
	ErrNoParticipants  = errors.New("no participants found for this session")
	ErrBelowMinimum    = errors.New("below minimum participants, use force flag")
)

// Compile-time check to ensure SelectionServiceImpl implements SelectionService
var _ SelectionService = (*SelectionServiceImpl)(nil)

// SelectionServiceImpl runs the winner-selection engine for contest sessions
type SelectionServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	contestRepo     repositories.ContestRepository
	winnerRepo      repositories.WinnerRepository
	userRepo        repositories.UserRepository
	dispatcher      *NotificationDispatcher
	tiers           []contest.Tier
	clock           contest.Clock
	minParticipants int
	batchSize       int
}

// NewSelectionService creates a new SelectionServiceImpl
func NewSelectionService(
	participantRepo repositories.ParticipantRepository,
	contestRepo repositories.ContestRepository,
	winnerRepo repositories.WinnerRepository,
	userRepo repositories.UserRepository,
	dispatcher *NotificationDispatcher,
	cfg *config.Config,
) *SelectionServiceImpl {
	batchSize := cfg.Contest.SelectionBatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	return &SelectionServiceImpl{
		participantRepo: participantRepo,
		contestRepo:     contestRepo,
		winnerRepo:      winnerRepo,
		userRepo:        userRepo,
		dispatcher:      dispatcher,
		tiers:           cfg.Contest.Tiers,
		clock:           cfg.Clock(),
		minParticipants: cfg.Contest.MinParticipants,
		batchSize:       batchSize,
	}
}

// SelectCurrent resolves "now" into today's current session and runs the
// selection for it.
func (s *SelectionServiceImpl) SelectCurrent(ctx context.Context, now time.Time, force bool) (*models.SelectionResult, error) {
	return s.SelectWinners(ctx, contest.DateKey(now), s.clock.SessionAt(now), force)
}

// SelectWinners runs the guarded winner selection for one (date, session)
// pair. The session moves Open -> Selecting -> Completed; the Selecting
// transition is won through an atomic claim at the ledger, so concurrent
// triggers for the same session cannot both proceed.
func (s *SelectionServiceImpl) SelectWinners(ctx context.Context, date string, session int, force bool) (*models.SelectionResult, error) {
	if session < 1 || session > contest.SessionsPerDay {
		return nil, fmt.Errorf("invalid session %d", session)
	}

	// 1. Claim the run. A completed session or a concurrent claimant fails
	// here with ErrAlreadySelected and nothing has been mutated.
	if err := s.contestRepo.ClaimSelection(ctx, date, session); err != nil {
		if errors.Is(err, repositories.ErrAlreadySelected) {
			slog.Warn("Selection rejected: session already selected", "date", date, "session", session)
			return nil, ErrAlreadySelected
		}
		slog.Error("Failed to claim selection", "error", err, "date", date, "session", session)
		return nil, fmt.Errorf("failed to claim selection: %w", err)
	}

	// 2. Fetch the eligible pool (paid entries that have not won).
	pool, err := s.participantRepo.FindEligibleBySession(ctx, date, session)
	if err != nil {
		s.releaseClaim(ctx, date, session)
		slog.Error("Failed to fetch participant pool", "error", err, "date", date, "session", session)
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	if len(pool) == 0 {
		// Release so a later trigger (after entries arrive) can still run.
		s.releaseClaim(ctx, date, session)
		return nil, ErrNoParticipants
	}

	// 3. Below-minimum pools need an explicit force, and carry a warning so
	// the caller knows the contest ran short-handed.
	var warning string
	if len(pool) < s.minParticipants {
		if !force {
			s.releaseClaim(ctx, date, session)
			slog.Warn("Selection below minimum refused", "date", date, "session", session, "pool", len(pool), "minimum", s.minParticipants)
			return nil, ErrBelowMinimum
		}
		warning = fmt.Sprintf("only %d participants, below the %d minimum", len(pool), s.minParticipants)
	}

	prizes := contest.PrizesFor(s.tiers, len(pool))
	intended := prizes
	if intended > len(pool) {
		intended = len(pool)
	}

	result := &models.SelectionResult{
		ContestDate:       date,
		Session:           session,
		TotalParticipants: len(pool),
		PrizesAvailable:   prizes,
		IntendedWinners:   intended,
		Warning:           warning,
	}

	if intended > 0 {
		// 4. Uniform permutation of the pool; the first K entries win, with
		// prize positions assigned in draw order.
		if err := rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }); err != nil {
			s.releaseClaim(ctx, date, session)
			slog.Error("Shuffle failed", "error", err, "date", date, "session", session)
			return nil, fmt.Errorf("failed to shuffle pool: %w", err)
		}

		slog.Info("Selecting winners", "date", date, "session", session, "pool", len(pool), "winners", intended)
		result.ProcessedCount = s.persistWinners(ctx, pool[:intended], date, session)
	}
	result.Shortfall = result.IntendedWinners - result.ProcessedCount

	// 5. Close the session regardless of individual unit failures. A failed
	// completion write is logged and reported as a warning; the upsert is
	// idempotent so it can be retried out of band.
	if err := s.contestRepo.CompleteSelection(ctx, date, session, len(pool), prizes); err != nil {
		slog.Error("CRITICAL: failed to mark session completed", "error", err, "date", date, "session", session)
		if result.Warning != "" {
			result.Warning += "; "
		}
		result.Warning += "session completion write failed"
	}

	result.Success = true
	slog.Info("Selection completed", "date", date, "session", session,
		"intended", result.IntendedWinners, "processed", result.ProcessedCount, "shortfall", result.Shortfall)
	return result, nil
}

// persistWinners records winners in batches. Units within a batch run
// concurrently and each unit is independent: a failed insert or participant
// update is logged and skipped without rolling back committed units and
// without retrying. Positions follow draw order, so a failed unit leaves a
// gap rather than shifting later winners.
func (s *SelectionServiceImpl) persistWinners(ctx context.Context, winners []*models.Participant, date string, session int) int {
	var (
		mu        sync.Mutex
		processed int
	)

	for start := 0; start < len(winners); start += s.batchSize {
		end := start + s.batchSize
		if end > len(winners) {
			end = len(winners)
		}

		var wg sync.WaitGroup
		for idx := start; idx < end; idx++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				participant := winners[idx]
				position := idx + 1

				winner := &models.Winner{
					ParticipantID: participant.ID,
					Name:          participant.Name,
					Email:         participant.Email,
					ContestDate:   date,
					Session:       session,
					PrizePosition: position,
					Notified:      false,
				}
				if err := s.winnerRepo.Create(ctx, winner); err != nil {
					slog.Error("Winner insert failed, skipping", "error", err,
						"email", utils.MaskEmail(participant.Email), "position", position)
					return
				}

				if err := s.participantRepo.MarkWinner(ctx, participant.ID, position); err != nil {
					slog.Error("Participant winner update failed", "error", err,
						"email", utils.MaskEmail(participant.Email), "position", position)
					return
				}

				// Win counter and notification are best-effort side effects.
				if s.userRepo != nil {
					if err := s.userRepo.IncrementWins(ctx, participant.Email); err != nil {
						slog.Warn("Win counter update failed", "error", err, "email", utils.MaskEmail(participant.Email))
					}
				}
				if s.dispatcher != nil {
					s.dispatcher.Notify(winner)
				}

				mu.Lock()
				processed++
				mu.Unlock()
			}(idx)
		}
		wg.Wait()
	}

	return processed
}

func (s *SelectionServiceImpl) releaseClaim(ctx context.Context, date string, session int) {
	if err := s.contestRepo.ReleaseClaim(ctx, date, session); err != nil {
		slog.Error("Failed to release selection claim", "error", err, "date", date, "session", session)
	}
}
