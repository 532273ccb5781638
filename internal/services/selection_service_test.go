package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prizeday/contest-backend/internal/config"
	"github.com/prizeday/contest-backend/internal/contest"
	"github.com/prizeday/contest-backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
		Contest: config.ContestConfig{
			Tiers:              contest.DefaultTiers,
			SecondSessionHour:  14,
			ThirdSessionHour:   20,
			EntryFee:           10,
			MaxParticipants:    100000,
			MinParticipants:    100,
			SelectionBatchSize: 10,
		},
		UPI:  config.UPIConfig{MerchantVPA: "test@upi", MerchantName: "Test", MockVerify: true},
		Mail: config.MailConfig{MockMail: true, QueueSize: 16},
	}
}

type selectionFixture struct {
	participants *fakeParticipantRepo
	contests     *fakeContestRepo
	winners      *fakeWinnerRepo
	users        *fakeUserRepo
	svc          *SelectionServiceImpl
}

func newSelectionFixture(cfg *config.Config) *selectionFixture {
	f := &selectionFixture{
		participants: newFakeParticipantRepo(),
		contests:     newFakeContestRepo(),
		winners:      newFakeWinnerRepo(),
		users:        newFakeUserRepo(),
	}
	f.svc = NewSelectionService(f.participants, f.contests, f.winners, f.users, nil, cfg)
	return f
}

func TestSelectWinnersDrawsUniqueWinnersWithDensePositions(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 10, Prizes: 5}}
	cfg.Contest.MinParticipants = 10
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 1, 40)

	result, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false)
	if err != nil {
		t.Fatalf("SelectWinners failed: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.TotalParticipants != 40 || result.PrizesAvailable != 5 {
		t.Fatalf("unexpected pool/prizes: %d/%d", result.TotalParticipants, result.PrizesAvailable)
	}
	if result.IntendedWinners != 5 || result.ProcessedCount != 5 || result.Shortfall != 0 {
		t.Fatalf("unexpected counts: intended=%d processed=%d shortfall=%d",
			result.IntendedWinners, result.ProcessedCount, result.Shortfall)
	}

	seenParticipant := make(map[string]bool)
	seenPosition := make(map[int]bool)
	for _, w := range f.winners.winners {
		if seenParticipant[w.ParticipantID.Hex()] {
			t.Fatalf("participant %s won twice", w.ParticipantID.Hex())
		}
		seenParticipant[w.ParticipantID.Hex()] = true
		if w.PrizePosition < 1 || w.PrizePosition > 5 {
			t.Fatalf("position %d out of range", w.PrizePosition)
		}
		if seenPosition[w.PrizePosition] {
			t.Fatalf("position %d assigned twice", w.PrizePosition)
		}
		seenPosition[w.PrizePosition] = true
	}
	for pos := 1; pos <= 5; pos++ {
		if !seenPosition[pos] {
			t.Fatalf("position %d never assigned", pos)
		}
	}

	completed, _ := f.contests.IsCompleted(context.Background(), "2026-08-28", 1)
	if !completed {
		t.Fatal("session not marked completed")
	}
}

func TestSelectWinnersSecondRunRejectedWithoutMutation(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 5, Prizes: 3}}
	cfg.Contest.MinParticipants = 5
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 2, 20)

	if _, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 2, false); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	before := len(f.winners.winners)

	_, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 2, false)
	if !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("expected ErrAlreadySelected, got %v", err)
	}
	if len(f.winners.winners) != before {
		t.Fatalf("second run mutated winners: %d -> %d", before, len(f.winners.winners))
	}
}

func TestSelectWinnersSmallPoolEveryoneWinsOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 1, Prizes: 10}}
	cfg.Contest.MinParticipants = 1
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 3, 4)

	result, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 3, false)
	if err != nil {
		t.Fatalf("SelectWinners failed: %v", err)
	}
	if result.PrizesAvailable != 10 {
		t.Fatalf("prizes = %d, want 10", result.PrizesAvailable)
	}
	if result.IntendedWinners != 4 || result.ProcessedCount != 4 {
		t.Fatalf("intended=%d processed=%d, want 4/4", result.IntendedWinners, result.ProcessedCount)
	}
	for _, p := range f.participants.participants {
		if !p.IsWinner || p.PrizePosition == nil {
			t.Fatalf("participant %s not marked winner", p.Email)
		}
	}
}

func TestSelectWinnersUnitFailureLeavesGap(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 5, Prizes: 5}}
	cfg.Contest.MinParticipants = 5
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 1, 20)
	f.winners.failPosition[2] = true

	result, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false)
	if err != nil {
		t.Fatalf("SelectWinners failed: %v", err)
	}
	if result.IntendedWinners != 5 || result.ProcessedCount != 4 || result.Shortfall != 1 {
		t.Fatalf("intended=%d processed=%d shortfall=%d, want 5/4/1",
			result.IntendedWinners, result.ProcessedCount, result.Shortfall)
	}

	positions := make(map[int]bool)
	for _, w := range f.winners.winners {
		positions[w.PrizePosition] = true
	}
	if positions[2] {
		t.Fatal("failed position 2 should be a gap")
	}
	for _, pos := range []int{1, 3, 4, 5} {
		if !positions[pos] {
			t.Fatalf("position %d missing", pos)
		}
	}

	// A failed unit must not block session completion.
	completed, _ := f.contests.IsCompleted(context.Background(), "2026-08-28", 1)
	if !completed {
		t.Fatal("session not marked completed after unit failure")
	}
}

func TestSelectWinnersBelowMinimumNeedsForce(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 1, Prizes: 3}}
	cfg.Contest.MinParticipants = 100
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 1, 8)

	_, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false)
	if !errors.Is(err, ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}

	// The refusal must release the claim so a forced retry can still run.
	result, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, true)
	if err != nil {
		t.Fatalf("forced run failed: %v", err)
	}
	if result.Warning == "" || !strings.Contains(result.Warning, "below") {
		t.Fatalf("forced run should carry a below-minimum warning, got %q", result.Warning)
	}
	if result.ProcessedCount != 3 {
		t.Fatalf("processed = %d, want 3", result.ProcessedCount)
	}
}

func TestSelectWinnersEmptyPoolReleasesClaim(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 1, Prizes: 1}}
	cfg.Contest.MinParticipants = 1
	f := newSelectionFixture(cfg)

	_, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false)
	if !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}

	// Entries arrive later; the session must still be drawable.
	f.participants.seed("2026-08-28", 1, 3)
	if _, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false); err != nil {
		t.Fatalf("run after late entries failed: %v", err)
	}
}

func TestSelectWinnersZeroPrizesStillCompletes(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.MinParticipants = 100 // default ladder: 500 entries earn no prizes
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 2, 500)

	result, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 2, false)
	if err != nil {
		t.Fatalf("SelectWinners failed: %v", err)
	}
	if result.PrizesAvailable != 0 || result.IntendedWinners != 0 || result.ProcessedCount != 0 {
		t.Fatalf("no-prize session drew winners: %+v", result)
	}
	completed, _ := f.contests.IsCompleted(context.Background(), "2026-08-28", 2)
	if !completed {
		t.Fatal("no-prize session not marked completed")
	}
}

func TestSelectWinnersCompletionFailureReportedAsWarning(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 1, Prizes: 2}}
	cfg.Contest.MinParticipants = 1
	f := newSelectionFixture(cfg)
	f.participants.seed("2026-08-28", 1, 10)
	f.contests.completeErr = errors.New("write concern timeout")

	result, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false)
	if err != nil {
		t.Fatalf("SelectWinners failed: %v", err)
	}
	if !result.Success {
		t.Fatal("selection should still report success")
	}
	if !strings.Contains(result.Warning, "completion") {
		t.Fatalf("warning should mention completion failure, got %q", result.Warning)
	}
	if result.ProcessedCount != 2 {
		t.Fatalf("processed = %d, want 2", result.ProcessedCount)
	}
}

func TestSelectWinnersRejectsInvalidSession(t *testing.T) {
	f := newSelectionFixture(testConfig())
	for _, session := range []int{0, 4, -1} {
		if _, err := f.svc.SelectWinners(context.Background(), "2026-08-28", session, false); err == nil {
			t.Fatalf("session %d accepted", session)
		}
	}
}

func TestSelectCurrentUsesClockSession(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 1, Prizes: 1}}
	cfg.Contest.MinParticipants = 1
	f := newSelectionFixture(cfg)

	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.Local) // afternoon window
	f.participants.seed("2026-08-28", 2, 5)

	result, err := f.svc.SelectCurrent(context.Background(), now, false)
	if err != nil {
		t.Fatalf("SelectCurrent failed: %v", err)
	}
	if result.Session != 2 || result.ContestDate != "2026-08-28" {
		t.Fatalf("resolved to %s session %d, want 2026-08-28 session 2", result.ContestDate, result.Session)
	}
}

func TestSelectWinnersIncrementsAccountWins(t *testing.T) {
	cfg := testConfig()
	cfg.Contest.Tiers = []contest.Tier{{MinParticipants: 1, Prizes: 3}}
	cfg.Contest.MinParticipants = 1
	f := newSelectionFixture(cfg)
	seeded := f.participants.seed("2026-08-28", 1, 3)
	for _, p := range seeded {
		f.users.Create(context.Background(), &models.User{Name: p.Name, Email: p.Email})
	}

	if _, err := f.svc.SelectWinners(context.Background(), "2026-08-28", 1, false); err != nil {
		t.Fatalf("SelectWinners failed: %v", err)
	}
	total := 0
	for _, n := range f.users.wins {
		total += n
	}
	if total != 3 {
		t.Fatalf("win counters incremented %d times, want 3", total)
	}
}
