package services

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
)

// In-memory repository fakes. They guard state with a mutex because the
// selection engine persists batch units concurrently.

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants []*models.Participant
	failMark     map[string]bool // participant ID hex -> MarkWinner fails
	findErr      error
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{failMark: make(map[string]bool)}
}

func (r *fakeParticipantRepo) seed(date string, session, n int) []*models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	seeded := make([]*models.Participant, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Participant{
			ID:        primitive.NewObjectID(),
			Name:      fmt.Sprintf("Player %d", i),
			Email:     fmt.Sprintf("player%d@example.com", i),
			Phone:     "9876543210",
			EntryDate: date,
			Session:   session,
		}
		r.participants = append(r.participants, p)
		seeded = append(seeded, p)
	}
	return seeded
}

func (r *fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.participants {
		if existing.Email == p.Email && existing.EntryDate == p.EntryDate && existing.Session == p.Session {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	p.ID = primitive.NewObjectID()
	r.participants = append(r.participants, p)
	return nil
}

func (r *fakeParticipantRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeParticipantRepo) FindByEmailAndSession(ctx context.Context, email, date string, session int) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.Email == email && p.EntryDate == date && p.Session == session {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeParticipantRepo) CountBySession(ctx context.Context, date string, session int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.participants {
		if p.EntryDate == date && p.Session == session {
			count++
		}
	}
	return count, nil
}

func (r *fakeParticipantRepo) CountByDate(ctx context.Context, date string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.participants {
		if p.EntryDate == date {
			count++
		}
	}
	return count, nil
}

func (r *fakeParticipantRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.participants)), nil
}

func (r *fakeParticipantRepo) FindEligibleBySession(ctx context.Context, date string, session int) ([]*models.Participant, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var pool []*models.Participant
	for _, p := range r.participants {
		if p.EntryDate == date && p.Session == session && !p.IsWinner {
			pool = append(pool, p)
		}
	}
	return pool, nil
}

func (r *fakeParticipantRepo) FindBySession(ctx context.Context, date string, session int) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Participant
	for _, p := range r.participants {
		if p.EntryDate == date && p.Session == session {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) FindByDate(ctx context.Context, date string) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Participant
	for _, p := range r.participants {
		if p.EntryDate == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) FindByEmail(ctx context.Context, email string) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Participant
	for _, p := range r.participants {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) MarkWinner(ctx context.Context, id primitive.ObjectID, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMark[id.Hex()] {
		return fmt.Errorf("injected MarkWinner failure")
	}
	for _, p := range r.participants {
		if p.ID == id && !p.IsWinner {
			p.IsWinner = true
			pos := position
			p.PrizePosition = &pos
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type contestState struct {
	claimed   bool
	completed bool
	total     int
	prizes    int
}

type fakeContestRepo struct {
	mu          sync.Mutex
	sessions    map[string]*contestState
	completeErr error
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{sessions: make(map[string]*contestState)}
}

func key(date string, session int) string { return fmt.Sprintf("%s#%d", date, session) }

func (r *fakeContestRepo) state(date string, session int) *contestState {
	k := key(date, session)
	if r.sessions[k] == nil {
		r.sessions[k] = &contestState{}
	}
	return r.sessions[k]
}

func (r *fakeContestRepo) FindBySession(ctx context.Context, date string, session int) (*models.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.sessions[key(date, session)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.Contest{
		ContestDate:       date,
		Session:           session,
		TotalParticipants: st.total,
		PrizesAvailable:   st.prizes,
		WinnersSelected:   st.completed,
	}, nil
}

func (r *fakeContestRepo) ClaimSelection(ctx context.Context, date string, session int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state(date, session)
	if st.claimed || st.completed {
		return repositories.ErrAlreadySelected
	}
	st.claimed = true
	return nil
}

func (r *fakeContestRepo) ReleaseClaim(ctx context.Context, date string, session int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state(date, session)
	if !st.completed {
		st.claimed = false
	}
	return nil
}

func (r *fakeContestRepo) CompleteSelection(ctx context.Context, date string, session, totalParticipants, prizesAvailable int) error {
	if r.completeErr != nil {
		return r.completeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state(date, session)
	st.completed = true
	st.total = totalParticipants
	st.prizes = prizesAvailable
	return nil
}

func (r *fakeContestRepo) IsCompleted(ctx context.Context, date string, session int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.sessions[key(date, session)]
	return ok && st.completed, nil
}

type fakeWinnerRepo struct {
	mu           sync.Mutex
	winners      []*models.Winner
	failPosition map[int]bool // prize position -> Create fails
	notified     []primitive.ObjectID
}

func newFakeWinnerRepo() *fakeWinnerRepo {
	return &fakeWinnerRepo{failPosition: make(map[int]bool)}
}

func (r *fakeWinnerRepo) Create(ctx context.Context, w *models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failPosition[w.PrizePosition] {
		return fmt.Errorf("injected winner insert failure")
	}
	w.ID = primitive.NewObjectID()
	r.winners = append(r.winners, w)
	return nil
}

func (r *fakeWinnerRepo) FindBySession(ctx context.Context, date string, session int) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Winner
	for _, w := range r.winners {
		if w.ContestDate == date && w.Session == session {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWinnerRepo) FindAll(ctx context.Context) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Winner(nil), r.winners...), nil
}

func (r *fakeWinnerRepo) CountBySession(ctx context.Context, date string, session int) (int, error) {
	winners, _ := r.FindBySession(ctx, date, session)
	return len(winners), nil
}

func (r *fakeWinnerRepo) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, id)
	for _, w := range r.winners {
		if w.ID == id {
			w.Notified = true
		}
	}
	return nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	entries map[string]int
	wins    map[string]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*models.User),
		entries: make(map[string]int),
		wins:    make(map[string]int),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = primitive.NewObjectID()
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) IncrementEntries(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return mongo.ErrNoDocuments
	}
	r.entries[email]++
	return nil
}

func (r *fakeUserRepo) IncrementWins(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return mongo.ErrNoDocuments
	}
	r.wins[email]++
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.PaymentOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.PaymentOrder)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = primitive.NewObjectID()
	r.orders[order.OrderID] = order
	return nil
}

func (r *fakeOrderRepo) FindByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order, ok := r.orders[orderID]; ok {
		return order, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID, status, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	order.Status = status
	order.TransactionID = transactionID
	return nil
}

// Interface conformance for the fakes.
var (
	_ repositories.ParticipantRepository  = (*fakeParticipantRepo)(nil)
	_ repositories.ContestRepository      = (*fakeContestRepo)(nil)
	_ repositories.WinnerRepository       = (*fakeWinnerRepo)(nil)
	_ repositories.UserRepository         = (*fakeUserRepo)(nil)
	_ repositories.PaymentOrderRepository = (*fakeOrderRepo)(nil)
)
