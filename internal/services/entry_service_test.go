package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/pkg/mailer"
)

type entryFixture struct {
	participants *fakeParticipantRepo
	users        *fakeUserRepo
	orders       *fakeOrderRepo
	payments     *UPIPaymentService
	svc          *EntryServiceImpl
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()
	cfg := testConfig()
	f := &entryFixture{
		participants: newFakeParticipantRepo(),
		users:        newFakeUserRepo(),
		orders:       newFakeOrderRepo(),
	}
	f.payments = NewUPIPaymentService(f.orders, cfg)
	f.svc = NewEntryService(f.participants, f.users, f.payments, mailer.NewMockGateway(), cfg)
	return f
}

func (f *entryFixture) paidRequest(t *testing.T, email string) *models.EntryRequest {
	t.Helper()
	order, err := f.payments.CreateOrder(context.Background(), 10, "Asha", email, "9876543210")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return &models.EntryRequest{
		Name:          "Asha",
		Email:         email,
		Phone:         "9876543210",
		PaymentMethod: "upi",
		PaymentID:     order.PaymentID,
		OrderID:       order.OrderID,
		EntryFee:      10,
	}
}

func TestEnterRegistersPaidEntry(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	result, err := f.svc.Enter(context.Background(), f.paidRequest(t, "asha@example.com"), now)
	if err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	if !result.Success || result.EntryID == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.ContestSession != 1 {
		t.Fatalf("09:00 entry landed in session %d, want 1", result.ContestSession)
	}
	if result.ParticipantCount != 1 {
		t.Fatalf("participant count = %d, want 1", result.ParticipantCount)
	}

	stored, err := f.participants.FindByEmailAndSession(context.Background(), "asha@example.com", "2026-08-28", 1)
	if err != nil {
		t.Fatalf("stored participant not found: %v", err)
	}
	if stored.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("payment status = %s", stored.PaymentStatus)
	}
}

func TestEnterNormalizesEmail(t *testing.T) {
	f := newEntryFixture(t)
	req := f.paidRequest(t, "  Asha@Example.COM ")
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	if _, err := f.svc.Enter(context.Background(), req, now); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	if _, err := f.participants.FindByEmailAndSession(context.Background(), "asha@example.com", "2026-08-28", 1); err != nil {
		t.Fatalf("lowercased entry not found: %v", err)
	}
}

func TestEnterRejectsDuplicateSameSession(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	if _, err := f.svc.Enter(context.Background(), f.paidRequest(t, "asha@example.com"), now); err != nil {
		t.Fatalf("first entry failed: %v", err)
	}
	_, err := f.svc.Enter(context.Background(), f.paidRequest(t, "ASHA@example.com"), now)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}

	// Same email in a different session is a fresh entry.
	later := time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)
	if _, err := f.svc.Enter(context.Background(), f.paidRequest(t, "asha@example.com"), later); err != nil {
		t.Fatalf("different-session entry failed: %v", err)
	}
}

func TestEnterValidation(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		mutate  func(*models.EntryRequest)
		wantErr error
	}{
		{"wrong fee", func(r *models.EntryRequest) { r.EntryFee = 5 }, ErrInvalidEntryFee},
		{"non-upi method", func(r *models.EntryRequest) { r.PaymentMethod = "card" }, ErrUPIOnly},
		{"bad email", func(r *models.EntryRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"bad phone", func(r *models.EntryRequest) { r.Phone = "0-12" }, ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.paidRequest(t, "check@example.com")
			tt.mutate(req)
			if _, err := f.svc.Enter(context.Background(), req, now); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnterRejectsUnverifiablePayment(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	req := f.paidRequest(t, "asha@example.com")
	req.OrderID = "ORD_missing"
	_, err := f.svc.Enter(context.Background(), req, now)
	if !errors.Is(err, ErrPaymentRequired) {
		t.Fatalf("expected ErrPaymentRequired, got %v", err)
	}
}

func TestEnterRejectsFullSession(t *testing.T) {
	f := newEntryFixture(t)
	f.svc.maxParticipants = 2
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := f.svc.Enter(context.Background(), f.paidRequest(t, email), now); err != nil {
			t.Fatalf("entry for %s failed: %v", email, err)
		}
	}
	_, err := f.svc.Enter(context.Background(), f.paidRequest(t, "c@example.com"), now)
	if !errors.Is(err, ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}
}

func TestEnterHonorsRequestedSession(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	req := f.paidRequest(t, "asha@example.com")
	req.Session = 3
	result, err := f.svc.Enter(context.Background(), req, now)
	if err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	if result.ContestSession != 3 {
		t.Fatalf("session = %d, want 3", result.ContestSession)
	}
}
