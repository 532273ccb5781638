package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/repositories"
	"github.com/prizeday/contest-backend/internal/utils"
	"github.com/prizeday/contest-backend/pkg/mailer"
)

// NotificationDispatcher delivers winner emails off the selection path. The
// engine enqueues and moves on: delivery failures are logged, never surfaced
// to the selection caller, and a full queue drops the message rather than
// blocking a selection run.
type NotificationDispatcher struct {
	gateway    mailer.Gateway
	winnerRepo repositories.WinnerRepository
	queue      chan *models.Winner
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewNotificationDispatcher creates a dispatcher and starts its worker
func NewNotificationDispatcher(gateway mailer.Gateway, winnerRepo repositories.WinnerRepository, queueSize int) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &NotificationDispatcher{
		gateway:    gateway,
		winnerRepo: winnerRepo,
		queue:      make(chan *models.Winner, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Notify enqueues a winner announcement. Never blocks.
func (d *NotificationDispatcher) Notify(winner *models.Winner) {
	select {
	case d.queue <- winner:
	default:
		slog.Warn("Notification queue full, dropping winner email",
			"email", utils.MaskEmail(winner.Email), "position", winner.PrizePosition)
	}
}

// Close stops accepting work and drains the queue.
func (d *NotificationDispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *NotificationDispatcher) run() {
	defer d.wg.Done()
	for winner := range d.queue {
		d.deliver(winner)
	}
}

func (d *NotificationDispatcher) deliver(winner *models.Winner) {
	subject := mailer.WinnerSubject(winner.PrizePosition)
	body := mailer.WinnerBody(winner.Name, winner.PrizePosition, winner.ContestDate)

	if _, err := d.gateway.SendEmail(winner.Email, subject, body); err != nil {
		slog.Error("Winner email failed", "error", err,
			"email", utils.MaskEmail(winner.Email), "position", winner.PrizePosition)
	}

	// The notified flag records that an attempt was made, not that delivery
	// succeeded; the winner row is the audit trail either way.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.winnerRepo.MarkNotified(ctx, winner.ID); err != nil {
		slog.Error("Failed to mark winner notified", "error", err, "winnerId", winner.ID)
	}
}
