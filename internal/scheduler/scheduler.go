// Package scheduler runs the background sweep that cancels stale pending
// bookings. A booking left pending means a gateway order was created but
// payment was never verified — usually an abandoned checkout. The client
// never cancels those orders itself, so the sweeper is what keeps them from
// accumulating.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/nairp/resort-booking/internal/domain"
)

// bookingCanceller is satisfied by *service.BookingService.
type bookingCanceller interface {
	CancelExpired(ctx context.Context) ([]domain.Booking, error)
}

// Scheduler ticks at a fixed interval and cancels expired pending bookings.
type Scheduler struct {
	bookings bookingCanceller
	interval time.Duration
	logger   *slog.Logger
}

// New constructs a Scheduler. interval is how often the sweep runs.
func New(bookings bookingCanceller, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{bookings: bookings, interval: interval, logger: logger}
}

// Start runs the sweep loop until ctx is cancelled. It blocks; run it in
// its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("booking sweeper started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("booking sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	cancelled, err := s.bookings.CancelExpired(ctx)
	if err != nil {
		s.logger.Error("failed to cancel expired bookings", "error", err)
		return
	}

	for _, b := range cancelled {
		s.logger.Info("pending booking expired",
			"booking_id", b.ID.String(),
			"order_id", b.OrderID,
			"kind", string(b.Kind),
		)
	}
}
