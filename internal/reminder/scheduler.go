package reminder

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/mail"
)

// Scheduler scans for meetings starting within the horizon and sends each
// one reminder email. Idempotency comes from the store's check-and-set on
// the reminder flag, which is enough while the service runs as a single
// instance.
type Scheduler struct {
	Store    *db.Store
	Mailer   mail.Mailer
	Interval time.Duration
	Horizon  time.Duration
	Logger   zerolog.Logger
}

// Run blocks until ctx is cancelled. Each tick is best-effort: per-item
// failures are logged and the batch continues.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Logger.Info().Dur("interval", interval).Dur("horizon", s.Horizon).Msg("reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.Logger.Info().Msg("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	horizon := s.Horizon
	if horizon <= 0 {
		horizon = 30 * time.Minute
	}
	meetings, err := s.Store.ListDueReminders(ctx, horizon)
	if err != nil {
		s.Logger.Error().Err(err).Msg("reminder scan failed")
		return
	}

	for _, m := range meetings {
		won, err := s.Store.MarkReminderSent(ctx, m.ID)
		if err != nil {
			s.Logger.Error().Err(err).Str("meeting_id", m.ID).Msg("reminder flag update failed")
			continue
		}
		if !won {
			continue
		}

		body, err := mail.RenderReminder(mail.ReminderData{
			Title:       m.Title,
			With:        m.With,
			ScheduledAt: m.ScheduledAt,
			Notes:       m.Notes,
		})
		if err != nil {
			s.Logger.Error().Err(err).Str("meeting_id", m.ID).Msg("reminder render failed")
			continue
		}

		op := func() error {
			return s.Mailer.Send(m.Email, "Upcoming meeting: "+m.Title, body)
		}
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 20 * time.Second
		if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
			s.Logger.Error().Err(err).
				Str("meeting_id", m.ID).
				Str("recipient", m.Email).
				Msg("reminder email failed")
		}
	}
}
