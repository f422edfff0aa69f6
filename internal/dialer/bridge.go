package dialer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/contacts"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/utils"
)

var ErrMissingPhone = errors.New("contact has no phone number")

// MetricsRecorder persists per-staff call counters scoped by tenant.
type MetricsRecorder interface {
	IncrementCallsMade(ctx context.Context, tenantID, staffID string) error
	IncrementCallsReceived(ctx context.Context, tenantID, staffID string) error
}

// Bridge hands a call off to the browser-side agent. It never places calls
// itself: its contract ends at a well-formed handoff URL plus the
// calls-made counter increment.
type Bridge struct {
	ProviderOrigin string
	Metrics        MetricsRecorder
	Logger         zerolog.Logger
}

// HandoffURL builds the URL the browser agent consumes:
// {origin}/messages#autocall={digits}&token={credential}. All non-digit
// characters are stripped from the phone before embedding.
func (b *Bridge) HandoffURL(c contacts.Contact, bearer string) (string, error) {
	digits := utils.DigitsOnly(c.Phone)
	if digits == "" {
		return "", fmt.Errorf("%w: contact %d", ErrMissingPhone, c.ID)
	}
	return fmt.Sprintf("%s/messages#autocall=%s&token=%s",
		b.ProviderOrigin, digits, url.QueryEscape(bearer)), nil
}

// RecordCallMade increments the caller's calls-made counter in the
// background. It is fire-and-forget: failures are retried briefly, then
// logged, and never reach the call flow.
func (b *Bridge) RecordCallMade(tenantID, staffID string) {
	if b.Metrics == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		op := func() error {
			return b.Metrics.IncrementCallsMade(ctx, tenantID, staffID)
		}
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 15 * time.Second
		if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
			b.Logger.Warn().Err(err).
				Str("tenant_id", tenantID).
				Str("staff_id", staffID).
				Msg("calls-made increment failed")
		}
	}()
}
