package commission

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/checkout"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/mail"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/models"
)

// PaymentLinkStore persists the single retained payment link per driver.
type PaymentLinkStore interface {
	SetDriverPaymentLink(ctx context.Context, tenantID, driverID, link string) error
}

// Invoicer runs the commission side effects of a driver update: checkout
// session, payment-link persistence, invoice email. Every step is
// best-effort; the triggering field update must never be rolled back by a
// billing failure.
type Invoicer struct {
	Checkout checkout.Adapter
	Mailer   mail.Mailer
	Store    PaymentLinkStore
	Logger   zerolog.Logger
}

// ProcessDriverUpdate compares loader fields before and after a PATCH and,
// when the change warrants it, dispatches a commission invoice. Errors are
// logged, never returned.
func (inv *Invoicer) ProcessDriverUpdate(ctx context.Context, before, after models.Driver) {
	if !ShouldSendInvoice(
		after.Loader.Percentage, after.Load.Amount,
		before.Loader.Percentage, before.Load.Amount,
	) {
		return
	}

	amount := AgentAmount(after.Load.Amount, after.Loader.Percentage)
	recipient := after.Owner.Email
	if recipient == "" {
		recipient = after.Carrier.Email
	}

	log := inv.Logger.With().
		Str("tenant_id", after.TenantID).
		Str("driver_id", after.ID).
		Logger()

	sess, err := inv.Checkout.CreateSession(ctx, checkout.SessionRequest{
		Amount:      amount,
		Currency:    "usd",
		Description: "Loader commission - " + after.Loader.AgentName,
		Email:       recipient,
		Reference:   after.ID,
	})
	if err != nil {
		log.Error().Err(err).Float64("amount", amount).Msg("checkout session failed, invoice skipped")
		return
	}

	if err := inv.Store.SetDriverPaymentLink(ctx, after.TenantID, after.ID, sess.URL); err != nil {
		log.Error().Err(err).Msg("payment link persist failed")
	}

	body, err := mail.RenderInvoice(mail.InvoiceData{
		AgentName:   after.Loader.AgentName,
		CarrierName: after.Carrier.CompanyName,
		Amount:      amount,
		Percentage:  after.Loader.Percentage,
		LoadAmount:  after.Load.Amount,
		PaymentLink: sess.URL,
	})
	if err != nil {
		log.Error().Err(err).Msg("invoice render failed")
		return
	}

	// Detached send: the HTTP response does not wait on SMTP.
	go func() {
		if err := inv.Mailer.Send(recipient, "Commission invoice", body); err != nil {
			log.Error().Err(err).Str("recipient", recipient).Msg("invoice email failed")
		}
	}()
}
