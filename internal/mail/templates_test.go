package mail

import (
	"strings"
	"testing"
	"time"
)

func TestRenderInvoice(t *testing.T) {
	body, err := RenderInvoice(InvoiceData{
		AgentName:   "Ada Lovelace",
		CarrierName: "Acme Freight",
		Amount:      200,
		Percentage:  20,
		LoadAmount:  1000,
		PaymentLink: "https://pay.example.com/cs_123",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"Ada Lovelace", "Acme Freight", "$200.00", "20.00%", "$1000.00", "https://pay.example.com/cs_123"} {
		if !strings.Contains(body, want) {
			t.Errorf("invoice body missing %q", want)
		}
	}
}

func TestRenderReminder(t *testing.T) {
	at := time.Date(2025, time.March, 14, 15, 30, 0, 0, time.UTC)
	body, err := RenderReminder(ReminderData{
		Title:       "Onboarding call",
		With:        "Grace Hopper",
		ScheduledAt: at,
		Notes:       "Bring the rate sheet",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Onboarding call", "Grace Hopper", "Fri, 14 Mar 2025 15:30 UTC", "Bring the rate sheet"} {
		if !strings.Contains(body, want) {
			t.Errorf("reminder body missing %q", want)
		}
	}
}

func TestRenderReminderOmitsEmptyNotes(t *testing.T) {
	body, err := RenderReminder(ReminderData{Title: "Sync", With: "Ops", ScheduledAt: time.Now()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(body, "<p>") != 2 {
		t.Errorf("expected notes paragraph omitted, got: %s", body)
	}
}
