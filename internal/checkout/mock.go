package checkout

import (
	"context"
	"fmt"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/utils"
)

// MockAdapter returns deterministic fake sessions so the commission flow is
// fully exercisable without provider credentials.
type MockAdapter struct {
	BaseURL string
}

func (m MockAdapter) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	base := m.BaseURL
	if base == "" {
		base = "https://checkout.local"
	}
	id := fmt.Sprintf("cs_mock_%x", utils.HashStringToUint64(req.Reference+req.Email))
	return Session{
		ID:  id,
		URL: fmt.Sprintf("%s/pay/%s?amount=%.2f", base, id, req.Amount),
	}, nil
}
