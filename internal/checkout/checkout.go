package checkout

import "context"

type SessionRequest struct {
	Amount      float64
	Currency    string
	Description string
	Email       string
	Reference   string
}

type Session struct {
	ID  string
	URL string
}

// Adapter creates hosted checkout sessions with the payment provider.
type Adapter interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}
