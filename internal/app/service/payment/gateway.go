package payment

import "context"

const SessionStatusPaid = "paid"

// CreateSessionRequest is the bundle sent to the payment gateway when
// opening a hosted checkout flow. AmountMinor is in minor currency units.
type CreateSessionRequest struct {
	AmountMinor   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	Metadata      map[string]string
}

// Session is the gateway's view of a checkout flow. TransactionID is the
// gateway's identifier for the completed charge and is empty until the
// session has one.
type Session struct {
	ID            string
	Status        string
	TransactionID string
	Email         string
	AmountMinor   int64
	Currency      string
	RedirectURL   string
	Metadata      map[string]string
}

// Gateway abstracts the hosted-payment provider. The Stripe implementation
// lives in internal/platform/stripegw.
type Gateway interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}
