package payments

import (
	"context"
	"math"
)

// Payment status values surfaced by the checkout provider.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// CheckoutRequest describes the single-line-item payment page for one
// slot reservation.
type CheckoutRequest struct {
	ProductName string
	AmountCents int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Session is the provider-agnostic view of a checkout session. The
// metadata mapping round-trips every intake field as strings.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// CheckoutClient creates and retrieves hosted checkout sessions.
type CheckoutClient interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}

// AmountCents converts a USD price to the integer cents the provider
// bills in.
func AmountCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
