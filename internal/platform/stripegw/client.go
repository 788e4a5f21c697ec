package stripegw

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/fx"

	"github.com/homedeco/marketplace/internal/app/service/payment"
	cfgpkg "github.com/homedeco/marketplace/pkg/config"
)

// Client implements payment.Gateway on top of Stripe hosted Checkout
// Sessions.
type Client struct {
	sc         *stripe.Client
	successURL string
	cancelURL  string
}

func New(cfg *cfgpkg.Config) *Client {
	return &Client{
		sc:         stripe.NewClient(cfg.Stripe.SecretKey),
		successURL: cfg.Stripe.SuccessURL,
		cancelURL:  cfg.Stripe.CancelURL,
	}
}

func (c *Client) CreateSession(ctx context.Context, req *payment.CreateSessionRequest) (*payment.Session, error) {
	piParams := &stripe.CheckoutSessionCreatePaymentIntentDataParams{}
	for k, v := range req.Metadata {
		piParams.AddMetadata(k, v)
	}
	params := &stripe.CheckoutSessionCreateParams{
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		UIMode:            stripe.String("hosted"),
		Mode:              stripe.String("payment"),
		CustomerEmail:     stripe.String(req.CustomerEmail),
		PaymentIntentData: piParams,
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: req.Metadata,
	}
	cs, err := c.sc.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout create: %w", err)
	}
	return toSession(cs), nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*payment.Session, error) {
	params := &stripe.CheckoutSessionRetrieveParams{}
	params.AddExpand("payment_intent")
	cs, err := c.sc.V1CheckoutSessions.Retrieve(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout retrieve: %w", err)
	}
	return toSession(cs), nil
}

func toSession(cs *stripe.CheckoutSession) *payment.Session {
	s := &payment.Session{
		ID:          cs.ID,
		Status:      string(cs.PaymentStatus),
		AmountMinor: cs.AmountTotal,
		Currency:    string(cs.Currency),
		RedirectURL: cs.URL,
		Metadata:    cs.Metadata,
	}
	if cs.PaymentIntent != nil {
		s.TransactionID = cs.PaymentIntent.ID
	}
	if cs.CustomerDetails != nil && cs.CustomerDetails.Email != "" {
		s.Email = cs.CustomerDetails.Email
	} else {
		s.Email = cs.CustomerEmail
	}
	return s
}

// Module binds the Stripe client as the payment.Gateway implementation.
var Module = fx.Options(
	fx.Provide(func(cfg *cfgpkg.Config) payment.Gateway { return New(cfg) }),
)
