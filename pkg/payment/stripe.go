package payment

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeGateway is the only code that talks to Stripe. Everything above it
// works against the narrow interface in the service package, so tests swap
// this out for a stub.
type StripeGateway struct {
	secretKey     string
	webhookSecret string
	clientURL     string
}

func NewStripeGateway(secretKey, webhookSecret, clientURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		clientURL:     clientURL,
	}
}

// CreateSubscriptionSession opens a hosted checkout session for a recurring
// price. Stripe substitutes {CHECKOUT_SESSION_ID} into the success URL itself.
// Metadata goes on both the session and the subscription so webhook events of
// either kind can recover userId/plan without a lookup.
func (g *StripeGateway) CreateSubscriptionSession(customerEmail string, priceID string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		CustomerEmail: stripe.String(customerEmail),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:               stripe.String(g.clientURL + "/dashboard?success=true&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:                stripe.String(g.clientURL + "/dashboard?canceled=true"),
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		SubscriptionData:         &stripe.CheckoutSessionSubscriptionDataParams{},
	}

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.SubscriptionData.Metadata = metadata

	return session.New(params)
}

// VerifyEvent checks the Stripe signature over the raw body. It must see the
// exact bytes from the wire; a parsed-and-reserialized body would never
// verify.
func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
}
