package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// StripeClient wraps checkout-session creation and webhook
// verification for the Stripe provider.
type StripeClient struct {
	webhookSecret string
	clientOrigin  string
	log           *zap.Logger
}

func NewStripeClient(secretKey, webhookSecret, clientOrigin string, log *zap.Logger) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{
		webhookSecret: webhookSecret,
		clientOrigin:  clientOrigin,
		log:           log,
	}
}

// CheckoutInput carries everything a hosted payment session needs.
// Item prices are pre-discount; the discounted cent amount is computed
// here so the line items and the metadata snapshot stay consistent.
type CheckoutInput struct {
	OrderID string
	UserID  string
	Items   []Item
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.Items))
	for _, it := range in.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyEUR)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Title),
				},
				UnitAmount: stripe.Int64(discountedCents(it.Price, it.Discount)),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	snapshot, err := json.Marshal(in.Items)
	if err != nil {
		return "", fmt.Errorf("marshal cart snapshot: %w", err)
	}
	metadata := map[string]string{
		"orderId": in.OrderID,
		"userId":  in.UserID,
		"games":   string(snapshot),
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerCreation:   stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(fmt.Sprintf("%s/success?orderId=%s", c.clientOrigin, in.OrderID)),
		CancelURL:          stripe.String(fmt.Sprintf("%s/cancel?orderId=%s", c.clientOrigin, in.OrderID)),
		// Fail deliveries carry payment_intent objects, so the snapshot
		// has to ride on the intent as well as the session.
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: metadata,
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

// VerifyEvent checks the provider signature over the raw payload and
// returns the decoded event. The caller must pass the body untouched.
func (c *StripeClient) VerifyEvent(payload []byte, sigHeader string) (Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		return Event{}, err
	}
	return ParseEvent(ev), nil
}

func discountedCents(price decimal.Decimal, discount float64) int64 {
	if discount > 0 {
		factor := decimal.NewFromFloat(1 - discount/100)
		price = price.Mul(factor)
	}
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
