package payment

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
)

type EventKind string

const (
	EventCheckoutCompleted EventKind = "checkout_completed"
	EventPaymentFailed     EventKind = "payment_failed"
	EventUnknown           EventKind = "unknown"
)

// Item is the cart snapshot carried through provider metadata and
// returned to the reconciler on delivery.
type Item struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Discount float64         `json:"discount"`
	Quantity int64           `json:"quantity"`
}

// Event is the provider-neutral view of a webhook delivery. Kind
// discriminates the payload; fields not applicable to the kind are
// zero-valued.
type Event struct {
	Kind        EventKind
	OrderID     string
	UserID      string
	AmountCents int64
	Items       []Item
}

// ParseEvent extracts the neutral event from a verified provider event.
// Deliveries of other types map to EventUnknown; a malformed items blob
// degrades to an empty list rather than an error.
func ParseEvent(ev stripe.Event) Event {
	switch ev.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &session); err != nil {
			return Event{Kind: EventUnknown}
		}
		return Event{
			Kind:        EventCheckoutCompleted,
			OrderID:     session.Metadata["orderId"],
			UserID:      session.Metadata["userId"],
			AmountCents: session.AmountTotal,
			Items:       parseItems(session.Metadata["games"]),
		}
	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &intent); err != nil {
			return Event{Kind: EventUnknown}
		}
		return Event{
			Kind:        EventPaymentFailed,
			OrderID:     intent.Metadata["orderId"],
			UserID:      intent.Metadata["userId"],
			AmountCents: intent.Amount,
			Items:       parseItems(intent.Metadata["games"]),
		}
	default:
		return Event{Kind: EventUnknown}
	}
}

func parseItems(raw string) []Item {
	if raw == "" {
		return nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}
