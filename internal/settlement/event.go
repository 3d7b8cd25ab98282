package settlement

import (
	"github.com/shopspring/decimal"
)

// Provider event types the reconciler understands. Anything else is
// acknowledged and ignored so new provider event kinds cannot wedge the
// webhook.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
	EventPaymentCancelled = "payment.cancelled"
	EventPayoutSucceeded  = "payout.succeeded"
	EventPayoutFailed     = "payout.failed"
)

// Metadata is the correlation record stamped on checkout/payout
// requests and echoed back by the provider.
type Metadata struct {
	AccountID       int    `json:"accountId"`
	TransactionKind string `json:"transactionKind"`
	RelatedEntityID int    `json:"relatedEntityId"`
}

type EventData struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Metadata Metadata        `json:"metadata"`
}

type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// terminalStatus maps an event type onto the ledger status it drives a
// pending transaction to. Unknown types map to "".
func terminalStatus(eventType string) string {
	switch eventType {
	case EventPaymentSucceeded, EventPayoutSucceeded:
		return "completed"
	case EventPaymentFailed, EventPayoutFailed:
		return "failed"
	case EventPaymentCancelled:
		return "cancelled"
	default:
		return ""
	}
}
