package domain

import "time"

// Event types
const (
	EventTypeTransactionProcessed = "transaction.processed"
	EventTypeHolderOpened         = "holder.opened"
	EventTypeHolderClosed         = "holder.closed"
	EventTypeMerchantOpened       = "merchant.opened"
	EventTypeMerchantClosed       = "merchant.closed"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeHolder      = "holder"
	AggregateTypeMerchant    = "merchant"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewTransactionProcessedEvent builds the outbox event for a settled transaction.
func NewTransactionProcessedEvent(id string, tx *Transaction, s Settlement) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   tx.ID,
		AggregateType: AggregateTypeTransaction,
		EventType:     EventTypeTransactionProcessed,
		Payload: map[string]any{
			"transaction_id":   tx.ID,
			"holder_id":        tx.HolderID,
			"merchant_id":      tx.MerchantID,
			"kind":             string(tx.Kind),
			"amount":           tx.Amount.String(),
			"fee":              tx.Fee.String(),
			"holder_balance":   s.HolderBalance.String(),
			"merchant_balance": s.MerchantBalance.String(),
			"processed_at":     tx.CreatedAt.Format(time.RFC3339Nano),
		},
		CreatedAt: tx.CreatedAt,
	}
}

// NewAccountEvent builds an outbox event for an account lifecycle change.
func NewAccountEvent(id, eventType string, kind AccountKind, accountID, name string, at time.Time) *OutboxEvent {
	aggregate := AggregateTypeHolder
	if kind == KindMerchant {
		aggregate = AggregateTypeMerchant
	}

	return &OutboxEvent{
		ID:            id,
		AggregateID:   accountID,
		AggregateType: aggregate,
		EventType:     eventType,
		Payload: map[string]any{
			"account_id": accountID,
			"kind":       kind.String(),
			"name":       name,
			"at":         at.Format(time.RFC3339Nano),
		},
		CreatedAt: at,
	}
}
