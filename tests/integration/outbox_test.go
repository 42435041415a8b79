package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/infrastructure/eventpublisher"
	"github.com/iho/custodyledger/internal/usecase"
	"github.com/iho/custodyledger/tests/testutil"
)

func TestOutboxEventCreation(t *testing.T) {
	db := testutil.NewTestDB(t)
	ledger := testutil.NewLedger(db, 2*time.Second)
	ctx := context.Background()

	holder := ledger.OpenHolder(t, 0, "100")
	merchant := ledger.OpenMerchant(t, 0, "0", "0.01")

	tx, err := ledger.Transactions.ProcessTransfer(ctx, usecase.ProcessTransferInput{
		HolderID: holder.ID, MerchantID: merchant.ID, Amount: dec("10"), Kind: "D",
	})
	require.NoError(t, err)

	events, err := ledger.OutboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)

	var txEvent *domain.OutboxEvent
	types := map[string]int{}
	for _, event := range events {
		types[event.EventType]++
		if event.EventType == domain.EventTypeTransactionProcessed && event.AggregateID == tx.ID {
			txEvent = event
		}
	}

	assert.Equal(t, 1, types[domain.EventTypeHolderOpened])
	assert.Equal(t, 1, types[domain.EventTypeMerchantOpened])
	require.NotNil(t, txEvent, "transaction event not found in outbox")

	assert.Equal(t, domain.AggregateTypeTransaction, txEvent.AggregateType)
	assert.False(t, txEvent.Published)
	assert.Equal(t, holder.ID, txEvent.Payload["holder_id"])
	assert.Equal(t, merchant.ID, txEvent.Payload["merchant_id"])
	assert.Equal(t, "89.9", txEvent.Payload["holder_balance"])
}

func TestEventPublisher(t *testing.T) {
	db := testutil.NewTestDB(t)
	ledger := testutil.NewLedger(db, 2*time.Second)
	ctx := context.Background()

	ledger.OpenHolder(t, 0, "0")
	ledger.OpenMerchant(t, 0, "0", "0.01")

	pub := &recordingPublisher{}
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: ledger.OutboxRepo,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		BatchSize:  10,
		Interval:   20 * time.Millisecond,
	})

	publisherCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	go func() { _ = publisher.Start(publisherCtx) }()

	require.Eventually(t, func() bool { return len(pub.Published()) >= 2 }, time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		unpublished, err := ledger.OutboxRepo.GetUnpublished(ctx, 10)
		return err == nil && len(unpublished) == 0
	}, time.Second, 20*time.Millisecond)
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*domain.OutboxEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) Published() []*domain.OutboxEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.OutboxEvent(nil), p.published...)
}
