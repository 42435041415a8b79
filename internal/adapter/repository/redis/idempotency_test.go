package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/custodyledger/internal/usecase"
)

func TestIdempotencyStore_CheckAndSetExisting(t *testing.T) {
	client, _ := newTestRedisClient(t)

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := client.Set(ctx, store.prefix+"key", "cached", time.Minute).Err(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, "key", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	if !exists || string(resp) != "cached" {
		t.Fatalf("expected existing cached response, got exists=%v resp=%s", exists, resp)
	}
}

func TestIdempotencyStore_CheckAndSetLocksNewKey(t *testing.T) {
	client, _ := newTestRedisClient(t)

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, resp, err := store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || exists || resp != nil {
		t.Fatalf("unexpected result: exists=%v resp=%v err=%v", exists, resp, err)
	}

	val, err := client.Get(ctx, store.prefix+"pending").Result()
	if err != nil || val != "processing" {
		t.Fatalf("expected placeholder lock, got val=%s err=%v", val, err)
	}
}

func TestIdempotencyStore_Update(t *testing.T) {
	client, _ := newTestRedisClient(t)

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := store.Update(ctx, "complete", []byte("done"), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	val, err := client.Get(ctx, store.prefix+"complete").Result()
	if err != nil || val != "done" {
		t.Fatalf("expected stored response, got val=%s err=%v", val, err)
	}
}

func TestIdempotencyStore_SecondClaimSeesPending(t *testing.T) {
	client, _ := newTestRedisClient(t)

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if exists, _, err := store.CheckAndSet(ctx, "k", nil, time.Minute); err != nil || exists {
		t.Fatalf("first claim should succeed: exists=%v err=%v", exists, err)
	}

	exists, val, err := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err != nil || !exists {
		t.Fatalf("second claim should see existing key: exists=%v err=%v", exists, err)
	}
	if string(val) != usecase.IdempotencyPending {
		t.Fatalf("expected pending marker, got %s", val)
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	client, _ := newTestRedisClient(t)

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	_, _, _ = store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err := store.Release(ctx, "k"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	exists, _, err := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected key to be claimable again: exists=%v err=%v", exists, err)
	}
}

// expiringGetClient drops the key right before the first GET, as if its TTL
// ran out between SETNX and GET.
type expiringGetClient struct {
	redislib.Cmdable
	expired bool
}

func (c *expiringGetClient) Get(ctx context.Context, key string) *redislib.StringCmd {
	if !c.expired {
		c.expired = true
		c.Cmdable.Del(ctx, key)
	}
	return c.Cmdable.Get(ctx, key)
}

func TestIdempotencyStore_ReclaimsKeyThatExpiredDuringRead(t *testing.T) {
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "custodyledger:idempotency:key", "stale", time.Minute).Err(); err != nil {
		t.Fatalf("seed key: %v", err)
	}

	store := NewIdempotencyStore(&expiringGetClient{Cmdable: client})
	exists, existing, err := store.CheckAndSet(ctx, "key", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists || existing != nil {
		t.Fatalf("expected the key to be claimed again, got exists=%v value=%q", exists, existing)
	}

	val, err := client.Get(ctx, "custodyledger:idempotency:key").Result()
	if err != nil {
		t.Fatalf("get claimed key: %v", err)
	}
	if val != usecase.IdempotencyPending {
		t.Fatalf("expected pending marker, got %q", val)
	}
}
