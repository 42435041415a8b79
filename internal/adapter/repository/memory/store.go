// Package memory is a single-process account store. Every account has an
// exclusive lock that a unit of work holds from GetByIDForUpdate until it
// commits or rolls back; staged writes become visible atomically on commit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

// DefaultLockTimeout bounds the wait for an account lock.
const DefaultLockTimeout = 2 * time.Second

// Store holds all committed state.
type Store struct {
	mu           sync.RWMutex
	holders      map[string]domain.AccountHolder
	merchants    map[string]domain.Merchant
	transactions []domain.Transaction
	outbox       []*domain.OutboxEvent

	locksMu     sync.Mutex
	locks       map[string]*accountLock
	lockTimeout time.Duration
}

// accountLock is dropped from Store.locks once no unit of work holds or
// waits on it.
type accountLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewStore creates an empty store. A non-positive lockTimeout selects
// DefaultLockTimeout.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Store{
		holders:     make(map[string]domain.AccountHolder),
		merchants:   make(map[string]domain.Merchant),
		locks:       make(map[string]*accountLock),
		lockTimeout: lockTimeout,
	}
}

func (s *Store) lockFor(key string) *accountLock {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &accountLock{sem: semaphore.NewWeighted(1)}
		s.locks[key] = l
	}
	l.refs++
	return l
}

func (s *Store) unref(key string, l *accountLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new unit of work.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{
		store:     m.store,
		held:      make(map[string]*accountLock),
		holders:   make(map[string]domain.AccountHolder),
		merchants: make(map[string]domain.Merchant),
	}, nil
}

// Tx stages writes and owns the account locks it acquired.
// A Tx must not be shared between goroutines.
type Tx struct {
	store        *Store
	held         map[string]*accountLock
	holders      map[string]domain.AccountHolder
	merchants    map[string]domain.Merchant
	transactions []domain.Transaction
	events       []*domain.OutboxEvent
	done         bool
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, fmt.Errorf("memory: unexpected transaction type %T", tx)
	}
	if t.done {
		return nil, fmt.Errorf("memory: transaction already closed")
	}
	return t, nil
}

// lock acquires the account lock for key, waiting at most the store's lock
// timeout. Locks already held by t are not acquired again.
func (t *Tx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}

	l := t.store.lockFor(key)

	lockCtx, cancel := context.WithTimeout(ctx, t.store.lockTimeout)
	defer cancel()

	if err := l.sem.Acquire(lockCtx, 1); err != nil {
		t.store.unref(key, l)
		return fmt.Errorf("%w: waiting for %s: %w", domain.ErrBusy, key, err)
	}
	t.held[key] = l
	return nil
}

func (t *Tx) release() {
	for key, l := range t.held {
		l.sem.Release(1)
		t.store.unref(key, l)
		delete(t.held, key)
	}
	t.done = true
}

// Commit validates uniqueness of staged accounts and applies every staged
// write at once.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("memory: transaction already closed")
	}
	defer t.release()

	if err := ctx.Err(); err != nil {
		return err
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.checkUnique(); err != nil {
		return err
	}

	for id, h := range t.holders {
		s.holders[id] = h
	}
	for id, m := range t.merchants {
		s.merchants[id] = m
	}
	s.transactions = append(s.transactions, t.transactions...)
	s.outbox = append(s.outbox, t.events...)

	return nil
}

// Rollback discards staged writes. Calling it after Commit is a no-op.
func (t *Tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.release()
	return nil
}

// checkUnique runs with s.mu held.
func (t *Tx) checkUnique() error {
	s := t.store

	for id, h := range t.holders {
		for otherID, other := range s.holders {
			if otherID == id {
				continue
			}
			if other.PersonalID == h.PersonalID {
				return domain.ErrPersonalIDTaken
			}
			if other.Email == h.Email {
				return domain.ErrEmailTaken
			}
		}
	}

	for id, m := range t.merchants {
		for otherID, other := range s.merchants {
			if otherID == id {
				continue
			}
			if other.MerchantID == m.MerchantID {
				return domain.ErrMerchantIDTaken
			}
			if other.Email == m.Email {
				return domain.ErrEmailTaken
			}
		}
	}

	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortByCreated[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		a, b := createdAt(items[i]), createdAt(items[j])
		if a.Equal(b) {
			return id(items[i]) < id(items[j])
		}
		return a.Before(b)
	})
}
