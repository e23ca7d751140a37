package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
)

// Service exposes cart operations for many owners to concurrent callers.
type Service interface {
	Get(ctx context.Context, owner string) (Snapshot, error)
	AddItem(ctx context.Context, owner string, draft ItemDraft, quantity int) (Snapshot, error)
	RemoveItem(ctx context.Context, owner, itemID string) (Snapshot, error)
	UpdateQuantity(ctx context.Context, owner, itemID string, quantity int) (Snapshot, error)
	Clear(ctx context.Context, owner string) (Snapshot, error)
	// ClearIf runs check on the current cart and clears it only when check
	// returns nil, all under the owner's lock. It returns the cart as check saw it.
	ClearIf(ctx context.Context, owner string, check func(Snapshot) error) (Snapshot, error)
}

// ServiceParams wires the collaborators shared by every owner's cart.
type ServiceParams struct {
	Storage  Storage
	BaseKey  string
	Notifier Notifier
	Logger   *logger.Logger
	NewID    IDFunc
}

type service struct {
	storage  Storage
	baseKey  string
	notifier Notifier
	logg     *logger.Logger
	newID    IDFunc
	locks    *ownerLocks
}

// NewService builds a cart service backed by the provided storage.
func NewService(params ServiceParams) (Service, error) {
	if params.Storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &service{
		storage:  params.Storage,
		baseKey:  params.BaseKey,
		notifier: params.Notifier,
		logg:     params.Logger,
		newID:    params.NewID,
		locks:    newOwnerLocks(),
	}, nil
}

func (s *service) Get(ctx context.Context, owner string) (Snapshot, error) {
	return s.withStore(ctx, owner, func(*Store) error { return nil })
}

func (s *service) AddItem(ctx context.Context, owner string, draft ItemDraft, quantity int) (Snapshot, error) {
	return s.withStore(ctx, owner, func(store *Store) error {
		return store.AddItem(ctx, draft, quantity)
	})
}

func (s *service) RemoveItem(ctx context.Context, owner, itemID string) (Snapshot, error) {
	return s.withStore(ctx, owner, func(store *Store) error {
		return store.RemoveItem(ctx, itemID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, owner, itemID string, quantity int) (Snapshot, error) {
	return s.withStore(ctx, owner, func(store *Store) error {
		return store.UpdateQuantity(ctx, itemID, quantity)
	})
}

func (s *service) Clear(ctx context.Context, owner string) (Snapshot, error) {
	return s.withStore(ctx, owner, func(store *Store) error {
		return store.Clear(ctx)
	})
}

func (s *service) ClearIf(ctx context.Context, owner string, check func(Snapshot) error) (Snapshot, error) {
	var checked Snapshot
	_, err := s.withStore(ctx, owner, func(store *Store) error {
		checked = store.Snapshot()
		if check != nil {
			if err := check(checked); err != nil {
				return err
			}
		}
		return store.Clear(ctx)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return checked, nil
}

// withStore rehydrates the owner's cart, runs fn and returns the resulting
// snapshot, holding the owner's lock for the whole sequence. A failed read
// fails the request so a later save cannot overwrite the stored cart.
func (s *service) withStore(ctx context.Context, owner string, fn func(*Store) error) (Snapshot, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart owner is required")
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	unlock := s.locks.lock(owner)
	defer unlock()

	store, err := Open(ctx, StoreParams{
		Key:        OwnerKey(s.baseKey, owner),
		Storage:    s.storage,
		Notifier:   s.notifier,
		Logger:     s.logg,
		NewID:      s.newID,
		StrictLoad: true,
	})
	if err != nil {
		return Snapshot{}, err
	}
	if err := fn(store); err != nil {
		return Snapshot{}, err
	}
	return store.Snapshot(), nil
}

// ownerLocks hands out one mutex per owner and forgets it once no caller holds it.
type ownerLocks struct {
	mu      sync.Mutex
	entries map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{entries: make(map[string]*ownerLock)}
}

func (l *ownerLocks) lock(owner string) func() {
	l.mu.Lock()
	entry, ok := l.entries[owner]
	if !ok {
		entry = &ownerLock{}
		l.entries[owner] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, owner)
		}
		l.mu.Unlock()
	}
}

func (l *ownerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
