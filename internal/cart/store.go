package cart

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-cart/pkg/enums"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
	"github.com/shopspring/decimal"
)

// StoreParams wires the collaborators of a Store.
type StoreParams struct {
	Key      string
	Storage  Storage
	Notifier Notifier
	Logger   *logger.Logger
	NewID    IDFunc
	// StrictLoad makes Open fail with DEPENDENCY_ERROR when storage cannot be
	// read. Absent keys and undecodable payloads still start empty.
	StrictLoad bool
}

// Store owns the line items of one cart and keeps storage in sync with them.
// A Store is not safe for concurrent use; Service serializes access per owner.
type Store struct {
	key      string
	storage  Storage
	notifier Notifier
	logg     *logger.Logger
	newID    IDFunc
	cart     Cart
}

// Snapshot is a read-only view of the cart and its derived totals.
type Snapshot struct {
	Items     []LineItem
	ItemCount int
	Total     decimal.Decimal
	State     enums.CartState
}

// Open builds a Store and rehydrates it from storage. A missing, unreadable or
// corrupt payload yields an empty cart and the failure is logged, unless
// StrictLoad is set and the read itself failed.
func Open(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if params.Key == "" {
		params.Key = DefaultStorageKey
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.NewID == nil {
		params.NewID = NewLineItemID
	}

	s := &Store{
		key:      params.Key,
		storage:  params.Storage,
		notifier: params.Notifier,
		logg:     params.Logger,
		newID:    params.NewID,
	}
	cart, err := s.rehydrate(ctx, params.StrictLoad)
	if err != nil {
		return nil, err
	}
	s.cart = cart
	return s, nil
}

func (s *Store) rehydrate(ctx context.Context, strict bool) (Cart, error) {
	ctx = s.logg.WithCartKey(ctx, s.key)
	payload, found, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if strict {
			return Cart{}, persistenceError(err, "load cart")
		}
		s.logg.WarnErr(ctx, "cart.load_failed", err)
		return Cart{}, nil
	}
	if !found || payload == "" {
		return Cart{}, nil
	}
	items, err := Decode(payload)
	if err != nil {
		s.logg.WarnErr(ctx, "cart.payload_discarded", err)
		return Cart{}, nil
	}
	return Cart{items: items}, nil
}

// Key returns the storage key backing this cart.
func (s *Store) Key() string {
	return s.key
}

// Items returns a copy of the line items.
func (s *Store) Items() []LineItem {
	return s.cart.Items()
}

func (s *Store) TotalItemCount() int {
	return s.cart.TotalItemCount()
}

func (s *Store) TotalAmount() decimal.Decimal {
	return s.cart.TotalAmount()
}

func (s *Store) State() enums.CartState {
	return s.cart.State()
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:     s.cart.Items(),
		ItemCount: s.cart.TotalItemCount(),
		Total:     s.cart.TotalAmount(),
		State:     s.cart.State(),
	}
}

// AddItem adds quantity units of draft. Stock limit violations leave the cart
// unchanged and return an error matching ErrStockLimitExceeded.
func (s *Store) AddItem(ctx context.Context, draft ItemDraft, quantity int) error {
	next, events, err := s.cart.Add(draft, quantity, s.newID)
	return s.commit(ctx, next, events, err)
}

// RemoveItem drops the line item with id; unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	next, events := s.cart.Remove(id)
	return s.commit(ctx, next, events, nil)
}

// UpdateQuantity sets the quantity of a line item; zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	next, events, err := s.cart.UpdateQuantity(id, quantity)
	return s.commit(ctx, next, events, err)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	next, events := s.cart.Clear()
	return s.commit(ctx, next, events, nil)
}

// commit persists next before adopting it, then dispatches events. A rejected
// transition only dispatches its events.
func (s *Store) commit(ctx context.Context, next Cart, events []Event, transitionErr error) error {
	ctx = s.logg.WithCartKey(ctx, s.key)
	if transitionErr != nil {
		s.dispatch(ctx, events)
		return transitionErr
	}
	if len(events) == 0 {
		return nil
	}

	payload, err := Encode(next.items)
	if err != nil {
		return persistenceError(err, "encode cart")
	}
	if err := s.storage.Save(ctx, s.key, payload); err != nil {
		s.logg.Error(ctx, "cart.save_failed", err)
		return persistenceError(err, "save cart")
	}

	s.cart = next
	s.dispatch(ctx, events)
	return nil
}

func (s *Store) dispatch(ctx context.Context, events []Event) {
	if s.notifier == nil {
		return
	}
	for _, event := range events {
		s.notifier.Notify(ctx, event)
	}
}
