package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/angelmondragon/storefront-cart/internal/cart/storage"
	"github.com/angelmondragon/storefront-cart/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) kinds() []enums.CartEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]enums.CartEventKind, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Kind)
	}
	return out
}

// flakyStorage wraps an in-memory backend and fails on demand.
type flakyStorage struct {
	*storage.Memory
	loadErr error
	saveErr error
	saves   int
}

func (f *flakyStorage) Load(ctx context.Context, key string) (string, bool, error) {
	if f.loadErr != nil {
		return "", false, f.loadErr
	}
	return f.Memory.Load(ctx, key)
}

func (f *flakyStorage) Save(ctx context.Context, key, value string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	return f.Memory.Save(ctx, key, value)
}

func newFlaky() *flakyStorage {
	return &flakyStorage{Memory: storage.NewMemory()}
}

func openStore(t *testing.T, backend Storage, notifier Notifier) *Store {
	t.Helper()
	store, err := Open(context.Background(), StoreParams{
		Storage:  backend,
		Notifier: notifier,
		NewID:    seqIDs("id"),
	})
	require.NoError(t, err)
	return store
}

func TestOpenRequiresStorage(t *testing.T) {
	_, err := Open(context.Background(), StoreParams{})
	assert.Error(t, err)
}

func TestOpenEmptyWhenKeyMissing(t *testing.T) {
	store := openStore(t, newFlaky(), nil)
	assert.Equal(t, DefaultStorageKey, store.Key())
	assert.Equal(t, enums.CartStateEmpty, store.State())
	assert.Empty(t, store.Items())
	assert.True(t, store.TotalAmount().IsZero())
}

func TestStorePersistsBeforeReturning(t *testing.T) {
	ctx := context.Background()
	backend := newFlaky()
	store := openStore(t, backend, nil)

	require.NoError(t, store.AddItem(ctx, designDraft(1, "Poster", "10"), 2))

	payload, found, err := backend.Memory.Load(ctx, DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, found)
	items, err := Decode(payload)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStoreRehydratesPersistedCart(t *testing.T) {
	ctx := context.Background()
	backend := newFlaky()
	first := openStore(t, backend, nil)
	require.NoError(t, first.AddItem(ctx, productDraft(3, "Tee", "20", "M", "black", intPtr(5)), 2))
	require.NoError(t, first.AddItem(ctx, designDraft(1, "Poster", "10"), 1))

	second := openStore(t, backend, nil)
	want, err := Encode(first.Items())
	require.NoError(t, err)
	got, err := Encode(second.Items())
	require.NoError(t, err)
	assert.JSONEq(t, want, got)
	assert.Equal(t, 3, second.TotalItemCount())
	assert.True(t, second.TotalAmount().Equal(decimal.NewFromInt(50)))
}

func TestStoreStartsEmptyOnCorruptPayload(t *testing.T) {
	ctx := context.Background()
	backend := newFlaky()
	require.NoError(t, backend.Memory.Save(ctx, DefaultStorageKey, `[{"id":"a","kind":"design","quantity":0}]`))

	store := openStore(t, backend, nil)
	assert.Equal(t, enums.CartStateEmpty, store.State())

	require.NoError(t, store.AddItem(ctx, designDraft(1, "Poster", "10"), 1))
	assert.Equal(t, 1, store.TotalItemCount())
}

func TestStoreStartsEmptyWhenStorageUnreadable(t *testing.T) {
	backend := newFlaky()
	backend.loadErr = errors.New("connection refused")

	store := openStore(t, backend, nil)
	assert.Equal(t, enums.CartStateEmpty, store.State())
}

func TestStrictOpenFailsWhenStorageUnreadable(t *testing.T) {
	backend := newFlaky()
	require.NoError(t, backend.Memory.Save(context.Background(), DefaultStorageKey, `[{"id":"a","kind":"design","quantity":0}]`))

	store, err := Open(context.Background(), StoreParams{Storage: backend, StrictLoad: true})
	require.NoError(t, err, "undecodable payloads still start empty")
	assert.Equal(t, enums.CartStateEmpty, store.State())

	backend.loadErr = errors.New("connection refused")
	_, err = Open(context.Background(), StoreParams{Storage: backend, StrictLoad: true})
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestStoreRollsBackWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	backend := newFlaky()
	notifier := &recordingNotifier{}
	store := openStore(t, backend, notifier)
	require.NoError(t, store.AddItem(ctx, designDraft(1, "Poster", "10"), 1))

	backend.saveErr = errors.New("disk full")
	err := store.AddItem(ctx, designDraft(2, "Print", "20"), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	assert.Equal(t, 1, store.TotalItemCount())
	assert.Equal(t, []enums.CartEventKind{enums.CartEventAdded}, notifier.kinds())

	err = store.Clear(ctx)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
	assert.Equal(t, enums.CartStateNonEmpty, store.State())
}

func TestStoreSkipsSaveForNoops(t *testing.T) {
	ctx := context.Background()
	backend := newFlaky()
	store := openStore(t, backend, nil)
	require.NoError(t, store.AddItem(ctx, designDraft(1, "Poster", "10"), 1))
	saves := backend.saves

	require.NoError(t, store.RemoveItem(ctx, "missing"))
	require.NoError(t, store.UpdateQuantity(ctx, "missing", 3))
	assert.Equal(t, saves, backend.saves)
}

func TestStoreNotifiesAfterEachMutation(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	store := openStore(t, newFlaky(), notifier)

	require.NoError(t, store.AddItem(ctx, productDraft(3, "Tee", "20", "M", "black", intPtr(3)), 1))
	require.NoError(t, store.AddItem(ctx, productDraft(3, "Tee", "20", "M", "black", intPtr(3)), 1))
	err := store.UpdateQuantity(ctx, "id-1", 5)
	require.ErrorIs(t, err, ErrStockLimitExceeded)
	require.NoError(t, store.RemoveItem(ctx, "id-1"))
	require.NoError(t, store.Clear(ctx))

	assert.Equal(t, []enums.CartEventKind{
		enums.CartEventAdded,
		enums.CartEventUpdated,
		enums.CartEventStockLimit,
		enums.CartEventRemoved,
		enums.CartEventCleared,
	}, notifier.kinds())
}

func TestStoreClearTwiceStaysEmpty(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, newFlaky(), nil)
	require.NoError(t, store.AddItem(ctx, designDraft(1, "Poster", "10"), 1))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, enums.CartStateEmpty, store.State())

	snapshot := store.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.Equal(t, 0, snapshot.ItemCount)
	assert.True(t, snapshot.Total.IsZero())
}

func TestNotifiersFanOut(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	Notifiers{first, nil, second}.Notify(context.Background(), Event{Kind: enums.CartEventCleared})

	assert.Len(t, first.kinds(), 1)
	assert.Len(t, second.kinds(), 1)
}
