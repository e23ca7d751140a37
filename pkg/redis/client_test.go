package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-cart/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestLookupFoldsMissingKeys(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if _, found, err := client.Lookup(ctx, "sf:cart:cart_v1:user-1"); err != nil || found {
		t.Fatalf("expected missing key to be found=false without error, got found=%v err=%v", found, err)
	}

	if err := client.Set(ctx, "sf:cart:cart_v1:user-1", `[]`, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, found, err := client.Lookup(ctx, "sf:cart:cart_v1:user-1")
	if err != nil || !found {
		t.Fatalf("expected stored key, got found=%v err=%v", found, err)
	}
	if value != `[]` {
		t.Fatalf("unexpected value %q", value)
	}
	if got := mock.ttls["sf:cart:cart_v1:user-1"]; got != time.Hour {
		t.Fatalf("expected ttl to be forwarded, got %v", got)
	}

	if _, err := client.Get(ctx, "sf:cart:cart_v1:user-2"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil for another owner, got %v", err)
	}
}

func TestLookupPropagatesTransportErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.getErr = errors.New("connection reset")
	client := &Client{store: mock}

	if _, found, err := client.Lookup(context.Background(), "k"); err == nil || found {
		t.Fatalf("expected transport error, got found=%v err=%v", found, err)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping on empty client to fail")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on empty client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.CartKey("cart_v1:user-1"); got != "sf:cart:cart_v1:user-1" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := client.CartKey(" "); got != "sf:cart" {
		t.Fatalf("blank parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://localhost:6379/3",
		PoolSize:    7,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 3 || opts.PoolSize != 7 || opts.DialTimeout != 2*time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

type mockCmdable struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}
