package storage

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-cart/pkg/metrics"
)

// Backend is a cart storage that can also report its health.
type Backend interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

// Instrumented times every call against the wrapped backend.
type Instrumented struct {
	next    Backend
	name    string
	metrics *metrics.CartMetrics
	now     func() time.Time
}

func Instrument(next Backend, name string, m *metrics.CartMetrics) *Instrumented {
	return &Instrumented{next: next, name: name, metrics: m, now: time.Now}
}

func (i *Instrumented) Load(ctx context.Context, key string) (string, bool, error) {
	start := i.now()
	value, found, err := i.next.Load(ctx, key)
	i.metrics.ObserveStorage(i.name, "load", i.now().Sub(start), err)
	return value, found, err
}

func (i *Instrumented) Save(ctx context.Context, key, value string) error {
	start := i.now()
	err := i.next.Save(ctx, key, value)
	i.metrics.ObserveStorage(i.name, "save", i.now().Sub(start), err)
	return err
}

func (i *Instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}
