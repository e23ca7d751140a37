package cart

import (
	"context"

	"github.com/angelmondragon/storefront-cart/pkg/logger"
	"github.com/angelmondragon/storefront-cart/pkg/metrics"
)

// Notifier receives cart events after they have been persisted. Delivery is
// fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event Event)

func (fn NotifierFunc) Notify(ctx context.Context, event Event) {
	fn(ctx, event)
}

// Notifiers fans an event out to every non-nil notifier in order.
type Notifiers []Notifier

func (n Notifiers) Notify(ctx context.Context, event Event) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Notify(ctx, event)
		}
	}
}

// LogNotifier writes one structured entry per event.
func LogNotifier(logg *logger.Logger) Notifier {
	return NotifierFunc(func(ctx context.Context, event Event) {
		if logg == nil {
			return
		}
		fields := map[string]any{"event": event.Kind.String()}
		if event.ItemID != "" {
			fields["item_id"] = event.ItemID
		}
		if event.Title != "" {
			fields["title"] = event.Title
		}
		if event.Quantity > 0 {
			fields["quantity"] = event.Quantity
		}
		if event.Limit > 0 || event.Requested > 0 {
			fields["requested"] = event.Requested
			fields["limit"] = event.Limit
		}
		logg.Info(logg.WithFields(ctx, fields), "cart.event")
	})
}

// MetricsNotifier counts events by kind.
func MetricsNotifier(m *metrics.CartMetrics) Notifier {
	return NotifierFunc(func(_ context.Context, event Event) {
		m.IncEvent(event.Kind.String())
	})
}
