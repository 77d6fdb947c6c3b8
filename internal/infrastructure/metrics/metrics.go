package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered on the default registry, which the /metrics handler serves next to
// the echoprometheus request metrics.
var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders created by checkout.",
	})

	IdempotentReplays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_idempotent_replays_total",
		Help: "Checkouts answered with an order created by an earlier request with the same key.",
	})

	CartWriteConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_write_conflicts_total",
		Help: "Cart writes rejected because the cart changed after it was read.",
	}, []string{"operation"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_events_published_total",
		Help: "Domain events handed to the broker, by event type and result.",
	}, []string{"event_type", "result"})

	ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_chat_replies_total",
		Help: "Chat replies by intent.",
	}, []string{"intent"})

	ChatFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_chat_llm_fallbacks_total",
		Help: "Chat replies that used the fallback text because the text generation API failed.",
	})
)
