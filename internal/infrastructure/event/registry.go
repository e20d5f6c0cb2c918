package event

import (
	"slices"
	"sync"

	"github.com/shopledger/backend/internal/domain/shared"
)

// route is the subscription state of one channel. Its lock is held for the
// whole delivery of a publish, which keeps deliveries on a channel in order.
type route struct {
	delivery    sync.Mutex
	subscribers []shared.EventHandler
}

// HandlerRegistry routes channels to their subscribers. Handlers registered
// without a channel receive every channel after its dedicated subscribers.
type HandlerRegistry struct {
	mu       sync.RWMutex
	routes   map[string]*route
	catchAll []shared.EventHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{routes: make(map[string]*route)}
}

// Register subscribes handler to channels, or to all channels when none are
// given. Registering the same handler twice on a channel is a no-op.
func (r *HandlerRegistry) Register(handler shared.EventHandler, channels ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(channels) == 0 {
		r.catchAll = appendOnce(r.catchAll, handler)
		return
	}
	for _, channel := range channels {
		rt := r.routeLocked(channel)
		rt.subscribers = appendOnce(rt.subscribers, handler)
	}
}

// Unregister drops handler from every channel. Routes stay in place so a
// delivery in flight keeps its lock.
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catchAll = without(r.catchAll, handler)
	for _, rt := range r.routes {
		rt.subscribers = without(rt.subscribers, handler)
	}
}

// Acquire locks channel for delivery and returns a snapshot of its handlers.
// The caller must call release once delivery is done.
func (r *HandlerRegistry) Acquire(channel string) (handlers []shared.EventHandler, release func()) {
	rt := r.route(channel)
	rt.delivery.Lock()

	r.mu.RLock()
	handlers = make([]shared.EventHandler, 0, len(rt.subscribers)+len(r.catchAll))
	handlers = append(handlers, rt.subscribers...)
	handlers = append(handlers, r.catchAll...)
	r.mu.RUnlock()

	return handlers, rt.delivery.Unlock
}

// Channels lists, sorted, the channels with at least one dedicated subscriber
func (r *HandlerRegistry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var channels []string
	for channel, rt := range r.routes {
		if len(rt.subscribers) > 0 {
			channels = append(channels, channel)
		}
	}
	slices.Sort(channels)
	return channels
}

func (r *HandlerRegistry) route(channel string) *route {
	r.mu.RLock()
	rt, ok := r.routes[channel]
	r.mu.RUnlock()
	if ok {
		return rt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.routeLocked(channel)
}

func (r *HandlerRegistry) routeLocked(channel string) *route {
	rt, ok := r.routes[channel]
	if !ok {
		rt = &route{}
		r.routes[channel] = rt
	}
	return rt
}

func appendOnce(handlers []shared.EventHandler, handler shared.EventHandler) []shared.EventHandler {
	if slices.Contains(handlers, handler) {
		return handlers
	}
	return append(handlers, handler)
}

// without returns a fresh slice so snapshots handed out by Acquire stay intact
func without(handlers []shared.EventHandler, handler shared.EventHandler) []shared.EventHandler {
	return slices.DeleteFunc(slices.Clone(handlers), func(h shared.EventHandler) bool {
		return h == handler
	})
}
