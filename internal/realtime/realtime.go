// Package realtime distributes table change notifications to cache
// consumers. Delivery is in-process over an event bus and best-effort: a
// missed event only means staleness until the next explicit re-fetch.
package realtime

import (
	"fmt"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/Devstep613/doshihardware/internal/cache"
)

// Change event kinds, mirroring row-level database operations. Subscribers
// treat all kinds identically (invalidate only, no row diffing).
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Event describes a change to a row of the named table.
type Event struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    int64  `json:"id,string"`
}

func topic(table string) string {
	return fmt.Sprintf("%s_changes", table)
}

// Bus carries change events between mutating handlers and subscribers.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// Publish announces a change to table. Slow subscribers do not block the
// publisher.
func (b *Bus) Publish(table, op string, id int64) {
	b.bus.Publish(topic(table), Event{Table: table, Op: op, ID: id})
}

// WaitAsync blocks until in-flight deliveries have completed. Used on
// shutdown and by tests.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}

func (b *Bus) subscribe(table string, fn func(Event)) error {
	return b.bus.SubscribeAsync(topic(table), fn, false)
}

func (b *Bus) unsubscribe(table string, fn func(Event)) error {
	return b.bus.Unsubscribe(topic(table), fn)
}

// binding ties one table subscription to one cache key.
type binding struct {
	table string
	key   string
	fn    func(Event)
}

// Invalidator keeps cached collections fresh by invalidating a cache key
// whenever the bound table reports a change. At most one subscription exists
// per (table, key) pair at a time.
type Invalidator struct {
	bus   *Bus
	store *cache.Store

	mu       sync.Mutex
	bindings map[string]*binding
}

func NewInvalidator(bus *Bus, store *cache.Store) *Invalidator {
	return &Invalidator{
		bus:      bus,
		store:    store,
		bindings: make(map[string]*binding),
	}
}

func bindingKey(table, key string) string {
	return table + "\x00" + key
}

// Bind subscribes the cache key to change events for table. Rebinding an
// existing (table, key) pair is a no-op.
func (iv *Invalidator) Bind(table, key string) error {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	bk := bindingKey(table, key)
	if _, ok := iv.bindings[bk]; ok {
		return nil
	}
	b := &binding{table: table, key: key}
	b.fn = func(evt Event) {
		zap.L().Debug("realtime change notification",
			zap.String("table", evt.Table), zap.String("op", evt.Op))
		iv.store.Invalidate(b.key)
	}
	if err := iv.bus.subscribe(table, b.fn); err != nil {
		return err
	}
	iv.bindings[bk] = b
	return nil
}

// Unbind releases the subscription for a (table, key) pair.
func (iv *Invalidator) Unbind(table, key string) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	bk := bindingKey(table, key)
	b, ok := iv.bindings[bk]
	if !ok {
		return
	}
	if err := iv.bus.unsubscribe(table, b.fn); err != nil {
		zap.L().Warn("realtime unsubscribe failed",
			zap.String("table", table), zap.Error(err))
	}
	delete(iv.bindings, bk)
}

// Close releases every active subscription.
func (iv *Invalidator) Close() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	for bk, b := range iv.bindings {
		_ = iv.bus.unsubscribe(b.table, b.fn)
		delete(iv.bindings, bk)
	}
}
