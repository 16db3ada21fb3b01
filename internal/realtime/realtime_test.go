package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devstep613/doshihardware/internal/cache"
)

func loadKey(t *testing.T, store *cache.Store, key string) {
	t.Helper()
	_, err := store.GetOrLoad(key, func() (interface{}, error) { return "cached", nil })
	require.NoError(t, err)
}

func isValid(store *cache.Store, key string) bool {
	_, valid, _ := store.Peek(key)
	return valid
}

func TestChangeEventInvalidatesBoundKey(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)
	defer iv.Close()

	require.NoError(t, iv.Bind("products", "public_products"))
	loadKey(t, store, "public_products")
	assert.True(t, isValid(store, "public_products"))

	bus.Publish("products", OpUpdate, 42)
	bus.WaitAsync()

	assert.False(t, isValid(store, "public_products"), "bound key must be stale after a change event")
}

func TestEveryOpKindInvalidates(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)
	defer iv.Close()

	require.NoError(t, iv.Bind("reviews", "public_reviews"))
	for _, op := range []string{OpInsert, OpUpdate, OpDelete} {
		loadKey(t, store, "public_reviews")
		bus.Publish("reviews", op, 1)
		bus.WaitAsync()
		assert.False(t, isValid(store, "public_reviews"), "op %s must invalidate", op)
	}
}

func TestUnrelatedTableDoesNotInvalidate(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)
	defer iv.Close()

	require.NoError(t, iv.Bind("products", "public_products"))
	loadKey(t, store, "public_products")

	bus.Publish("testimonials", OpInsert, 7)
	bus.WaitAsync()

	assert.True(t, isValid(store, "public_products"))
}

func TestMultipleKeysBoundToOneTable(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)
	defer iv.Close()

	require.NoError(t, iv.Bind("products", "public_products"))
	require.NoError(t, iv.Bind("products", "public_offers"))
	loadKey(t, store, "public_products")
	loadKey(t, store, "public_offers")

	bus.Publish("products", OpDelete, 9)
	bus.WaitAsync()

	assert.False(t, isValid(store, "public_products"))
	assert.False(t, isValid(store, "public_offers"))
}

func TestRebindIsNoop(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)
	defer iv.Close()

	require.NoError(t, iv.Bind("products", "public_products"))
	require.NoError(t, iv.Bind("products", "public_products"))

	loadKey(t, store, "public_products")
	bus.Publish("products", OpUpdate, 1)
	bus.WaitAsync()
	assert.False(t, isValid(store, "public_products"))
}

func TestUnbindStopsInvalidation(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)

	require.NoError(t, iv.Bind("products", "public_products"))
	iv.Unbind("products", "public_products")

	loadKey(t, store, "public_products")
	bus.Publish("products", OpUpdate, 1)
	bus.WaitAsync()

	assert.True(t, isValid(store, "public_products"), "unbound key must not be touched")
}

func TestCloseReleasesAllBindings(t *testing.T) {
	bus := NewBus()
	store := cache.NewStore()
	iv := NewInvalidator(bus, store)

	require.NoError(t, iv.Bind("products", "public_products"))
	require.NoError(t, iv.Bind("reviews", "public_reviews"))
	iv.Close()

	loadKey(t, store, "public_products")
	loadKey(t, store, "public_reviews")
	bus.Publish("products", OpUpdate, 1)
	bus.Publish("reviews", OpInsert, 2)
	bus.WaitAsync()

	assert.True(t, isValid(store, "public_products"))
	assert.True(t, isValid(store, "public_reviews"))
}
