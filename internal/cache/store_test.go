package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoadCachesValue(t *testing.T) {
	store := NewStore()
	calls := 0

	loader := func() (interface{}, error) {
		calls++
		return "catalog", nil
	}

	v, err := store.GetOrLoad("products", loader)
	require.NoError(t, err)
	assert.Equal(t, "catalog", v)

	v, err = store.GetOrLoad("products", loader)
	require.NoError(t, err)
	assert.Equal(t, "catalog", v)
	assert.Equal(t, 1, calls, "second read must come from cache")
}

func TestInvalidateForcesReload(t *testing.T) {
	store := NewStore()
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	v, err := store.GetOrLoad("products", loader)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	store.Invalidate("products")
	v, err = store.GetOrLoad("products", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidateUnknownKeyIsNoop(t *testing.T) {
	store := NewStore()
	store.Invalidate("never-loaded")
	store.Invalidate("never-loaded")
	assert.Empty(t, store.Keys())
}

func TestLoadErrorsAreNotCached(t *testing.T) {
	store := NewStore()
	boom := errors.New("db down")
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	_, err := store.GetOrLoad("products", loader)
	assert.ErrorIs(t, err, boom)

	v, err := store.GetOrLoad("products", loader)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls, "failure must not be served from cache")
}

func TestConcurrentReadersLoadOnce(t *testing.T) {
	store := NewStore()
	var mu sync.Mutex
	calls := 0
	loader := func() (interface{}, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad("products", loader)
			assert.NoError(t, err)
			assert.Equal(t, "v", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

func TestPeek(t *testing.T) {
	store := NewStore()

	_, valid, _ := store.Peek("products")
	assert.False(t, valid)

	_, err := store.GetOrLoad("products", func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)

	v, valid, err := store.Peek("products")
	assert.True(t, valid)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	store.Invalidate("products")
	_, valid, _ = store.Peek("products")
	assert.False(t, valid)
}

func TestInvalidateAll(t *testing.T) {
	store := NewStore()
	for _, key := range []string{"a", "b", "c"} {
		_, err := store.GetOrLoad(key, func() (interface{}, error) { return key, nil })
		require.NoError(t, err)
	}

	store.InvalidateAll()
	for _, key := range []string{"a", "b", "c"} {
		_, valid, _ := store.Peek(key)
		assert.False(t, valid, "key %s should be stale", key)
	}
	assert.Len(t, store.Keys(), 3)
}
