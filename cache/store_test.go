package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPutGet(t *testing.T) {
	store := NewMemory()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Put("a", 1)
	value, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestMemoryOverwrite(t *testing.T) {
	store := NewMemory()

	store.Put("a", "first")
	store.Put("a", "second")

	value, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "second", value)
	assert.Equal(t, 1, store.Size())
}

func TestMemoryNoEviction(t *testing.T) {
	store := NewMemory()

	for i := 0; i < 1000; i++ {
		store.Put(Key("patron", fmt.Sprintf("kind-%d", i)), i)
	}

	// Nothing is ever evicted or expired.
	assert.Equal(t, 1000, store.Size())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "p123|blocks", Key("p123", "blocks"))
	assert.NotEqual(t, Key("p1", "blocks"), Key("p1", "group"))
}
