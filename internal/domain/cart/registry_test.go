// internal/domain/cart/registry_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryReturnsSameStorePerSession(t *testing.T) {
	registry := NewRegistry()

	a := registry.Get("s1")
	b := registry.Get("s1")
	c := registry.Get("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, registry.Len())
}

func TestRegistryDrop(t *testing.T) {
	registry := NewRegistry()

	store := registry.Get("s1")
	store.AddItem("g1", "Game One", 29.99, "", nil, 0)

	registry.Drop("s1")

	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, 0, registry.Get("s1").TotalQuantity())
}
