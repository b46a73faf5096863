package snow

import (
	"sync"

	"github.com/chrissnell/seasonswap/internal/swap"
)

// Info is what is remembered about a classified object.
type Info struct {
	ObjectID       swap.ResourceID `json:"object_id"`
	OriginalShader swap.ResourceID `json:"original_shader"`
	Type           Type            `json:"type"`
}

// Cache memoizes classifications per object for the life of the process. It never evicts: the
// classification is a property of the object's static mesh and the key space is bounded by the
// loaded content.
type Cache struct {
	mu      sync.Mutex
	entries map[swap.ResourceID]Info
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[swap.ResourceID]Info)}
}

// Get returns the stored entry for id.
func (c *Cache) Get(id swap.ResourceID) (Info, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.entries[id]
	return info, ok
}

// GetOrClassify returns the stored entry for id, classifying the object first if needed. The lock
// is not held while classify runs; two callers racing on the same id may both classify, and the
// entry stored first is kept so the recorded original shader is the one seen before any swap.
func (c *Cache) GetOrClassify(id, originalShader swap.ResourceID, classify func() Type) Info {
	if info, ok := c.Get(id); ok {
		return info
	}

	info := Info{ObjectID: id, OriginalShader: originalShader, Type: classify()}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[id]; ok {
		return existing
	}
	c.entries[id] = info
	return info
}

// RestoreOriginal returns the shader the object had when it was classified. ok is false only
// when the object was never classified; a classified object without a shader reports 0.
func (c *Cache) RestoreOriginal(id swap.ResourceID) (swap.ResourceID, bool) {
	info, ok := c.Get(id)
	if !ok {
		return 0, false
	}
	return info.OriginalShader, true
}

// Len returns the number of classified objects.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
