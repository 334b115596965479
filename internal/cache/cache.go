package cache

// Namespace is a logical partition of the cache. Keys are unique within one
// namespace only.
type Namespace string

const (
	Carts      Namespace = "carts"
	Categories Namespace = "categories"
	Products   Namespace = "products"
	Users      Namespace = "users"
	Customers  Namespace = "customers"
)

// Key is a composite cache key: a stable kind prefix plus an identifier.
// Building keys from these two parts instead of ad-hoc concatenation keeps
// "item:1" and "items:1" from ever colliding.
type Key struct {
	Kind string
	ID   string
}

func NewKey(kind, id string) Key {
	return Key{Kind: kind, ID: id}
}

func (k Key) String() string {
	return k.Kind + ":" + k.ID
}

// Cache is a namespaced key-value store safe for concurrent use. Expiry and
// capacity eviction are the backend's business; callers only ever see
// explicit Evict/EvictAll.
type Cache interface {
	Get(ns Namespace, key Key) (any, bool)
	Put(ns Namespace, key Key, value any)
	Evict(ns Namespace, key Key)
	EvictAll(ns Namespace)
}

// GetOrLoad returns the cached value for key, calling load and populating the
// cache on a miss. Concurrent callers racing the same miss may each invoke
// load; reads are idempotent so the last writer simply wins.
func GetOrLoad[T any](c Cache, ns Namespace, key Key, load func() (T, error)) (T, error) {
	if v, ok := c.Get(ns, key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Put(ns, key, v)
	return v, nil
}
