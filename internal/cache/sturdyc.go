package cache

import (
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// nsSeparator joins the namespace to the key. It never appears inside a
// Namespace, so a prefix scan over full keys cannot cross namespaces.
const nsSeparator = "::"

// Config holds the sturdyc settings we expose. Zero values fall back to the
// defaults below.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                10 * time.Minute,
		EvictionPercentage: 10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	if c.NumShards <= 0 {
		c.NumShards = def.NumShards
	}
	if c.TTL <= 0 {
		c.TTL = def.TTL
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		c.EvictionPercentage = def.EvictionPercentage
	}
	return c
}

// Store is the sturdyc-backed Cache implementation. sturdyc shards its
// entries internally, so Get/Put/Evict need no external locking.
type Store struct {
	client *sturdyc.Client[any]
}

var _ Cache = (*Store)(nil)

func New(cfg Config) *Store {
	cfg = cfg.withDefaults()
	client := sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage)
	return &Store{client: client}
}

func fullKey(ns Namespace, key Key) string {
	return string(ns) + nsSeparator + key.String()
}

func (s *Store) Get(ns Namespace, key Key) (any, bool) {
	return s.client.Get(fullKey(ns, key))
}

func (s *Store) Put(ns Namespace, key Key, value any) {
	s.client.Set(fullKey(ns, key), value)
}

func (s *Store) Evict(ns Namespace, key Key) {
	s.client.Delete(fullKey(ns, key))
}

func (s *Store) EvictAll(ns Namespace) {
	prefix := string(ns) + nsSeparator
	for _, k := range s.client.ScanKeys() {
		if strings.HasPrefix(k, prefix) {
			s.client.Delete(k)
		}
	}
}

// Size reports the number of live entries across all namespaces.
func (s *Store) Size() int {
	return s.client.Size()
}
