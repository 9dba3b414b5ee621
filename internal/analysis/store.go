package analysis

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store keeps recent batches in memory, bounded by an LRU cache.
// Nothing survives a restart; evicted batches simply become
// unfetchable while any of their in-flight calls still run to
// completion.
type Store struct {
	cache *lru.Cache[string, *Batch]
}

func NewStore(size int) (*Store, error) {
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[string, *Batch](size)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

func (s *Store) Add(b *Batch) {
	s.cache.Add(b.ID, b)
}

func (s *Store) Get(id string) (*Batch, bool) {
	return s.cache.Get(id)
}
