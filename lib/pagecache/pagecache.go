package pagecache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// A Cache stores raw fetched pages keyed by show + season so the scrape
// layer can be fed deterministic fixtures in tests and avoid refetching
// unchanged pages during a session. It is a fetch-layer cache, not a
// result store; entries expire.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Put(ctx context.Context, key string, page string)
}

type Memory struct {
	lru *expirable.LRU[string, string]
}

func NewMemory(size int, ttl time.Duration) Memory {
	if size <= 0 {
		size = 256
	}
	return Memory{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (m Memory) Get(ctx context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

func (m Memory) Put(ctx context.Context, key string, page string) {
	m.lru.Add(key, page)
}
