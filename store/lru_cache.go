package store

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/willf/bloom"

	"github.com/brats-labs/brats/types"
)

// The cache keeps hot stake accounts in memory so repeated claim and
// unstake lookups skip the database; the Bloom filter short-circuits
// lookups for addresses that were never cached.

type accountCache struct {
	cache       *lru.Cache[string, *types.StakeAccount]
	bloomFilter *bloom.BloomFilter
	mutex       sync.RWMutex
}

func newAccountCache(size int, expectedItems uint, falsePositiveRate float64) (*accountCache, error) {
	c, err := lru.New[string, *types.StakeAccount](size)
	if err != nil {
		return nil, err
	}

	bf := bloom.NewWithEstimates(expectedItems, falsePositiveRate)

	return &accountCache{
		cache:       c,
		bloomFilter: bf,
	}, nil
}

// get returns a copy so callers can mutate freely before saving.
func (c *accountCache) get(addr types.Address) (*types.StakeAccount, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	key := addr.String()
	if !c.bloomFilter.TestString(key) {
		return nil, false
	}

	acct, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	cp := *acct
	return &cp, true
}

func (c *accountCache) add(addr types.Address, acct *types.StakeAccount) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := addr.String()
	cp := *acct

	c.bloomFilter.AddString(key)
	c.cache.Add(key, &cp)
}

func (c *accountCache) purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache.Purge()
	c.bloomFilter.ClearAll()
}
