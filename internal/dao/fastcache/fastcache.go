// Package fastcache in memory lru cache of metadata records by resource hash
package fastcache

import (
	"sync"
	"time"

	"github.com/akgarhwal/bloomfilter/bloomfilter"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/metadata"
)

// DefaultMaxCount default number of cached records
const DefaultMaxCount = 10000

var log = logging.New().WithName("fastcache")

// FastCache the record cache, a bloom filter answers most misses without locking the list
type FastCache struct {
	MaxCount   int
	entries    LRUList
	bf         bloomfilter.BloomFilter
	bfDirty    bool
	bfm        sync.Mutex
	background *time.Ticker
	quit       chan bool
}

// Init initialise the cache and start the background rebuild of the bloom filter
func (f *FastCache) Init() error {
	if f.MaxCount <= 0 {
		f.MaxCount = DefaultMaxCount
	}
	f.entries = LRUList{
		MaxCount: f.MaxCount,
	}
	f.entries.Init()

	f.bf = *bloomfilter.NewBloomFilter(uint64(f.MaxCount), 0.1)
	f.bfDirty = false
	f.background = time.NewTicker(60 * time.Second)
	f.quit = make(chan bool)
	go func() {
		for {
			select {
			case <-f.background.C:
				f.rebuildBloomFilter()
			case <-f.quit:
				f.background.Stop()
				return
			}
		}
	}()
	return nil
}

// Get a copy of the cached record of the hash
func (f *FastCache) Get(hash string) (*metadata.Record, bool) {
	if hash == "" || !f.inBloom(hash) {
		return nil, false
	}
	e, ok := f.entries.Get(hash)
	if !ok {
		return nil, false
	}
	return e.Record.Clone(), true
}

// Put caches a copy of the record
func (f *FastCache) Put(r *metadata.Record) {
	if r == nil || r.ResourceHash == "" {
		return
	}
	f.entries.Add(LRUEntry{
		LastAccess: time.Now(),
		Hash:       r.ResourceHash,
		Record:     r.Clone(),
	})
	f.updateBloom(r.ResourceHash)
	if hash := f.entries.HandleContrains(); hash != "" {
		log.Debugf("evicting %s", hash)
		f.Delete(hash)
	}
}

// Delete removes the record of the hash
func (f *FastCache) Delete(hash string) {
	if f.entries.Delete(hash) != "" {
		f.bfm.Lock()
		f.bfDirty = true
		f.bfm.Unlock()
	}
}

// Size number of cached records
func (f *FastCache) Size() int {
	return f.entries.Size()
}

func (f *FastCache) updateBloom(hash string) {
	f.bfm.Lock()
	defer f.bfm.Unlock()
	f.bf.Insert([]byte(hash))
}

func (f *FastCache) inBloom(hash string) bool {
	f.bfm.Lock()
	defer f.bfm.Unlock()
	return f.bf.Lookup([]byte(hash))
}

func (f *FastCache) rebuildBloomFilter() {
	f.bfm.Lock()
	dirty := f.bfDirty
	f.bfm.Unlock()
	if !dirty {
		return
	}
	ids := f.entries.GetFullIDList()
	tb := bloomfilter.NewBloomFilter(uint64(f.MaxCount), 0.1)
	for _, id := range ids {
		tb.Insert([]byte(id))
	}
	f.bfm.Lock()
	defer f.bfm.Unlock()
	f.bf = *tb
	f.bfDirty = false
}

// Close stopping the background task
func (f *FastCache) Close() error {
	f.quit <- true
	return nil
}
