package fastcache

import (
	"sort"
	"sync"
	"time"

	"github.com/willie68/GoTikaMeta/internal/metadata"
)

// LRUEntry a cached record
type LRUEntry struct {
	LastAccess time.Time
	Hash       string
	Record     *metadata.Record
}

// LRUList entries sorted by the resource hash
type LRUList struct {
	MaxCount int
	entries  []LRUEntry
	dmu      sync.Mutex
}

// Init initialise the list
func (l *LRUList) Init() {
	l.entries = make([]LRUEntry, 0)
}

// Size number of entries
func (l *LRUList) Size() int {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	return len(l.entries)
}

// Add adds or replaces the entry of the hash
func (l *LRUList) Add(e LRUEntry) {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	i := l.search(e.Hash)
	if i < len(l.entries) && l.entries[i].Hash == e.Hash {
		l.entries[i] = e
		return
	}
	l.entries = insertEntryAt(l.entries, i, e)
}

// GetFullIDList all hashes of the list
func (l *LRUList) GetFullIDList() []string {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	ids := make([]string, len(l.entries))
	for x, e := range l.entries {
		ids[x] = e.Hash
	}
	return ids
}

// HandleContrains returns the hash of the oldest entry, if the list is too big
func (l *LRUList) HandleContrains() string {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	if l.MaxCount > 0 && len(l.entries) > l.MaxCount {
		// remove oldest entry from cache
		return l.entries[l.getOldest()].Hash
	}
	return ""
}

// Get gets the entry and updates the last access
func (l *LRUList) Get(hash string) (LRUEntry, bool) {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	i := l.search(hash)
	if i < len(l.entries) && l.entries[i].Hash == hash {
		l.entries[i].LastAccess = time.Now()
		return l.entries[i], true
	}
	return LRUEntry{}, false
}

// Delete removes the entry, returns the hash if there was an entry
func (l *LRUList) Delete(hash string) string {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	i := l.search(hash)
	if i < len(l.entries) && l.entries[i].Hash == hash {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		return hash
	}
	return ""
}

func (l *LRUList) search(hash string) int {
	return sort.Search(len(l.entries), func(i int) bool { return l.entries[i].Hash >= hash })
}

func (l *LRUList) getOldest() int {
	oldest := 0
	for x, e := range l.entries {
		if e.LastAccess.Before(l.entries[oldest].LastAccess) {
			oldest = x
		}
	}
	return oldest
}

func insertEntryAt(data []LRUEntry, i int, v LRUEntry) []LRUEntry {
	if i == len(data) {
		return append(data, v)
	}
	data = append(data[:i+1], data[i:]...)
	data[i] = v
	return data
}
