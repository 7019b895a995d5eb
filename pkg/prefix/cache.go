package prefix

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// cacheEntry wraps cached results so patricia never stores a nil item.
type cacheEntry struct {
	titles []string
}

// HotCache keeps the results of recent prefix queries.
// Entries are keyed in a patricia trie so an insert can drop every cached prefix of the new title in one visit.
// The empty prefix lives outside the trie.
type HotCache struct {
	hotTrie     *patricia.Trie
	rootEntry   *cacheEntry
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
	hits        int
	misses      int
}

// NewHotCache creates a cache holding at most maxEntries prefixes.
// A non-positive size disables caching.
func NewHotCache(maxEntries int) *HotCache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &HotCache{
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached results for prefix.
func (hc *HotCache) Get(prefix string) ([]string, bool) {
	entry := hc.lookup(prefix)
	if entry == nil {
		hc.misses++
		return nil, false
	}
	hc.hits++
	hc.markAccessed(prefix)
	return append([]string{}, entry.titles...), true
}

// Put stores results for prefix, evicting the least recently used prefix when full.
func (hc *HotCache) Put(prefix string, titles []string) {
	if hc.maxEntries == 0 {
		return
	}
	if _, exists := hc.accessTime[prefix]; !exists && len(hc.accessTime) >= hc.maxEntries {
		hc.evictLRU()
	}

	entry := &cacheEntry{titles: append([]string{}, titles...)}
	if prefix == "" {
		hc.rootEntry = entry
	} else {
		hc.hotTrie.Set(patricia.Prefix(prefix), entry)
	}
	hc.markAccessed(prefix)
}

// Invalidate drops every cached prefix of title, since their results may now include it.
func (hc *HotCache) Invalidate(title string) {
	if hc.rootEntry != nil {
		hc.rootEntry = nil
		delete(hc.accessTime, "")
	}
	if title == "" {
		return
	}

	var stale []patricia.Prefix
	err := hc.hotTrie.VisitPrefixes(patricia.Prefix(title), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting hot cache prefixes: %v", err)
	}

	for _, p := range stale {
		hc.hotTrie.Delete(p)
		delete(hc.accessTime, string(p))
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes for '%s'", len(stale), title)
	}
}

// Len returns the number of cached prefixes.
func (hc *HotCache) Len() int {
	return len(hc.accessTime)
}

func (hc *HotCache) Stats() map[string]int {
	return map[string]int{
		"cacheEntries": len(hc.accessTime),
		"maxEntries":   hc.maxEntries,
		"cacheHits":    hc.hits,
		"cacheMisses":  hc.misses,
	}
}

func (hc *HotCache) lookup(prefix string) *cacheEntry {
	if prefix == "" {
		return hc.rootEntry
	}
	item := hc.hotTrie.Get(patricia.Prefix(prefix))
	if item == nil {
		return nil
	}
	return item.(*cacheEntry)
}

func (hc *HotCache) markAccessed(prefix string) {
	hc.accessCount++
	hc.accessTime[prefix] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldest string
	var oldestTime int64 = math.MaxInt64
	found := false

	for prefix, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldest = prefix
			found = true
		}
	}
	if !found {
		return
	}

	if oldest == "" {
		hc.rootEntry = nil
	} else {
		hc.hotTrie.Delete(patricia.Prefix(oldest))
	}
	delete(hc.accessTime, oldest)
	log.Debugf("Evicted prefix '%s' from hot cache", oldest)
}
