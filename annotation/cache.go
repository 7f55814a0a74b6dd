package annotation

import (
	"sort"
	"strings"
	"sync"
)

// Cache memoizes scan results per (root path, include set). Scans are
// expensive relative to request handling, so the result is treated as
// effectively immutable once cached; Clear is an explicit administrative
// action for hot-reload scenarios, never triggered by request traffic.
type Cache struct {
	mu      sync.RWMutex
	scanner *Scanner
	entries map[string][]Occurrence
}

func NewCache() *Cache {
	return &Cache{
		scanner: NewScanner(),
		entries: map[string][]Occurrence{},
	}
}

func cacheKey(root string, include []string) string {
	sorted := append([]string(nil), include...)
	sort.Strings(sorted)
	return root + "|" + strings.Join(sorted, ",")
}

// Scan returns the occurrences for root, scanning at most once per
// (root, include) pair.
func (c *Cache) Scan(root string, include ...string) ([]Occurrence, error) {
	key := cacheKey(root, include)

	c.mu.RLock()
	occs, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return occs, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if occs, ok := c.entries[key]; ok {
		return occs, nil
	}

	occs, err := c.scanner.ScanDir(root, include...)
	if err != nil {
		return nil, err
	}
	c.entries[key] = occs
	return occs, nil
}

// Clear drops all cached scans and returns how many entries were evicted.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = map[string][]Occurrence{}
	return n
}
