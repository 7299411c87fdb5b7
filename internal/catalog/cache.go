package catalog

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

// table is one strongly keyed cache table. Entries are only added or dropped
// all at once; there is no expiry and no eviction.
type table[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

func (t *table[K, V]) get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

func (t *table[K, V]) set(key K, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.entries == nil {
		t.entries = make(map[K]V)
	}
	t.entries[key] = v
}

func (t *table[K, V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

func (t *table[K, V]) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

// cache holds one table per request kind.
type cache struct {
	lists       table[string, moviesapi.Page]
	movies      table[int64, movie.Movie]
	searches    table[string, []movie.Movie]
	recommended table[int, []movie.Movie]
}

func (c *cache) clear() {
	c.lists.clear()
	c.movies.clear()
	c.searches.clear()
	c.recommended.clear()
}

func (c *cache) size() int {
	return c.lists.len() + c.movies.len() + c.searches.len() + c.recommended.len()
}

// listKey joins the parameters as sorted key=value pairs, so requests that
// differ only in parameter order share an entry.
func listKey(params url.Values) string {
	if len(params) == 0 {
		return "all"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(params[k], ","))
	}
	return "all_" + strings.Join(pairs, "&")
}
