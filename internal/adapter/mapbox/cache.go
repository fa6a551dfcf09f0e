package mapbox

import (
	"container/list"
	"context"
	"math"
	"sync"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
	"github.com/couchcryptid/hurricane-landfall-service/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed on the
// tenth-degree grid HURDAT2 reports positions on. Landfall points repeat often
// across reports, and finer differences in a lookup do not change the place.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := gridPointOf(lat, lon)
	if result, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later lookup can still find the place.
	if result.FormattedAddress != "" {
		c.cache.put(key, result)
	}
	return result, nil
}

// gridPoint is a position in tenths of a degree.
type gridPoint struct {
	lat, lon int32
}

func gridPointOf(lat, lon float64) gridPoint {
	return gridPoint{
		lat: int32(math.Round(lat * 10)),
		lon: int32(math.Round(lon * 10)),
	}
}

type cacheItem struct {
	key   gridPoint
	value domain.GeocodingResult
}

// lruCache holds at most maxEntries results. The front of order is the most
// recently used item.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	items      map[gridPoint]*list.Element
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[gridPoint]*list.Element),
	}
}

func (c *lruCache) get(key gridPoint) (domain.GeocodingResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return domain.GeocodingResult{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheItem).value, true
}

func (c *lruCache) put(key gridPoint, value domain.GeocodingResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheItem).value = value
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&cacheItem{key: key, value: value})

	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheItem).key)
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
