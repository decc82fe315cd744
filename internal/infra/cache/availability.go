package cache

import (
	"sync"
	"time"

	"github.com/maypok86/otter/v2"

	getAvailability "github.com/rckarchitects/crashboard/internal/usecase/get_availability"
	"github.com/rckarchitects/crashboard/pkg/metrics"
)

// AvailabilityCache TTL-кэш готовых ответов доступности по ключу
// user+window. Результаты не персистятся: кэш живет только в памяти
type AvailabilityCache struct {
	cache     *otter.Cache[string, *getAvailability.Response]
	collector *metrics.Metrics

	// Пер-ключевые мьютексы гарантируют не более одного конкурентного
	// заполнения на ключ: параллельные запросы одного окна ждут и
	// читают готовый результат вместо повторного похода в календарь
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// New создает новый кэш доступности
// ttl - время жизни записи (600 секунд в продакшене)
// maxEntries - максимальное количество записей
func New(ttl time.Duration, maxEntries int, collector *metrics.Metrics) *AvailabilityCache {
	cache := otter.Must(&otter.Options[string, *getAvailability.Response]{
		MaximumSize:      maxEntries,
		ExpiryCalculator: otter.ExpiryWriting[string, *getAvailability.Response](ttl),
	})

	return &AvailabilityCache{
		cache:     cache,
		collector: collector,
		locks:     make(map[string]*keyLock),
	}
}

// Get возвращает закэшированный ответ по ключу
func (c *AvailabilityCache) Get(key string) (*getAvailability.Response, bool) {
	resp, ok := c.cache.GetIfPresent(key)
	if c.collector != nil {
		if ok {
			c.collector.CacheHitsTotal.WithLabelValues("availability").Inc()
		} else {
			c.collector.CacheMissesTotal.WithLabelValues("availability").Inc()
		}
	}
	return resp, ok
}

// Set сохраняет ответ по ключу
func (c *AvailabilityCache) Set(key string, resp *getAvailability.Response) {
	c.cache.Set(key, resp)
}

// Invalidate удаляет запись по ключу
func (c *AvailabilityCache) Invalidate(key string) {
	c.cache.Invalidate(key)
}

// Lock захватывает заполнение ключа. Возвращенная функция освобождает
// захват; неиспользуемые мьютексы удаляются из карты
func (c *AvailabilityCache) Lock(key string) func() {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &keyLock{}
		c.locks[key] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, key)
		}
		c.mu.Unlock()
	}
}
