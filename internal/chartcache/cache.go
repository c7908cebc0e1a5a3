package chartcache

import (
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache хранит отрисованные изображения диаграмм.
// Диаграмма — чистая функция входных значений и неизменного датасета,
// поэтому результат по одному ключу всегда одинаков.
type Cache struct {
	items *ttlcache.Cache[string, []byte]
	ttl   time.Duration
}

// New создаёт кеш; ttl <= 0 отключает кеширование. capacity ограничивает
// число изображений, при переполнении вытесняются давно не запрошенные;
// 0 снимает ограничение.
func New(ttl time.Duration, capacity uint64) *Cache {
	c := &Cache{ttl: ttl}
	if ttl > 0 {
		opts := []ttlcache.Option[string, []byte]{
			ttlcache.WithTTL[string, []byte](ttl),
		}
		if capacity > 0 {
			opts = append(opts, ttlcache.WithCapacity[string, []byte](capacity))
		}
		c.items = ttlcache.New[string, []byte](opts...)
	}
	return c
}

// Key собирает ключ кеша из параметров диаграммы; variant отличает
// диаграммы одного виджета для разных площадок.
func Key(output, format, variant string, low, high float64, width, height int) string {
	return fmt.Sprintf("%s|%s|%s|%g|%g|%dx%d", output, format, variant, low, high, width, height)
}

// GetOrRender возвращает изображение из кеша или отрисовывает и сохраняет его.
// Второе значение сообщает о попадании в кеш. Ошибки отрисовки не кешируются.
func (c *Cache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, bool, error) {
	if c.items != nil {
		if item := c.items.Get(key); item != nil {
			return item.Value(), true, nil
		}
	}

	data, err := render()
	if err != nil {
		return nil, false, err
	}
	if c.items != nil {
		c.items.Set(key, data, ttlcache.DefaultTTL)
	}
	return data, false, nil
}

// Len возвращает число элементов в кеше.
func (c *Cache) Len() int {
	if c.items == nil {
		return 0
	}
	return c.items.Len()
}

// Start запускает удаление просроченных элементов в отдельной горутине.
func (c *Cache) Start() {
	if c.items != nil {
		go c.items.Start()
	}
}

// Stop останавливает фоновую очистку.
func (c *Cache) Stop() {
	if c.items != nil {
		c.items.Stop()
	}
}
