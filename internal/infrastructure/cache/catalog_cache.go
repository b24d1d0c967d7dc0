// Package cache guarda en memoria las consultas al catálogo de productos.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// DefaultCatalogTTL vigencia de un producto en caché si la configuración no indica otra.
const DefaultCatalogTTL = 5 * time.Minute

// CatalogCache lectura de productos con caché en memoria sobre ProductRepository.
// Los productos inexistentes no se guardan.
type CatalogCache struct {
	repo  repository.ProductRepository
	items *gocache.Cache
}

// NewCatalogCache construye la caché. ttl <= 0 usa DefaultCatalogTTL.
func NewCatalogCache(repo repository.ProductRepository, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{repo: repo, items: gocache.New(ttl, 2*ttl)}
}

// Lookup devuelve una copia del producto; (nil, nil) si no existe.
func (c *CatalogCache) Lookup(ctx context.Context, productID string) (*entity.Product, error) {
	if v, ok := c.items.Get(productID); ok {
		p := v.(entity.Product)
		return &p, nil
	}
	p, err := c.repo.GetByID(ctx, productID)
	if err != nil || p == nil {
		return nil, err
	}
	c.items.SetDefault(productID, *p)
	out := *p
	return &out, nil
}

// Invalidate descarta el producto tras editarlo o eliminarlo.
func (c *CatalogCache) Invalidate(productID string) {
	c.items.Delete(productID)
}

// Flush vacía la caché.
func (c *CatalogCache) Flush() {
	c.items.Flush()
}
