package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cousoworks/tech-store/internal/entity"
	"github.com/cousoworks/tech-store/internal/logging"
)

// Catalog holds the last good inventory snapshot. Loads are
// last-applied-wins by issuance order: a slow response from an older load
// is dropped if a newer one already landed, so reloads can overlap safely.
type Catalog struct {
	api CatalogAPI

	issued atomic.Uint64

	mu      sync.RWMutex
	applied uint64
	items   []entity.Product
	index   map[int64]int
	loaded  bool
	stats   *entity.Statistics
}

func NewCatalog(api CatalogAPI) *Catalog {
	return &Catalog{api: api}
}

// Load fetches the inventory and replaces the snapshot. On failure the
// previous snapshot stays in place and the error is a CatalogError.
func (c *Catalog) Load(ctx context.Context) ([]entity.Product, error) {
	gen := c.issued.Add(1)

	items, err := c.api.ListProducts(ctx)
	if err != nil {
		return nil, &entity.CatalogError{Message: "could not load products", Err: classifyAPIError(err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen <= c.applied {
		// A later-issued load already applied; this result is stale.
		logging.FromCtx(ctx).Info("dropping stale catalog load", "generation", gen)
		return c.snapshotLocked(), nil
	}
	c.applied = gen
	c.items = items
	c.index = make(map[int64]int, len(items))
	for i, p := range items {
		c.index[p.ID] = i
	}
	c.loaded = true
	return c.snapshotLocked(), nil
}

// Loaded reports whether any snapshot has been applied yet.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Products returns the full snapshot, including out-of-stock items.
func (c *Catalog) Products() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Purchasable filters to items with stock, recomputed on every call.
func (c *Catalog) Purchasable() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Product, 0, len(c.items))
	for _, p := range c.items {
		if p.InStock() {
			out = append(out, p)
		}
	}
	return out
}

// Search filters purchasable items by name or description.
func (c *Catalog) Search(term string) []entity.Product {
	out := c.Purchasable()
	if term == "" {
		return out
	}
	filtered := out[:0]
	for _, p := range out {
		if p.Matches(term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Product looks up one item in the current snapshot.
func (c *Catalog) Product(id int64) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return entity.Product{}, false
	}
	return c.items[i], true
}

// RefreshStatistics is best-effort; a failure is logged and otherwise
// ignored so it can never block the catalog display.
func (c *Catalog) RefreshStatistics(ctx context.Context) {
	stats, err := c.api.GetStatistics(ctx)
	if err != nil {
		logging.FromCtx(ctx).Info("statistics unavailable", "error", err)
		return
	}
	c.mu.Lock()
	c.stats = &stats
	c.mu.Unlock()
}

// Statistics returns the last fetched counters, if any arrived.
func (c *Catalog) Statistics() (entity.Statistics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return entity.Statistics{}, false
	}
	return *c.stats, true
}

// Ping probes the API health endpoint.
func (c *Catalog) Ping(ctx context.Context) (string, error) {
	version, err := c.api.Ping(ctx)
	if err != nil {
		return "", classifyAPIError(err)
	}
	return version, nil
}

func (c *Catalog) snapshotLocked() []entity.Product {
	out := make([]entity.Product, len(c.items))
	copy(out, c.items)
	return out
}
