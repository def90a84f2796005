// Package catalog caches the menu. The snapshot is only ever replaced
// wholesale from the remote list; a locally created item becomes visible
// through the follow-up refresh, never by splicing it in, so the cache
// cannot drift from whatever canonical fields the service assigned.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"

	"github.com/jask/jaskeats/internal/access"
	"github.com/jask/jaskeats/internal/api"
)

var (
	// ErrManagerOnly is returned when a non-manager tries to add an item.
	ErrManagerOnly = errors.New("only managers can add menu items")
	// ErrEmptyName is returned when the add-item form submits a blank name.
	ErrEmptyName = errors.New("enter an item name")
	// ErrBadPrice is returned when the price is not a non-negative number.
	ErrBadPrice = errors.New("price must be a non-negative number")
)

// Catalog is the process-wide menu snapshot.
type Catalog struct {
	gw  *api.Client
	log *logrus.Logger

	mu    sync.RWMutex
	items []api.FoodItem
}

func New(gw *api.Client, log *logrus.Logger) *Catalog {
	if log == nil {
		log = logrus.New()
	}
	return &Catalog{gw: gw, log: log}
}

// Refresh replaces the snapshot with the authoritative list. On failure
// the previous snapshot is kept and the error is returned for the caller
// to surface; reads keep working off last-known-good data.
func (c *Catalog) Refresh(ctx context.Context) error {
	items, err := c.gw.ListItems(ctx)
	if err != nil {
		c.log.WithError(err).Warn("menu refresh failed, keeping previous snapshot")
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the current snapshot.
func (c *Catalog) Items() []api.FoodItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.FoodItem, len(c.items))
	copy(out, c.items)
	return out
}

// Has reports whether name is on the menu.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.Name == name {
			return true
		}
	}
	return false
}

// Nearest suggests the closest menu item to name, for "did you mean"
// hints when a typed item is not on the menu. ok is false when nothing
// is plausibly close.
func (c *Catalog) Nearest(name string) (suggestion string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	best, bestDist := "", 4 // anything further than 3 edits is noise
	lower := strings.ToLower(name)
	for _, item := range c.items {
		if d := levenshtein.ComputeDistance(lower, strings.ToLower(item.Name)); d < bestDist {
			best, bestDist = item.Name, d
		}
	}
	return best, best != ""
}

// AddItem validates locally, creates the item remotely, then refreshes so
// the new item shows up with its canonical fields. Only managers get past
// the guard; nothing is sent for invalid input.
func (c *Catalog) AddItem(ctx context.Context, identity *api.Identity, rawName, rawPrice string) (api.FoodItem, error) {
	if !access.CanManageMenu(identity) {
		return api.FoodItem{}, ErrManagerOnly
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		return api.FoodItem{}, ErrEmptyName
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil || price < 0 {
		return api.FoodItem{}, ErrBadPrice
	}

	item, err := c.gw.CreateItem(ctx, name, price)
	if err != nil {
		return api.FoodItem{}, err
	}
	if err := c.Refresh(ctx); err != nil {
		// The item exists remotely; the stale snapshot heals on the
		// next successful refresh.
		c.log.WithError(err).WithField("item", item.Name).Warn("refresh after add failed")
	}
	return item, nil
}
