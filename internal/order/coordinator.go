// Package order places orders and keeps the cached order feeds in step
// with the remote ledger. Every mutation is confirmed remotely before
// any cache changes, and the affected feeds are re-fetched afterwards
// rather than patched in place.
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jask/jaskeats/internal/access"
	"github.com/jask/jaskeats/internal/api"
	"github.com/jask/jaskeats/internal/catalog"
)

var (
	// ErrCustomerOnly is returned when a non-customer tries to place an order.
	ErrCustomerOnly = errors.New("only customers can place orders")
	// ErrManagerOnly is returned when a non-manager asks for the global
	// feed or tries to mark a delivery.
	ErrManagerOnly = errors.New("only managers can do that")
	// ErrNotYourOrders is returned when an identity asks for another
	// customer's feed.
	ErrNotYourOrders = errors.New("you can only view your own orders")
	// ErrEmptyCustomerName is returned when the order form submits a blank name.
	ErrEmptyCustomerName = errors.New("enter a customer name")
	// ErrUnknownItem is returned when the ordered item is not on the menu.
	ErrUnknownItem = errors.New("that item is not on the menu")
	// ErrBadQuantity is returned when quantity is not a number of at least 1.
	ErrBadQuantity = errors.New("quantity must be a whole number of at least 1")
)

// Coordinator owns the cached order feeds: the manager-facing global
// feed and one per-user feed for whichever customer loaded it last.
type Coordinator struct {
	gw      *api.Client
	catalog *catalog.Catalog
	log     *logrus.Logger

	mu           sync.RWMutex
	global       []api.Order
	globalLoaded bool
	mine         []api.Order
	mineUserID   int // 0 = no per-user feed cached
}

func NewCoordinator(gw *api.Client, cat *catalog.Catalog, log *logrus.Logger) *Coordinator {
	if log == nil {
		log = logrus.New()
	}
	return &Coordinator{gw: gw, catalog: cat, log: log}
}

// PlaceOrder validates locally, creates the order remotely, then brings
// the placing customer's feed (and the global feed, when it has been
// loaded) back in sync. Validation failures never reach the network.
func (c *Coordinator) PlaceOrder(ctx context.Context, identity *api.Identity, rawName, itemName, rawQuantity string) (api.Order, error) {
	if !access.CanPlaceOrder(identity) {
		return api.Order{}, ErrCustomerOnly
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		return api.Order{}, ErrEmptyCustomerName
	}
	itemName = strings.TrimSpace(itemName)
	if !c.catalog.Has(itemName) {
		if hint, ok := c.catalog.Nearest(itemName); ok && hint != itemName {
			return api.Order{}, fmt.Errorf("%w (did you mean %q?)", ErrUnknownItem, hint)
		}
		return api.Order{}, ErrUnknownItem
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(rawQuantity))
	if err != nil || quantity < 1 {
		return api.Order{}, ErrBadQuantity
	}

	placed, err := c.gw.PlaceOrder(ctx, name, itemName, quantity, identity.ID)
	if err != nil {
		return api.Order{}, err
	}

	// Re-sync only after the write is confirmed, customer feed first so
	// "My Orders" shows the new row without a manual refresh.
	if err := c.RefreshForUser(ctx, identity.ID); err != nil {
		c.log.WithError(err).Warn("user feed refresh after place failed")
	}
	c.refreshGlobalIfLoaded(ctx)
	return placed, nil
}

// ListForManager refreshes and returns the global feed, in the order the
// service returns it. On refresh failure the previous snapshot comes
// back alongside the error.
func (c *Coordinator) ListForManager(ctx context.Context, identity *api.Identity) ([]api.Order, error) {
	if !access.CanMarkDelivered(identity) {
		return nil, ErrManagerOnly
	}
	if err := c.RefreshGlobal(ctx); err != nil {
		return c.Global(), err
	}
	return c.Global(), nil
}

// ListForUser refreshes and returns userID's feed. Customers may only
// ask for their own; managers may inspect any. The UI never requests a
// foreign id, but the coordinator does not trust that.
func (c *Coordinator) ListForUser(ctx context.Context, identity *api.Identity, userID int) ([]api.Order, error) {
	if identity == nil {
		return nil, ErrNotYourOrders
	}
	if identity.ID != userID && identity.Role != api.RoleManager {
		return nil, ErrNotYourOrders
	}
	if err := c.RefreshForUser(ctx, userID); err != nil {
		return c.ForUser(userID), err
	}
	return c.ForUser(userID), nil
}

// MarkDelivered flips an order to delivered and re-syncs the global feed
// plus any cached customer feed. Delivered only ever goes false to true;
// repeating the call re-asserts the same state.
func (c *Coordinator) MarkDelivered(ctx context.Context, identity *api.Identity, orderID int) (api.Order, error) {
	if !access.CanMarkDelivered(identity) {
		return api.Order{}, ErrManagerOnly
	}
	updated, err := c.gw.SetDelivered(ctx, orderID, true)
	if err != nil {
		return api.Order{}, err
	}

	c.refreshGlobalIfLoaded(ctx)
	c.mu.RLock()
	mineID := c.mineUserID
	c.mu.RUnlock()
	if mineID != 0 {
		// A customer feed loaded earlier in this process may contain the
		// order; keep it honest too.
		if err := c.RefreshForUser(ctx, mineID); err != nil {
			c.log.WithError(err).Warn("user feed refresh after delivery failed")
		}
	}
	return updated, nil
}

// RefreshGlobal replaces the global feed snapshot wholesale. The prior
// snapshot survives a failed fetch.
func (c *Coordinator) RefreshGlobal(ctx context.Context) error {
	orders, err := c.gw.ListOrders(ctx)
	if err != nil {
		c.log.WithError(err).Warn("global feed refresh failed, keeping previous snapshot")
		return err
	}
	c.mu.Lock()
	c.global = orders
	c.globalLoaded = true
	c.mu.Unlock()
	return nil
}

// RefreshForUser replaces the per-user feed snapshot wholesale.
func (c *Coordinator) RefreshForUser(ctx context.Context, userID int) error {
	orders, err := c.gw.ListOrdersForUser(ctx, userID)
	if err != nil {
		c.log.WithError(err).Warn("user feed refresh failed, keeping previous snapshot")
		return err
	}
	c.mu.Lock()
	c.mine = orders
	c.mineUserID = userID
	c.mu.Unlock()
	return nil
}

// Global returns a copy of the cached global feed.
func (c *Coordinator) Global() []api.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Order, len(c.global))
	copy(out, c.global)
	return out
}

// ForUser returns a copy of the cached per-user feed, or nil when the
// cache belongs to a different user.
func (c *Coordinator) ForUser(userID int) []api.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mineUserID != userID {
		return nil
	}
	out := make([]api.Order, len(c.mine))
	copy(out, c.mine)
	return out
}

func (c *Coordinator) refreshGlobalIfLoaded(ctx context.Context) {
	c.mu.RLock()
	loaded := c.globalLoaded
	c.mu.RUnlock()
	if !loaded {
		return
	}
	if err := c.RefreshGlobal(ctx); err != nil {
		c.log.WithError(err).Warn("global feed refresh after write failed")
	}
}
