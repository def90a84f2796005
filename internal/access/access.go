// Package access is the single source of truth for which views and
// actions a signed-in identity may use. Everything here is a pure
// function of the identity; the TUI re-resolves on every identity change
// so a logout can never leave a now-forbidden screen on display.
package access

import "github.com/jask/jaskeats/internal/api"

// View names a screen the client can show.
type View string

const (
	ViewHome     View = "home"
	ViewAddItem  View = "addItem"
	ViewOrders   View = "orders"
	ViewMyOrders View = "myOrders"
)

// capabilities maps each role to the views it may open. Signed-out
// sessions get only the home view, which renders the auth landing screen.
var capabilities = map[api.Role][]View{
	api.RoleCustomer: {ViewHome, ViewMyOrders},
	api.RoleManager:  {ViewHome, ViewAddItem, ViewOrders},
}

// AllowedViews returns the views identity may open. A nil identity means
// signed out.
func AllowedViews(identity *api.Identity) []View {
	if identity == nil {
		return []View{ViewHome}
	}
	views, ok := capabilities[identity.Role]
	if !ok {
		return []View{ViewHome}
	}
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// Resolve arbitrates a view request: the requested view if the identity
// is allowed to open it, home otherwise. Total over every
// (identity, view) pair, including views that do not exist.
func Resolve(identity *api.Identity, requested View) View {
	for _, v := range AllowedViews(identity) {
		if v == requested {
			return requested
		}
	}
	return ViewHome
}

// CanPlaceOrder reports whether the order form is live for identity.
func CanPlaceOrder(identity *api.Identity) bool {
	return identity != nil && identity.Role == api.RoleCustomer
}

// CanManageMenu reports whether add-item controls render for identity.
func CanManageMenu(identity *api.Identity) bool {
	return identity != nil && identity.Role == api.RoleManager
}

// CanMarkDelivered reports whether delivery controls render for identity.
func CanMarkDelivered(identity *api.Identity) bool {
	return identity != nil && identity.Role == api.RoleManager
}
