package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskeats/internal/access"
	"github.com/jask/jaskeats/internal/api"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)

	case menuMsg:
		a.items = []api.FoodItem(m)
		if a.itemCursor >= len(a.items) {
			a.itemCursor = 0
		}
	case feedMsg:
		a.feed = []api.Order(m)
		if a.feedCursor >= len(a.feed) {
			a.feedCursor = 0
		}
	case myFeedMsg:
		a.myFeed = []api.Order(m)

	case loggedInMsg:
		ident := api.Identity(m)
		a.authInput = ""
		a.lastRegistered = nil
		a.status = fmt.Sprintf("signed in as %s (%s)", ident.Name, ident.Role)
		a.view = access.Resolve(&ident, a.view)
		if ident.Role == api.RoleCustomer {
			return a, tea.Batch(a.refreshMenuCmd(), a.loadMyFeedCmd())
		}
		return a, a.refreshMenuCmd()

	case registeredMsg:
		ident := api.Identity(m)
		a.lastRegistered = &ident
		a.authMode = authLogin
		a.authInput = strconv.Itoa(ident.ID)
		a.status = fmt.Sprintf("account created, id %d — press enter to sign in", ident.ID)

	case orderPlacedMsg:
		a.status = "Order placed!"
		a.ordering = false
		a.orderName = ""
		a.orderQty = "1"
		a.orderFocus = 0
		// The coordinator already re-synced its caches; mirror them.
		if ident := a.session.Current(); ident != nil {
			a.myFeed = a.orders.ForUser(ident.ID)
		}
		a.feed = a.orders.Global()

	case itemAddedMsg:
		a.status = fmt.Sprintf("added %s to the menu", api.FoodItem(m).Name)
		a.addName = ""
		a.addPrice = ""
		a.addFocus = 0
		a.items = a.catalog.Items()

	case deliveredMsg:
		a.status = fmt.Sprintf("order #%d marked delivered", api.Order(m).ID)
		a.feed = a.orders.Global()
		if ident := a.session.Current(); ident != nil {
			a.myFeed = a.orders.ForUser(ident.ID)
		}
		if a.feedCursor >= len(a.feed) {
			a.feedCursor = 0
		}

	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = friendly(m.error)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.session.Current() == nil {
		return a.handleAuthKey(m)
	}
	switch a.view {
	case access.ViewAddItem:
		return a.handleAddItemKey(m)
	case access.ViewOrders:
		return a.handleOrdersKey(m)
	case access.ViewMyOrders:
		return a.handleMyOrdersKey(m)
	default:
		return a.handleHomeKey(m)
	}
}

// handleAuthKey drives the landing screen shown while signed out. Letter
// keys feed the input buffer, so only control keys carry meaning here.
func (a *App) handleAuthKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyTab:
		if a.authMode == authLogin {
			a.authMode = authRegister
		} else {
			a.authMode = authLogin
		}
		a.authInput = ""
		a.status = ""
		return a, nil
	case tea.KeyLeft, tea.KeyRight:
		if a.authRole == api.RoleCustomer {
			a.authRole = api.RoleManager
		} else {
			a.authRole = api.RoleCustomer
		}
		return a, nil
	case tea.KeyEnter:
		input := strings.TrimSpace(a.authInput)
		if a.authMode == authRegister {
			return a, a.registerCmd(a.authRole, input)
		}
		return a, a.loginCmd(a.authRole, input)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.authInput) > 0 {
			a.authInput = a.authInput[:len(a.authInput)-1]
		}
	case tea.KeySpace:
		a.authInput += " "
	case tea.KeyRunes:
		a.authInput += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.ordering {
		return a.handleOrderFormKey(m)
	}
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "x":
		return a, a.signOut()
	case "r":
		a.status = "refreshing menu..."
		return a, a.refreshMenuCmd()
	case "o":
		// Customers get the order form, managers the order feed.
		if access.CanPlaceOrder(a.session.Current()) {
			if len(a.items) == 0 {
				a.status = "the menu is empty, nothing to order"
				return a, nil
			}
			a.ordering = true
			a.orderFocus = 0
			a.status = ""
			return a, nil
		}
		return a, a.navigate(access.ViewOrders)
	case "m":
		return a, a.navigate(access.ViewMyOrders)
	case "a":
		if access.CanManageMenu(a.session.Current()) {
			return a, a.navigate(access.ViewAddItem)
		}
		return a, nil
	}
	return a, nil
}

// handleOrderFormKey drives the inline place-order form. tab cycles
// fields, arrows pick the menu item, enter submits, esc abandons.
func (a *App) handleOrderFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.ordering = false
		a.status = ""
		return a, nil
	case tea.KeyTab:
		a.orderFocus = (a.orderFocus + 1) % 3
		return a, nil
	case tea.KeyUp:
		if a.orderFocus == 1 && a.itemCursor > 0 {
			a.itemCursor--
		}
		return a, nil
	case tea.KeyDown:
		if a.orderFocus == 1 && a.itemCursor < len(a.items)-1 {
			a.itemCursor++
		}
		return a, nil
	case tea.KeyEnter:
		if len(a.items) == 0 {
			a.status = "the menu is empty, nothing to order"
			return a, nil
		}
		item := a.items[a.itemCursor].Name
		return a, a.placeOrderCmd(a.orderName, item, a.orderQty)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		switch a.orderFocus {
		case 0:
			if len(a.orderName) > 0 {
				a.orderName = a.orderName[:len(a.orderName)-1]
			}
		case 2:
			if len(a.orderQty) > 0 {
				a.orderQty = a.orderQty[:len(a.orderQty)-1]
			}
		}
	case tea.KeySpace:
		if a.orderFocus == 0 {
			a.orderName += " "
		}
	case tea.KeyRunes:
		switch a.orderFocus {
		case 0:
			a.orderName += string(m.Runes)
		case 2:
			a.orderQty += string(m.Runes)
		}
	}
	return a, nil
}

func (a *App) handleAddItemKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		return a, a.navigate(access.ViewHome)
	case tea.KeyTab:
		a.addFocus = (a.addFocus + 1) % 2
		return a, nil
	case tea.KeyEnter:
		return a, a.addItemCmd(a.addName, a.addPrice)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if a.addFocus == 0 && len(a.addName) > 0 {
			a.addName = a.addName[:len(a.addName)-1]
		}
		if a.addFocus == 1 && len(a.addPrice) > 0 {
			a.addPrice = a.addPrice[:len(a.addPrice)-1]
		}
	case tea.KeySpace:
		if a.addFocus == 0 {
			a.addName += " "
		}
	case tea.KeyRunes:
		if a.addFocus == 0 {
			a.addName += string(m.Runes)
		} else {
			a.addPrice += string(m.Runes)
		}
	}
	return a, nil
}

func (a *App) handleOrdersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "x":
		return a, a.signOut()
	case "h", "esc":
		return a, a.navigate(access.ViewHome)
	case "r":
		a.status = "refreshing orders..."
		return a, a.loadFeedCmd()
	case "up", "k":
		if a.feedCursor > 0 {
			a.feedCursor--
		}
	case "down", "j":
		if a.feedCursor < len(a.feed)-1 {
			a.feedCursor++
		}
	case "enter":
		if len(a.feed) == 0 {
			return a, nil
		}
		o := a.feed[a.feedCursor]
		if o.Delivered {
			a.status = fmt.Sprintf("order #%d is already delivered", o.ID)
			return a, nil
		}
		a.status = fmt.Sprintf("marking order #%d delivered...", o.ID)
		return a, a.markDeliveredCmd(o.ID)
	}
	return a, nil
}

func (a *App) handleMyOrdersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "x":
		return a, a.signOut()
	case "h", "esc":
		return a, a.navigate(access.ViewHome)
	case "r":
		a.status = "refreshing your orders..."
		return a, a.loadMyFeedCmd()
	}
	return a, nil
}

// signOut clears the session and forces the view back through the
// access table, which lands on home for a signed-out identity.
func (a *App) signOut() tea.Cmd {
	a.session.Logout()
	a.view = access.Resolve(nil, a.view)
	a.ordering = false
	a.feed = nil
	a.myFeed = nil
	a.status = "signed out"
	return nil
}

// friendly renders an error for the status line. A transport failure
// reads differently from a rejection, which reads differently from bad
// local input.
func friendly(err error) string {
	switch {
	case api.IsTransport(err):
		return "could not reach the server (" + err.Error() + ")"
	case api.IsRemoteRejected(err):
		return "the server refused that: " + err.Error()
	default:
		return err.Error()
	}
}
