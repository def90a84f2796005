package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskeats/internal/access"
	"github.com/jask/jaskeats/internal/api"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func (a *App) View() string {
	ident := a.session.Current()
	var body string
	if ident == nil {
		body = a.renderAuth()
	} else {
		switch a.view {
		case access.ViewAddItem:
			body = a.renderAddItem()
		case access.ViewOrders:
			body = a.renderOrders()
		case access.ViewMyOrders:
			body = a.renderMyOrders()
		default:
			body = a.renderHome(ident)
		}
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	return body
}

func (a *App) renderAuth() string {
	title := titleStyle.Render("JaskEats")
	mode := "Sign in"
	prompt := "Account id"
	if a.authMode == authRegister {
		mode = "Register"
		prompt = "Name"
	}
	out := title + "\n" + "Delicious meals, right to your door.\n\n"
	out += fmt.Sprintf("%s as %s\n", mode, roleLabel(a.authRole))
	out += fmt.Sprintf("%s: %s_\n", prompt, a.authInput)
	if a.lastRegistered != nil {
		out += mutedStyle.Render(fmt.Sprintf("New account id: %d", a.lastRegistered.ID)) + "\n"
	}
	out += "\n" + renderHelp([]key.Binding{a.keys.SwitchTo, a.keys.Role, a.keys.Enter, a.keys.Quit})
	return out
}

func (a *App) renderHome(ident *api.Identity) string {
	title := titleStyle.Render("Fresh Picks")
	out := title + "\n"
	out += mutedStyle.Render(fmt.Sprintf("Signed in as %s (%s)", ident.Name, roleLabel(ident.Role))) + "\n\n"
	out += a.renderMenu(a.ordering)

	if a.ordering {
		out += "\n" + a.renderOrderForm()
		return out
	}

	var help []key.Binding
	if access.CanPlaceOrder(ident) {
		help = []key.Binding{a.keys.Order, a.keys.MyOrders, a.keys.Refresh, a.keys.SignOut, a.keys.Quit}
	} else {
		help = []key.Binding{a.keys.AddItem, a.keys.OrderFeed, a.keys.Refresh, a.keys.SignOut, a.keys.Quit}
	}
	out += "\n" + renderHelp(help)
	return out
}

// renderMenu lists the catalog snapshot. With the order form open the
// cursor marks the item about to be ordered.
func (a *App) renderMenu(withCursor bool) string {
	if len(a.items) == 0 {
		return mutedStyle.Render("The menu is empty.") + "\n"
	}
	out := ""
	for i, item := range a.items {
		marker := "  "
		if withCursor && i == a.itemCursor {
			marker = "▶ "
		}
		out += fmt.Sprintf("%s%-30s %s%.2f\n", marker, item.Name, a.currency, item.Price)
	}
	return out
}

func (a *App) renderOrderForm() string {
	out := titleStyle.Render("Place Order") + "\n"
	out += a.formField("Customer name", a.orderName, a.orderFocus == 0)
	itemName := ""
	if a.itemCursor < len(a.items) {
		itemName = a.items[a.itemCursor].Name
	}
	out += a.formField("Food item (↑/↓)", itemName, a.orderFocus == 1)
	out += a.formField("Quantity", a.orderQty, a.orderFocus == 2)
	out += "\n" + renderHelp([]key.Binding{a.keys.Tab, a.keys.UpDown, a.keys.Enter, a.keys.Cancel})
	return out
}

func (a *App) renderAddItem() string {
	out := titleStyle.Render("Add Food Item") + "\n"
	out += mutedStyle.Render("Keep the menu fresh for customers.") + "\n\n"
	out += a.formField("Name", a.addName, a.addFocus == 0)
	out += a.formField("Price", a.addPrice, a.addFocus == 1)
	out += "\n" + titleStyle.Render("Current Menu") + "\n"
	out += a.renderMenu(false)
	out += "\n" + renderHelp([]key.Binding{a.keys.Tab, a.keys.Enter, a.keys.Cancel})
	return out
}

func (a *App) renderOrders() string {
	out := titleStyle.Render("Recent Orders") + "\n"
	out += mutedStyle.Render("Live feed of customer requests.") + "\n\n"
	if len(a.feed) == 0 {
		out += mutedStyle.Render("No orders yet.") + "\n"
	}
	for i, o := range a.feed {
		marker := "  "
		if i == a.feedCursor {
			marker = "▶ "
		}
		out += fmt.Sprintf("%s#%-4d %-20s %d × %-20s %s\n", marker, o.ID, o.CustomerName, o.Quantity, o.ItemName, deliveredLabel(o.Delivered))
	}
	out += "\n" + renderHelp([]key.Binding{a.keys.UpDown, a.keys.Mark, a.keys.Refresh, a.keys.Back, a.keys.SignOut, a.keys.Quit})
	return out
}

func (a *App) renderMyOrders() string {
	out := titleStyle.Render("My Orders") + "\n\n"
	if len(a.myFeed) == 0 {
		out += mutedStyle.Render("No orders yet.") + "\n"
	}
	for _, o := range a.myFeed {
		out += fmt.Sprintf("  #%-4d %d × %-20s %s\n", o.ID, o.Quantity, o.ItemName, deliveredLabel(o.Delivered))
	}
	out += "\n" + renderHelp([]key.Binding{a.keys.Refresh, a.keys.Back, a.keys.SignOut, a.keys.Quit})
	return out
}

func (a *App) formField(label, value string, focused bool) string {
	line := fmt.Sprintf("%-18s %s", label+":", value)
	if focused {
		return focusStyle.Render(line+"_") + "\n"
	}
	return line + "\n"
}

func roleLabel(r api.Role) string {
	if r == api.RoleManager {
		return "manager"
	}
	return "customer"
}

func deliveredLabel(delivered bool) string {
	if delivered {
		return "delivered"
	}
	return "pending"
}
