package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Order     key.Binding
	MyOrders  key.Binding
	AddItem   key.Binding
	OrderFeed key.Binding
	Refresh   key.Binding
	Back      key.Binding
	Mark      key.Binding
	UpDown    key.Binding
	Tab       key.Binding
	Enter     key.Binding
	Cancel    key.Binding
	SwitchTo  key.Binding
	Role      key.Binding
	SignOut   key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Order:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "place order")),
		MyOrders:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my orders")),
		AddItem:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		OrderFeed: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orders")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:      key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "home")),
		Mark:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark delivered")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		SwitchTo:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "login/register")),
		Role:      key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "role")),
		SignOut:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "sign out")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, "["+help.Key+"] "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
