package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/jaskeats/internal/access"
	"github.com/jask/jaskeats/internal/api"
	"github.com/jask/jaskeats/internal/catalog"
	"github.com/jask/jaskeats/internal/config"
	"github.com/jask/jaskeats/internal/order"
	"github.com/jask/jaskeats/internal/session"
)

// App ties the session, catalog and order coordinator to the screen. It
// renders only what access.Resolve allows for the current identity and
// mirrors the service caches into fields the View methods read.
type App struct {
	ctx      context.Context
	cfg      config.Config
	session  *session.Manager
	catalog  *catalog.Catalog
	orders   *order.Coordinator
	log      *logrus.Logger
	keys     keyMap
	currency string

	view   access.View
	status string

	// snapshots mirrored from the service caches
	items  []api.FoodItem
	feed   []api.Order
	myFeed []api.Order

	// auth landing
	authMode       authMode
	authRole       api.Role
	authInput      string
	lastRegistered *api.Identity

	// order form (customer home)
	ordering   bool
	orderFocus int // 0 name, 1 item, 2 quantity
	orderName  string
	itemCursor int
	orderQty   string

	// add-item form (manager)
	addFocus int // 0 name, 1 price
	addName  string
	addPrice string

	// global feed cursor (manager orders view)
	feedCursor int
}

type authMode string

const (
	authLogin    authMode = "login"
	authRegister authMode = "register"
)

func New(ctx context.Context, cfg config.Config, sess *session.Manager, cat *catalog.Catalog, coord *order.Coordinator, log *logrus.Logger) *App {
	if log == nil {
		log = logrus.New()
	}
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		session:  sess,
		catalog:  cat,
		orders:   coord,
		log:      log,
		keys:     newKeyMap(),
		currency: cfg.UI.CurrencySymbol,
		view:     access.ViewHome,
		authMode: authLogin,
		authRole: api.RoleCustomer,
		orderQty: "1",
	}
}

func (a *App) Init() tea.Cmd {
	// The menu loads once at startup; everything else is on demand.
	return a.refreshMenuCmd()
}

// messages
type menuMsg []api.FoodItem

type feedMsg []api.Order

type myFeedMsg []api.Order

type loggedInMsg api.Identity

type registeredMsg api.Identity

type orderPlacedMsg api.Order

type itemAddedMsg api.FoodItem

type deliveredMsg api.Order

type statusMsg string

type errMsg struct{ error }

// commands
func (a *App) refreshMenuCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.catalog.Refresh(a.ctx); err != nil {
			return errMsg{err}
		}
		return menuMsg(a.catalog.Items())
	}
}

func (a *App) loadFeedCmd() tea.Cmd {
	ident := a.session.Current()
	return func() tea.Msg {
		orders, err := a.orders.ListForManager(a.ctx, ident)
		if err != nil {
			return errMsg{err}
		}
		return feedMsg(orders)
	}
}

func (a *App) loadMyFeedCmd() tea.Cmd {
	ident := a.session.Current()
	return func() tea.Msg {
		if ident == nil {
			return errMsg{order.ErrNotYourOrders}
		}
		orders, err := a.orders.ListForUser(a.ctx, ident, ident.ID)
		if err != nil {
			return errMsg{err}
		}
		return myFeedMsg(orders)
	}
}

func (a *App) loginCmd(role api.Role, rawID string) tea.Cmd {
	return func() tea.Msg {
		ident, err := a.session.Login(a.ctx, role, rawID)
		if err != nil {
			return errMsg{err}
		}
		return loggedInMsg(ident)
	}
}

func (a *App) registerCmd(role api.Role, rawName string) tea.Cmd {
	return func() tea.Msg {
		ident, err := a.session.Register(a.ctx, role, rawName)
		if err != nil {
			return errMsg{err}
		}
		return registeredMsg(ident)
	}
}

func (a *App) placeOrderCmd(name, item, qty string) tea.Cmd {
	ident := a.session.Current()
	return func() tea.Msg {
		placed, err := a.orders.PlaceOrder(a.ctx, ident, name, item, qty)
		if err != nil {
			return errMsg{err}
		}
		return orderPlacedMsg(placed)
	}
}

func (a *App) addItemCmd(name, price string) tea.Cmd {
	ident := a.session.Current()
	return func() tea.Msg {
		item, err := a.catalog.AddItem(a.ctx, ident, name, price)
		if err != nil {
			return errMsg{err}
		}
		return itemAddedMsg(item)
	}
}

func (a *App) markDeliveredCmd(orderID int) tea.Cmd {
	ident := a.session.Current()
	return func() tea.Msg {
		updated, err := a.orders.MarkDelivered(a.ctx, ident, orderID)
		if err != nil {
			return errMsg{err}
		}
		return deliveredMsg(updated)
	}
}

// navigate re-arbitrates the requested view for the current identity and
// returns whatever load the landing view needs.
func (a *App) navigate(requested access.View) tea.Cmd {
	a.view = access.Resolve(a.session.Current(), requested)
	switch a.view {
	case access.ViewOrders:
		return a.loadFeedCmd()
	case access.ViewMyOrders:
		return a.loadMyFeedCmd()
	default:
		return nil
	}
}
