package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskeats/internal/api"
)

// fakeMenu is a minimal stand-in for the item endpoints.
type fakeMenu struct {
	mu       sync.Mutex
	items    []api.FoodItem
	nextID   int
	failGets bool
	gets     int
	posts    int
}

func newFakeMenu(items ...api.FoodItem) *fakeMenu {
	return &fakeMenu{items: items, nextID: len(items) + 1}
}

func (f *fakeMenu) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.gets++
		if f.failGets {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(f.items)
	})
	mux.HandleFunc("POST /items", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.posts++
		var body struct {
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		item := api.FoodItem{ID: f.nextID, Name: body.Name, Price: body.Price}
		f.nextID++
		f.items = append(f.items, item)
		_ = json.NewEncoder(w).Encode(item)
	})
	return mux
}

func (f *fakeMenu) requests() (gets, posts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, f.posts
}

func newCatalog(t *testing.T, f *fakeMenu) *Catalog {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return New(api.NewClient(srv.URL, nil), nil)
}

var manager = &api.Identity{ID: 3, Name: "Bea", Role: api.RoleManager}

func TestRefreshReplacesSnapshot(t *testing.T) {
	t.Parallel()

	f := newFakeMenu(api.FoodItem{ID: 1, Name: "Burger", Price: 9.5})
	c := newCatalog(t, f)
	require.Empty(t, c.Items())

	require.NoError(t, c.Refresh(context.Background()))
	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Burger", items[0].Name)
	require.True(t, c.Has("Burger"))
	require.False(t, c.Has("Soda"))
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	f := newFakeMenu(api.FoodItem{ID: 1, Name: "Burger", Price: 9.5})
	c := newCatalog(t, f)
	require.NoError(t, c.Refresh(context.Background()))

	f.mu.Lock()
	f.failGets = true
	f.mu.Unlock()

	err := c.Refresh(context.Background())
	require.Error(t, err)
	require.True(t, api.IsRemoteRejected(err))

	items := c.Items()
	require.Len(t, items, 1, "prior snapshot must survive a failed refresh")
	require.Equal(t, "Burger", items[0].Name)
}

func TestAddItemRejectsNonManagersWithoutNetworkCall(t *testing.T) {
	t.Parallel()

	f := newFakeMenu(api.FoodItem{ID: 1, Name: "Burger", Price: 9.5})
	c := newCatalog(t, f)
	require.NoError(t, c.Refresh(context.Background()))
	getsBefore, _ := f.requests()

	customer := &api.Identity{ID: 7, Name: "Ann", Role: api.RoleCustomer}
	_, err := c.AddItem(context.Background(), customer, "Soda", "1.50")
	require.ErrorIs(t, err, ErrManagerOnly)

	_, err = c.AddItem(context.Background(), nil, "Soda", "1.50")
	require.ErrorIs(t, err, ErrManagerOnly)

	gets, posts := f.requests()
	require.Zero(t, posts, "no create may be issued")
	require.Equal(t, getsBefore, gets, "no refresh may be issued")
	require.False(t, c.Has("Soda"))
}

func TestAddItemValidatesLocally(t *testing.T) {
	t.Parallel()

	f := newFakeMenu()
	c := newCatalog(t, f)

	_, err := c.AddItem(context.Background(), manager, "   ", "1.50")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = c.AddItem(context.Background(), manager, "Soda", "cheap")
	require.ErrorIs(t, err, ErrBadPrice)

	_, err = c.AddItem(context.Background(), manager, "Soda", "-1")
	require.ErrorIs(t, err, ErrBadPrice)

	_, posts := f.requests()
	require.Zero(t, posts)
}

func TestAddItemCreatesThenRefreshes(t *testing.T) {
	t.Parallel()

	f := newFakeMenu(api.FoodItem{ID: 1, Name: "Burger", Price: 9.5})
	c := newCatalog(t, f)
	require.NoError(t, c.Refresh(context.Background()))

	item, err := c.AddItem(context.Background(), manager, "Soda", "1.50")
	require.NoError(t, err)
	require.Equal(t, "Soda", item.Name)
	require.NotZero(t, item.ID)

	// Visible via the follow-up refresh, not a local splice.
	require.True(t, c.Has("Soda"))
	gets, posts := f.requests()
	require.Equal(t, 1, posts)
	require.Equal(t, 2, gets, "one initial refresh plus one after create")

	// Free item: zero is a valid price.
	_, err = c.AddItem(context.Background(), manager, "Tap Water", "0")
	require.NoError(t, err)
	require.True(t, c.Has("Tap Water"))
}

func TestNearestSuggestsCloseMatches(t *testing.T) {
	t.Parallel()

	f := newFakeMenu(
		api.FoodItem{ID: 1, Name: "Burger", Price: 9.5},
		api.FoodItem{ID: 2, Name: "Pizza", Price: 12},
	)
	c := newCatalog(t, f)
	require.NoError(t, c.Refresh(context.Background()))

	got, ok := c.Nearest("burgr")
	require.True(t, ok)
	require.Equal(t, "Burger", got)

	_, ok = c.Nearest("spaghetti carbonara")
	require.False(t, ok, "nothing plausibly close")
}
