package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientListItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/items", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode([]FoodItem{{ID: 1, Name: "Burger", Price: 9.5}})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Burger", items[0].Name)
	require.InDelta(t, 9.5, items[0].Price, 0.001)
}

func TestClientPlaceOrderBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			CustomerName string `json:"customerName"`
			ItemName     string `json:"itemName"`
			Quantity     int    `json:"quantity"`
			UserID       int    `json:"userId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Ann", body.CustomerName)
		require.Equal(t, "Burger", body.ItemName)
		require.Equal(t, 2, body.Quantity)
		require.Equal(t, 7, body.UserID)

		_ = json.NewEncoder(w).Encode(Order{ID: 31, CustomerName: "Ann", ItemName: "Burger", Quantity: 2, UserID: 7})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	order, err := c.PlaceOrder(context.Background(), "Ann", "Burger", 2, 7)
	require.NoError(t, err)
	require.Equal(t, 31, order.ID)
	require.False(t, order.Delivered)
}

func TestClientSetDeliveredPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/31/delivered", r.URL.Path)
		var body struct {
			Delivered bool `json:"delivered"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.True(t, body.Delivered)
		_ = json.NewEncoder(w).Encode(Order{ID: 31, Delivered: true})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	order, err := c.SetDelivered(context.Background(), 31, true)
	require.NoError(t, err)
	require.True(t, order.Delivered)
}

func TestClientLoginSendsIDAndRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		var body struct {
			ID   int  `json:"id"`
			Role Role `json:"role"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, 7, body.ID)
		require.Equal(t, RoleCustomer, body.Role)
		_ = json.NewEncoder(w).Encode(Identity{ID: 7, Name: "Ann", Role: RoleCustomer})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	ident, err := c.Login(context.Background(), 7, RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, Identity{ID: 7, Name: "Ann", Role: RoleCustomer}, ident)
}

func TestClientRejectionBecomesRemoteRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown account"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	_, err := c.Login(context.Background(), 99, RoleManager)
	require.Error(t, err)
	require.True(t, IsRemoteRejected(err))
	require.False(t, IsTransport(err))

	var rr *RemoteRejected
	require.ErrorAs(t, err, &rr)
	require.Equal(t, http.StatusUnauthorized, rr.Status)
	require.Equal(t, "unknown account", rr.Message)
}

func TestClientNetworkFailureBecomesTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := NewClient(srv.URL, nil)
	_, err := c.ListItems(context.Background())
	require.Error(t, err)
	require.True(t, IsTransport(err))
	require.False(t, IsRemoteRejected(err))
}

func TestClientGarbageBodyBecomesTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	_, err := c.ListItems(context.Background())
	require.Error(t, err)
	require.True(t, IsTransport(err))
}

func TestReadMessageFallsBackToPlainText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("kitchen on fire"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	_, err := c.ListOrders(context.Background())
	var rr *RemoteRejected
	require.ErrorAs(t, err, &rr)
	require.Equal(t, "kitchen on fire", rr.Message)
}
