package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client talks to the ordering service's HTTP JSON API. It owns no state
// beyond the connection pool; callers decide what to cache and when to
// retry. Requests carry no timeout of their own, only the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// ListItems fetches the full menu.
func (c *Client) ListItems(ctx context.Context) ([]FoodItem, error) {
	var items []FoodItem
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem adds a menu item and returns the stored row with its
// remote-assigned id.
func (c *Client) CreateItem(ctx context.Context, name string, price float64) (FoodItem, error) {
	var item FoodItem
	body := map[string]any{"name": name, "price": price}
	if err := c.do(ctx, http.MethodPost, "/items", body, &item); err != nil {
		return FoodItem{}, err
	}
	return item, nil
}

// ListOrders fetches the global order feed in the order the service
// returns it.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersForUser fetches orders owned by userID.
func (c *Client) ListOrdersForUser(ctx context.Context, userID int) ([]Order, error) {
	var orders []Order
	path := fmt.Sprintf("/users/%d/orders", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PlaceOrder creates an order; the service returns it with delivered=false.
func (c *Client) PlaceOrder(ctx context.Context, customerName, itemName string, quantity, userID int) (Order, error) {
	var order Order
	body := map[string]any{
		"customerName": customerName,
		"itemName":     itemName,
		"quantity":     quantity,
		"userId":       userID,
	}
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// SetDelivered updates an order's delivered flag and returns the stored row.
func (c *Client) SetDelivered(ctx context.Context, orderID int, delivered bool) (Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d/delivered", orderID)
	body := map[string]any{"delivered": delivered}
	if err := c.do(ctx, http.MethodPatch, path, body, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// Login exchanges an id/role pair for the matching account. The service
// rejects the call when no account matches both.
func (c *Client) Login(ctx context.Context, id int, role Role) (Identity, error) {
	var ident Identity
	body := map[string]any{"id": id, "role": role}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &ident); err != nil {
		return Identity{}, err
	}
	return ident, nil
}

// Register creates an account and returns it with the assigned id.
func (c *Client) Register(ctx context.Context, name string, role Role) (Identity, error) {
	var ident Identity
	body := map[string]any{"name": name, "role": role}
	if err := c.do(ctx, http.MethodPost, "/users", body, &ident); err != nil {
		return Identity{}, err
	}
	return ident, nil
}

// do runs one JSON exchange. Non-2xx responses become RemoteRejected;
// anything that keeps a response from being decoded becomes TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	reqID := uuid.NewString()
	entry := c.log.WithField("op", op).WithField("request_id", reqID)

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := readMessage(resp.Body)
		entry.WithField("status", resp.StatusCode).Warn("request rejected")
		return &RemoteRejected{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			entry.WithError(err).Warn("bad response body")
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	entry.WithField("status", resp.StatusCode).Debug("request ok")
	return nil
}

// readMessage extracts a human-readable message from an error response.
// Services in the wild answer with {"error": ...}, {"message": ...}, or
// plain text; take whatever is there.
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var wire struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &wire) == nil {
		if wire.Error != "" {
			return wire.Error
		}
		if wire.Message != "" {
			return wire.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
