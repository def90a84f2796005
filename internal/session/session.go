// Package session owns the current signed-in identity. At most one
// identity is held at a time; registration never signs the new account
// in, and logout is local only.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jask/jaskeats/internal/api"
)

var (
	// ErrEmptyID is returned when the login form submits a blank id.
	ErrEmptyID = errors.New("enter your account id")
	// ErrEmptyName is returned when the register form submits a blank name.
	ErrEmptyName = errors.New("enter a name")
	// ErrInvalidCredentials is returned when no account matches the
	// submitted id/role pair.
	ErrInvalidCredentials = errors.New("no account matches that id and role")
)

// Manager holds the current identity and runs the sign-in flows against
// the remote user directory.
type Manager struct {
	gw *api.Client

	mu      sync.RWMutex
	current *api.Identity
}

func NewManager(gw *api.Client) *Manager {
	return &Manager{gw: gw}
}

// Login resolves rawID against the remote directory and, on success,
// makes the returned identity current. Blank input and unparsable ids
// never reach the network. Transport failures pass through unchanged so
// the caller can report them apart from bad credentials.
func (m *Manager) Login(ctx context.Context, role api.Role, rawID string) (api.Identity, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return api.Identity{}, ErrEmptyID
	}
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		// No account can match a non-positive or non-numeric id.
		return api.Identity{}, ErrInvalidCredentials
	}

	ident, err := m.gw.Login(ctx, id, role)
	if err != nil {
		if api.IsRemoteRejected(err) {
			return api.Identity{}, fmt.Errorf("%w (id %d, role %s)", ErrInvalidCredentials, id, role)
		}
		return api.Identity{}, err
	}

	m.mu.Lock()
	m.current = &ident
	m.mu.Unlock()
	return ident, nil
}

// Register creates an account with the given name and role and returns
// it. The new identity is NOT made current: the assigned id must be used
// to log in separately.
func (m *Manager) Register(ctx context.Context, role api.Role, rawName string) (api.Identity, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return api.Identity{}, ErrEmptyName
	}
	ident, err := m.gw.Register(ctx, name, role)
	if err != nil {
		return api.Identity{}, fmt.Errorf("register: %w", err)
	}
	return ident, nil
}

// Logout discards the current identity. No remote call; safe to repeat.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// Current returns the signed-in identity, or nil when signed out. The
// returned value is a copy; mutating it does not affect the session.
func (m *Manager) Current() *api.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	ident := *m.current
	return &ident
}
