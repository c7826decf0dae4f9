// Package session owns the in-memory session state: the current user, the
// authenticated flag, and the loading flag, derived from the persisted
// session store at startup and mutated only by login, register, logout, and
// profile-update operations. The controller is constructed explicitly and
// handed to page controllers; nothing reaches it through ambient lookup.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/client/store"
	"github.com/vidtube/client/internal/common"
	"github.com/vidtube/client/internal/logging"
)

// State is the session lifecycle state.
type State int

const (
	StateUnknown State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// UserPatch is a partial user update. Nil fields are left untouched by the
// merge; applying the same patch twice yields the same result as once.
type UserPatch struct {
	Username           *string
	FullName           *string
	ChannelDescription *string
	ProfilePictureURL  *string
	SubscriberCount    *int64
}

// Controller is the session state machine. Concurrent reads are safe;
// mutating operations are serialized internally.
type Controller struct {
	mu    sync.RWMutex
	auth  services.Auth
	store store.Store
	log   logging.Logger

	state State
	user  *models.User
}

// NewController builds a Controller and performs the initial transition:
// Loading, then Authenticated(user) if the store holds both a token and a
// user with a valid id, else Anonymous.
func NewController(ctx context.Context, auth services.Auth, st store.Store, log logging.Logger) *Controller {
	c := &Controller{auth: auth, store: st, log: log, state: StateLoading}
	c.restore(ctx)
	return c
}

func (c *Controller) restore(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, err := c.store.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "session restore failed, starting anonymous", "error", err)
		c.state = StateAnonymous
		return
	}

	user, err := c.store.User(ctx)
	if err != nil {
		c.log.Warn(ctx, "session restore failed, starting anonymous", "error", err)
		c.state = StateAnonymous
		return
	}

	if token != "" && user.Valid() {
		c.state = StateAuthenticated
		c.user = user
		c.log.Info(ctx, "session restored", "user_id", user.ID)
		return
	}
	c.state = StateAnonymous
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// User returns a copy of the current user, or nil when anonymous.
func (c *Controller) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// Loading reports whether the initial restore is still in progress.
func (c *Controller) Loading() bool {
	return c.State() == StateLoading
}

// Login authenticates against the backend. On failure the prior state is
// kept and the error propagated; there is no automatic retry.
func (c *Controller) Login(ctx context.Context, creds services.Credentials) (*models.User, error) {
	res, err := c.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	c.setAuthenticated(res.User)
	return c.User(), nil
}

// Register creates an account and, like Login, transitions to Authenticated
// on success only.
func (c *Controller) Register(ctx context.Context, req services.RegisterRequest) (*models.User, error) {
	res, err := c.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	c.setAuthenticated(res.User)
	return c.User(), nil
}

func (c *Controller) setAuthenticated(user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAuthenticated
	c.user = user
}

// Logout clears the persisted store and transitions to Anonymous. The
// transition happens even if clearing fails; no server round-trip is needed.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.auth.Logout(ctx)

	c.mu.Lock()
	c.state = StateAnonymous
	c.user = nil
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}
	return nil
}

// UpdateUser merges patch into the current user and writes the result
// through to the store. It does not re-validate against the server; the
// caller is expected to have confirmed the update server-side already.
func (c *Controller) UpdateUser(ctx context.Context, patch UserPatch) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.user == nil {
		return nil, common.ErrNotAuthenticated
	}

	merged := *c.user
	if patch.Username != nil {
		merged.Username = *patch.Username
	}
	if patch.FullName != nil {
		merged.FullName = *patch.FullName
	}
	if patch.ChannelDescription != nil {
		merged.ChannelDescription = *patch.ChannelDescription
	}
	if patch.ProfilePictureURL != nil {
		merged.ProfilePictureURL = *patch.ProfilePictureURL
	}
	if patch.SubscriberCount != nil {
		merged.SubscriberCount = *patch.SubscriberCount
	}

	data, err := json.Marshal(&merged)
	if err != nil {
		return nil, fmt.Errorf("serializing user: %w", err)
	}
	if err := c.store.Set(ctx, store.KeyUser, data); err != nil {
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	c.user = &merged
	out := merged
	return &out, nil
}
