package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vidtube/client/internal/client/api"
	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/store"
)

// Auth defines the authentication operations. Login and Register write the
// returned token and user through to the persisted session store before
// returning; Logout clears the store without a server round-trip.
type Auth interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Logout(ctx context.Context) error

	// CurrentUser reads the cached user record, discarding it if corrupt.
	CurrentUser(ctx context.Context) (*models.User, error)

	// IsAuthenticated is a pure presence check on the stored token.
	IsAuthenticated(ctx context.Context) (bool, error)

	// RefreshUserData fetches /users/me and writes the result through.
	RefreshUserData(ctx context.Context) (*models.User, error)
}

// RegisterRequest carries the sign-up payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// Credentials carries the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	Token string
	User  *models.User
}

// ErrMissingToken indicates an auth response that carried no token.
var ErrMissingToken = errors.New("auth response missing token")

type authService struct {
	api   *api.Client
	store store.Store
}

// NewAuthService constructs an Auth bound to the given adapter and store.
func NewAuthService(c *api.Client, s store.Store) Auth {
	return &authService{api: c, store: s}
}

func (a *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	return a.authenticate(ctx, "/auth/register", req)
}

func (a *authService) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	return a.authenticate(ctx, "/auth/login", creds)
}

func (a *authService) authenticate(ctx context.Context, path string, payload any) (*AuthResult, error) {
	var raw json.RawMessage
	if err := a.api.Post(ctx, path, payload, &raw); err != nil {
		return nil, err
	}

	res, err := decodeAuthResponse(raw)
	if err != nil {
		return nil, err
	}

	if err := a.store.SaveSession(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return res, nil
}

// decodeAuthResponse tolerates the backend's two response shapes: a nested
// user object ({token, user}) or user fields at the response root alongside
// the token ({token, ...userFields}). The nested shape wins when present.
func decodeAuthResponse(raw json.RawMessage) (*AuthResult, error) {
	var envelope struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	if envelope.Token == "" {
		return nil, ErrMissingToken
	}

	var user models.User
	if len(envelope.User) > 0 && !bytes.Equal(envelope.User, []byte("null")) {
		if err := json.Unmarshal(envelope.User, &user); err != nil {
			return nil, fmt.Errorf("decoding nested user: %w", err)
		}
	} else {
		// flat shape: user fields live at the root; the token key is
		// simply not a User field and falls away
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("decoding flat user: %w", err)
		}
	}

	return &AuthResult{Token: envelope.Token, User: &user}, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.ClearSession(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := a.store.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

func (a *authService) RefreshUserData(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.api.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}

	data, err := json.Marshal(&user)
	if err != nil {
		return nil, fmt.Errorf("serializing user: %w", err)
	}
	if err := a.store.Set(ctx, store.KeyUser, data); err != nil {
		return nil, fmt.Errorf("persisting refreshed user: %w", err)
	}
	return &user, nil
}
