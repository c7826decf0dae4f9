package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vidtube/client/internal/client/api"
)

// Subscriptions exposes the per-channel subscription relationship: a boolean
// fact, retrievable per channel and mutated via a server-side toggle. No
// subscription list is cached between pages; each page re-queries.
type Subscriptions interface {
	Toggle(ctx context.Context, channelID int64) error
	Status(ctx context.Context, channelID int64) (bool, error)
}

type subscriptionService struct {
	api *api.Client
}

func NewSubscriptionService(c *api.Client) Subscriptions {
	return &subscriptionService{api: c}
}

func (s *subscriptionService) Toggle(ctx context.Context, channelID int64) error {
	return s.api.Post(ctx, fmt.Sprintf("/users/%d/subscribe", channelID), nil, nil)
}

// subscriptionStatus decodes both a bare bool and a {"subscribed": bool}
// wrapper.
type subscriptionStatus bool

func (s *subscriptionStatus) UnmarshalJSON(data []byte) error {
	var bare bool
	if err := json.Unmarshal(data, &bare); err == nil {
		*s = subscriptionStatus(bare)
		return nil
	}
	var wrapped struct {
		Subscribed bool `json:"subscribed"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*s = subscriptionStatus(wrapped.Subscribed)
	return nil
}

func (s *subscriptionService) Status(ctx context.Context, channelID int64) (bool, error) {
	var status subscriptionStatus
	if err := s.api.Get(ctx, fmt.Sprintf("/users/%d/subscription-status", channelID), nil, &status); err != nil {
		return false, err
	}
	return bool(status), nil
}
