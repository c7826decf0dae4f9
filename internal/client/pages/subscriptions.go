package pages

import (
	"context"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/logging"
)

// SubscriptionsFeed is the subscriptions page controller: the feed of
// videos from channels the viewer subscribes to. The page is auth-gated.
type SubscriptionsFeed struct {
	mu     sync.Mutex
	videos Collection[models.Video]

	svc     services.Videos
	session Session
	notify  Notifier
	log     logging.Logger
}

func NewSubscriptionsFeed(videos services.Videos, sess Session, notify Notifier, log logging.Logger) *SubscriptionsFeed {
	return &SubscriptionsFeed{
		svc:     videos,
		session: sess,
		notify:  notify,
		log:     log,
	}
}

// Load fetches the subscribed feed. An anonymous viewer is prompted to log
// in and no request is made; an authenticated viewer with no subscriptions
// sees the empty state, not an error.
func (s *SubscriptionsFeed) Load(ctx context.Context) {
	if !s.session.IsAuthenticated() {
		s.notify.Error(loginPrompt + "see your subscriptions")
		return
	}

	s.mu.Lock()
	gen := s.videos.Begin()
	s.mu.Unlock()

	page, err := s.svc.Subscribed(ctx, services.PageRequest{})

	var items []models.Video
	if page != nil {
		items = page.Content
	}

	s.mu.Lock()
	applied := s.videos.Complete(gen, items, err)
	s.mu.Unlock()

	if applied && err != nil {
		s.log.Error(ctx, "subscriptions feed load failed", "error", err)
		s.notify.Error("Failed to load subscriptions")
	}
}

func (s *SubscriptionsFeed) Videos() []models.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videos.Items()
}

func (s *SubscriptionsFeed) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videos.Phase()
}
