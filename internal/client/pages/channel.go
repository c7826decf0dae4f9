package pages

import (
	"context"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/logging"
)

// Channel is the public channel page controller: the channel owner's
// profile and their uploads, plus the viewer's subscription to the channel.
type Channel struct {
	mu         sync.Mutex
	channelID  int64
	owner      Value[models.User]
	videos     Collection[models.Video]
	subscribed bool

	users    services.Users
	videoSvc services.Videos
	subs     services.Subscriptions
	session  Session
	notify   Notifier
	log      logging.Logger
}

func NewChannel(users services.Users, videos services.Videos, subs services.Subscriptions,
	sess Session, notify Notifier, log logging.Logger) *Channel {
	return &Channel{
		users:    users,
		videoSvc: videos,
		subs:     subs,
		session:  sess,
		notify:   notify,
		log:      log,
	}
}

// Load fetches the channel owner and their videos in parallel. When the
// viewer is authenticated and not looking at their own channel, the
// subscription status is pre-checked; that check fails silently.
func (c *Channel) Load(ctx context.Context, channelID int64) {
	c.mu.Lock()
	c.channelID = channelID
	c.subscribed = false
	ownerGen := c.owner.Begin()
	videosGen := c.videos.Begin()
	c.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.loadOwner(ctx, channelID, ownerGen)
	}()
	go func() {
		defer wg.Done()
		c.loadVideos(ctx, channelID, videosGen)
	}()
	wg.Wait()
}

func (c *Channel) loadOwner(ctx context.Context, channelID int64, gen uint64) {
	owner, err := c.users.Get(ctx, channelID)

	c.mu.Lock()
	applied := c.owner.Complete(gen, owner, err)
	c.mu.Unlock()

	if !applied {
		return
	}
	if err != nil {
		c.log.Error(ctx, "channel load failed", "channel_id", channelID, "error", err)
		c.notify.Error("Failed to load channel")
		return
	}

	if c.session.IsAuthenticated() && !c.isOwnChannel(channelID) {
		subscribed, err := c.subs.Status(ctx, channelID)
		if err != nil {
			c.log.Debug(ctx, "subscription status load failed", "channel_id", channelID, "error", err)
			return
		}
		c.mu.Lock()
		c.subscribed = subscribed
		c.mu.Unlock()
	}
}

func (c *Channel) loadVideos(ctx context.Context, channelID int64, gen uint64) {
	page, err := c.videoSvc.ByUser(ctx, channelID, services.PageRequest{})

	var items []models.Video
	if page != nil {
		items = page.Content
	}

	c.mu.Lock()
	applied := c.videos.Complete(gen, items, err)
	c.mu.Unlock()

	if applied && err != nil {
		c.log.Debug(ctx, "channel videos load failed", "channel_id", channelID, "error", err)
	}
}

func (c *Channel) isOwnChannel(channelID int64) bool {
	user := c.session.User()
	return user != nil && user.ID == channelID
}

// ToggleSubscription flips the viewer's subscription to this channel and
// reloads the channel so the subscriber count is authoritative.
func (c *Channel) ToggleSubscription(ctx context.Context) {
	if !c.session.IsAuthenticated() {
		c.notify.Error(loginPrompt + "subscribe")
		return
	}

	c.mu.Lock()
	channelID := c.channelID
	prior := c.subscribed
	c.mu.Unlock()

	if c.isOwnChannel(channelID) {
		return
	}

	if err := c.subs.Toggle(ctx, channelID); err != nil {
		c.notify.Error("Failed to update subscription")
		return
	}

	c.mu.Lock()
	c.subscribed = !prior
	c.mu.Unlock()

	if prior {
		c.notify.Success("Unsubscribed")
	} else {
		c.notify.Success("Subscribed!")
	}
	c.reloadOwner(ctx)
}

func (c *Channel) reloadOwner(ctx context.Context) {
	c.mu.Lock()
	channelID := c.channelID
	gen := c.owner.Begin()
	c.mu.Unlock()

	owner, err := c.users.Get(ctx, channelID)

	c.mu.Lock()
	c.owner.Complete(gen, owner, err)
	c.mu.Unlock()

	if err != nil {
		c.log.Debug(ctx, "channel reload failed", "channel_id", channelID, "error", err)
	}
}

func (c *Channel) Owner() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner.Item()
}

func (c *Channel) OwnerPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner.Phase()
}

func (c *Channel) Videos() []models.Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.videos.Items()
}

func (c *Channel) VideosPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.videos.Phase()
}

func (c *Channel) Subscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribed
}
