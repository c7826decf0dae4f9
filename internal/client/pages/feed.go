package pages

import (
	"context"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/logging"
)

// FeedTab selects which listing the feed shows.
type FeedTab string

const (
	TabAll      FeedTab = "all"
	TabTrending FeedTab = "trending"
	TabLatest   FeedTab = "latest"
)

// Feed is the home page controller: one video list with a tab filter.
type Feed struct {
	mu     sync.Mutex
	videos Collection[models.Video]
	tab    FeedTab

	svc    services.Videos
	notify Notifier
	log    logging.Logger
}

func NewFeed(svc services.Videos, notify Notifier, log logging.Logger) *Feed {
	return &Feed{tab: TabAll, svc: svc, notify: notify, log: log}
}

// Load fetches the listing for the active tab.
func (f *Feed) Load(ctx context.Context) {
	f.mu.Lock()
	tab := f.tab
	gen := f.videos.Begin()
	f.mu.Unlock()

	var page *models.Page[models.Video]
	var err error
	switch tab {
	case TabTrending:
		page, err = f.svc.Trending(ctx)
	case TabLatest:
		page, err = f.svc.Latest(ctx)
	default:
		page, err = f.svc.Public(ctx, services.PageRequest{})
	}

	var items []models.Video
	if page != nil {
		items = page.Content
	}

	f.mu.Lock()
	applied := f.videos.Complete(gen, items, err)
	f.mu.Unlock()

	if applied && err != nil {
		f.log.Error(ctx, "feed load failed", "tab", tab, "error", err)
		f.notify.Error("Failed to load videos")
	}
}

// SetTab switches the active tab and reloads when it changed.
func (f *Feed) SetTab(ctx context.Context, tab FeedTab) {
	f.mu.Lock()
	changed := f.tab != tab
	f.tab = tab
	f.mu.Unlock()

	if changed {
		f.Load(ctx)
	}
}

func (f *Feed) ActiveTab() FeedTab {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tab
}

func (f *Feed) Videos() []models.Video {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.videos.Items()
}

func (f *Feed) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.videos.Phase()
}
