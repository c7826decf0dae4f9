package pages

import (
	"context"
	"sync"

	"github.com/vidtube/client/internal/client/api"
	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/client/session"
	"github.com/vidtube/client/internal/logging"
)

// SessionUpdater is the session surface the profile page needs: gating reads
// plus the merge-and-persist write used after a profile save.
// *session.Controller satisfies it.
type SessionUpdater interface {
	Session
	UpdateUser(ctx context.Context, patch session.UserPatch) (*models.User, error)
}

// ProfileEdit carries the fields of a profile save. Nil fields are left
// unchanged.
type ProfileEdit struct {
	FullName           *string
	ChannelDescription *string
	ProfilePicture     *services.FileUpload
}

// Profile is the own-profile page controller: the viewer's account record,
// their uploads, profile editing, and video deletion.
type Profile struct {
	mu     sync.Mutex
	user   Value[models.User]
	videos Collection[models.Video]
	saving bool

	users    services.Users
	videoSvc services.Videos
	session  SessionUpdater
	notify   Notifier
	confirm  Confirmer
	log      logging.Logger
}

func NewProfile(users services.Users, videos services.Videos, sess SessionUpdater,
	notify Notifier, confirm Confirmer, log logging.Logger) *Profile {
	return &Profile{
		users:    users,
		videoSvc: videos,
		session:  sess,
		notify:   notify,
		confirm:  confirm,
		log:      log,
	}
}

// Load fetches the fresh account record and the viewer's uploads. When the
// account fetch fails the cached session user is shown instead, so the page
// stays usable offline.
func (p *Profile) Load(ctx context.Context) {
	if !p.session.IsAuthenticated() {
		p.notify.Error(loginPrompt + "view your profile")
		return
	}

	p.mu.Lock()
	userGen := p.user.Begin()
	videosGen := p.videos.Begin()
	p.mu.Unlock()

	user, err := p.users.Me(ctx)
	if err != nil {
		p.log.Warn(ctx, "profile fetch failed, using cached user", "error", err)
		if cached := p.session.User(); cached != nil {
			user, err = cached, nil
		}
	}

	p.mu.Lock()
	p.user.Complete(userGen, user, err)
	p.mu.Unlock()

	if err != nil {
		p.notify.Error("Failed to load profile")
		return
	}
	if user == nil {
		return
	}

	p.loadVideos(ctx, user.ID, videosGen)
}

func (p *Profile) loadVideos(ctx context.Context, userID int64, gen uint64) {
	page, err := p.videoSvc.ByUser(ctx, userID, services.PageRequest{})

	var items []models.Video
	if page != nil {
		items = page.Content
	}

	p.mu.Lock()
	applied := p.videos.Complete(gen, items, err)
	p.mu.Unlock()

	if applied && err != nil {
		p.log.Debug(ctx, "own videos load failed", "user_id", userID, "error", err)
	}
}

// Save submits the edited fields. The server sometimes reports success with
// an unparseable body; a 2xx status or an echoed record id is treated as
// success, in which case the session user is patched locally and the page
// reloaded for the authoritative record.
func (p *Profile) Save(ctx context.Context, edit ProfileEdit) {
	if !p.session.IsAuthenticated() {
		p.notify.Error(loginPrompt + "edit your profile")
		return
	}

	p.mu.Lock()
	if p.saving {
		p.mu.Unlock()
		return
	}
	p.saving = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.saving = false
		p.mu.Unlock()
	}()

	updated, err := p.users.UpdateProfile(ctx, services.ProfileUpdate{
		FullName:           edit.FullName,
		ChannelDescription: edit.ChannelDescription,
		ProfilePicture:     edit.ProfilePicture,
	})
	if err != nil && !api.SuccessIndicated(err) {
		p.notify.Error(errorMessage(err, "Failed to update profile"))
		return
	}
	if err != nil {
		p.log.Debug(ctx, "profile update succeeded with undecodable response", "error", err)
	}

	patch := session.UserPatch{
		FullName:           edit.FullName,
		ChannelDescription: edit.ChannelDescription,
	}
	if updated != nil && updated.ProfilePictureURL != "" {
		patch.ProfilePictureURL = &updated.ProfilePictureURL
	}
	if _, err := p.session.UpdateUser(ctx, patch); err != nil {
		p.log.Warn(ctx, "session user update failed", "error", err)
	}

	p.notify.Success("Profile updated!")
	p.Load(ctx)
}

// DeleteVideo removes one of the viewer's uploads after confirmation. The
// list is reconciled locally; no refetch is needed for a delete.
func (p *Profile) DeleteVideo(ctx context.Context, videoID int64) {
	if !p.session.IsAuthenticated() {
		p.notify.Error(loginPrompt + "manage your videos")
		return
	}
	if !p.confirm.Confirm("Delete this video? This cannot be undone.") {
		return
	}

	if err := p.videoSvc.Delete(ctx, videoID); err != nil {
		p.notify.Error(errorMessage(err, "Failed to delete video"))
		return
	}

	p.mu.Lock()
	p.videos.Remove(func(v models.Video) bool { return v.ID == videoID })
	p.mu.Unlock()

	p.notify.Success("Video deleted")
}

func (p *Profile) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user.Item()
}

func (p *Profile) UserPhase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user.Phase()
}

func (p *Profile) Videos() []models.Video {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videos.Items()
}

func (p *Profile) VideosPhase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videos.Phase()
}

func (p *Profile) Saving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saving
}
