package pages

import (
	"context"
	"strings"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/logging"
)

// UploadForm is the collected input of the upload page. Tags is the raw
// comma-separated field; it is split and trimmed on submit.
type UploadForm struct {
	Title       string
	Description string
	Category    string
	Tags        string
	Status      models.VideoStatus
	Video       *services.FileUpload
	Thumbnail   *services.FileUpload
}

// Upload is the upload page controller. A submit is a single multipart
// request; there is no partial progress to reconcile.
type Upload struct {
	mu        sync.Mutex
	uploading bool
	uploaded  *models.Video

	videos  services.Videos
	session Session
	notify  Notifier
	log     logging.Logger
}

func NewUpload(videos services.Videos, sess Session, notify Notifier, log logging.Logger) *Upload {
	return &Upload{
		videos:  videos,
		session: sess,
		notify:  notify,
		log:     log,
	}
}

// Submit validates and uploads the form. On success the created video is
// retained so the caller can navigate to it.
func (u *Upload) Submit(ctx context.Context, form UploadForm) {
	if !u.session.IsAuthenticated() {
		u.notify.Error(loginPrompt + "upload videos")
		return
	}
	if form.Video == nil {
		u.notify.Error("Please select a video file")
		return
	}
	if strings.TrimSpace(form.Title) == "" {
		u.notify.Error("Please enter a title")
		return
	}

	u.mu.Lock()
	if u.uploading {
		u.mu.Unlock()
		return
	}
	u.uploading = true
	u.uploaded = nil
	u.mu.Unlock()
	defer func() {
		u.mu.Lock()
		u.uploading = false
		u.mu.Unlock()
	}()

	meta := services.VideoUpload{
		Title:       strings.TrimSpace(form.Title),
		Description: form.Description,
		Category:    form.Category,
		Tags:        splitTags(form.Tags),
		Status:      form.Status,
	}

	video, err := u.videos.Upload(ctx, meta, *form.Video, form.Thumbnail)
	if err != nil {
		u.log.Error(ctx, "video upload failed", "title", meta.Title, "error", err)
		u.notify.Error(errorMessage(err, "Failed to upload video"))
		return
	}

	u.mu.Lock()
	u.uploaded = video
	u.mu.Unlock()

	u.notify.Success("Video uploaded!")
}

// splitTags turns a comma-separated field into a clean tag list.
func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (u *Upload) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// Uploaded returns the video created by the last successful submit, or nil.
func (u *Upload) Uploaded() *models.Video {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploaded
}
