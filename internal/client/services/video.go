package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vidtube/client/internal/client/api"
	"github.com/vidtube/client/internal/client/models"
)

// Videos exposes the video listings, the detail lookup, the upload and
// delete operations, and the reaction endpoints. Like and Dislike are
// idempotent toggles computed server-side; the caller reconciles counts by
// reloading the video. IncrementView is a fire-and-forget side effect whose
// failure the caller is expected to swallow.
type Videos interface {
	Public(ctx context.Context, pr PageRequest) (*models.Page[models.Video], error)
	Trending(ctx context.Context) (*models.Page[models.Video], error)
	Latest(ctx context.Context) (*models.Page[models.Video], error)
	ByUser(ctx context.Context, userID int64, pr PageRequest) (*models.Page[models.Video], error)
	Subscribed(ctx context.Context, pr PageRequest) (*models.Page[models.Video], error)
	Search(ctx context.Context, query string, pr PageRequest) (*models.Page[models.Video], error)
	ByID(ctx context.Context, id int64) (*models.Video, error)

	Upload(ctx context.Context, meta VideoUpload, video FileUpload, thumbnail *FileUpload) (*models.Video, error)
	Delete(ctx context.Context, id int64) error

	Like(ctx context.Context, id int64) error
	Dislike(ctx context.Context, id int64) error
	LikeStatus(ctx context.Context, id int64) (models.LikeStatus, error)
	IncrementView(ctx context.Context, id int64) error
}

// VideoUpload is the metadata blob sent alongside the binary parts of an
// upload. Zero values are filled with defaults before sending.
type VideoUpload struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Status      models.VideoStatus `json:"status"`
	Tags        []string           `json:"tags"`
}

// withDefaults merges the backend's expected defaults for omitted fields.
func (v VideoUpload) withDefaults() VideoUpload {
	if v.Status == "" {
		v.Status = models.StatusPublic
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v
}

type videoService struct {
	api *api.Client
}

func NewVideoService(c *api.Client) Videos {
	return &videoService{api: c}
}

func (v *videoService) list(ctx context.Context, path string, params url.Values) (*models.Page[models.Video], error) {
	var page models.Page[models.Video]
	if err := v.api.Get(ctx, path, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (v *videoService) Public(ctx context.Context, pr PageRequest) (*models.Page[models.Video], error) {
	return v.list(ctx, "/videos/public", pr.values(DefaultPageSize))
}

func (v *videoService) Trending(ctx context.Context) (*models.Page[models.Video], error) {
	return v.list(ctx, "/videos/trending", nil)
}

func (v *videoService) Latest(ctx context.Context) (*models.Page[models.Video], error) {
	return v.list(ctx, "/videos/latest", nil)
}

func (v *videoService) ByUser(ctx context.Context, userID int64, pr PageRequest) (*models.Page[models.Video], error) {
	return v.list(ctx, fmt.Sprintf("/videos/user/%d", userID), pr.values(DefaultPageSize))
}

func (v *videoService) Subscribed(ctx context.Context, pr PageRequest) (*models.Page[models.Video], error) {
	return v.list(ctx, "/videos/subscriptions", pr.values(DefaultPageSize))
}

func (v *videoService) Search(ctx context.Context, query string, pr PageRequest) (*models.Page[models.Video], error) {
	params := pr.values(DefaultPageSize)
	params.Set("q", query)
	return v.list(ctx, "/videos/search", params)
}

func (v *videoService) ByID(ctx context.Context, id int64) (*models.Video, error) {
	var video models.Video
	if err := v.api.Get(ctx, fmt.Sprintf("/videos/%d", id), nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (v *videoService) Upload(ctx context.Context, meta VideoUpload, video FileUpload, thumbnail *FileUpload) (*models.Video, error) {
	form := api.NewForm().
		AddFile("video", video.Filename, video.Reader).
		AddJSON("data", meta.withDefaults())
	if thumbnail != nil {
		form.AddFile("thumbnail", thumbnail.Filename, thumbnail.Reader)
	}

	var uploaded models.Video
	if err := v.api.PostMultipart(ctx, "/videos/upload", form, &uploaded); err != nil {
		return nil, err
	}
	return &uploaded, nil
}

func (v *videoService) Delete(ctx context.Context, id int64) error {
	return v.api.Delete(ctx, fmt.Sprintf("/videos/%d", id), nil)
}

func (v *videoService) Like(ctx context.Context, id int64) error {
	return v.api.Post(ctx, fmt.Sprintf("/videos/%d/like", id), nil, nil)
}

func (v *videoService) Dislike(ctx context.Context, id int64) error {
	return v.api.Post(ctx, fmt.Sprintf("/videos/%d/dislike", id), nil, nil)
}

func (v *videoService) LikeStatus(ctx context.Context, id int64) (models.LikeStatus, error) {
	var status models.LikeStatus
	if err := v.api.Get(ctx, fmt.Sprintf("/videos/%d/like-status", id), nil, &status); err != nil {
		return models.LikeStatusNone, err
	}
	if status == "" {
		status = models.LikeStatusNone
	}
	return status, nil
}

func (v *videoService) IncrementView(ctx context.Context, id int64) error {
	return v.api.Post(ctx, fmt.Sprintf("/videos/%d/view", id), nil, nil)
}
