package services

import (
	"context"
	"fmt"

	"github.com/vidtube/client/internal/client/api"
	"github.com/vidtube/client/internal/client/models"
)

// Users exposes account and channel lookups plus the profile editor's
// update operation.
type Users interface {
	Me(ctx context.Context) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error)
}

// ProfileUpdate carries the fields of a partial profile edit. Nil fields are
// omitted from the multipart payload entirely, never sent as empty values.
type ProfileUpdate struct {
	FullName           *string
	ChannelDescription *string
	ProfilePicture     *FileUpload
}

type userService struct {
	api *api.Client
}

func NewUserService(c *api.Client) Users {
	return &userService{api: c}
}

func (u *userService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := u.api.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := u.api.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *userService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	form := api.NewForm()
	if update.FullName != nil {
		form.AddField("fullName", *update.FullName)
	}
	if update.ChannelDescription != nil {
		form.AddField("channelDescription", *update.ChannelDescription)
	}
	if update.ProfilePicture != nil {
		form.AddFile("profilePicture", update.ProfilePicture.Filename, update.ProfilePicture.Reader)
	}

	var user models.User
	if err := u.api.PutMultipart(ctx, "/users/profile", form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
