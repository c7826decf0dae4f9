package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vidtube/client/internal/client/api"
	"github.com/vidtube/client/internal/client/models"
)

// Comments exposes the comment thread operations. Update and Like exist in
// the backend contract but no page invokes them yet.
type Comments interface {
	Add(ctx context.Context, videoID int64, content string, parentCommentID *int64) (*models.Comment, error)
	ByVideo(ctx context.Context, videoID int64, pr PageRequest) (*models.Page[models.Comment], error)
	Replies(ctx context.Context, commentID int64) ([]models.Comment, error)
	Count(ctx context.Context, videoID int64) (int64, error)
	Delete(ctx context.Context, commentID int64) error
	Update(ctx context.Context, commentID int64, content string) (*models.Comment, error)
	Like(ctx context.Context, commentID int64) error
}

type commentService struct {
	api *api.Client
}

func NewCommentService(c *api.Client) Comments {
	return &commentService{api: c}
}

func (c *commentService) Add(ctx context.Context, videoID int64, content string, parentCommentID *int64) (*models.Comment, error) {
	body := struct {
		Content         string `json:"content"`
		ParentCommentID *int64 `json:"parentCommentId,omitempty"`
	}{Content: content, ParentCommentID: parentCommentID}

	var created models.Comment
	if err := c.api.Post(ctx, fmt.Sprintf("/comments/video/%d", videoID), body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *commentService) ByVideo(ctx context.Context, videoID int64, pr PageRequest) (*models.Page[models.Comment], error) {
	var page models.Page[models.Comment]
	if err := c.api.Get(ctx, fmt.Sprintf("/comments/video/%d", videoID), pr.values(DefaultCommentPageSize), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *commentService) Replies(ctx context.Context, commentID int64) ([]models.Comment, error) {
	var replies []models.Comment
	if err := c.api.Get(ctx, fmt.Sprintf("/comments/%d/replies", commentID), nil, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// commentCount decodes both a bare number and a {"count": n} wrapper.
type commentCount int64

func (n *commentCount) UnmarshalJSON(data []byte) error {
	var bare int64
	if err := json.Unmarshal(data, &bare); err == nil {
		*n = commentCount(bare)
		return nil
	}
	var wrapped struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*n = commentCount(wrapped.Count)
	return nil
}

func (c *commentService) Count(ctx context.Context, videoID int64) (int64, error) {
	var n commentCount
	if err := c.api.Get(ctx, fmt.Sprintf("/comments/video/%d/count", videoID), nil, &n); err != nil {
		return 0, err
	}
	return int64(n), nil
}

func (c *commentService) Delete(ctx context.Context, commentID int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/comments/%d", commentID), nil)
}

func (c *commentService) Update(ctx context.Context, commentID int64, content string) (*models.Comment, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}

	var updated models.Comment
	if err := c.api.Put(ctx, fmt.Sprintf("/comments/%d", commentID), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *commentService) Like(ctx context.Context, commentID int64) error {
	return c.api.Post(ctx, fmt.Sprintf("/comments/%d/like", commentID), nil, nil)
}
