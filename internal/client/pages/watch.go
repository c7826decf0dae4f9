package pages

import (
	"context"
	"strings"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/logging"
)

const maxRelatedVideos = 10

// Watch is the video detail page controller: playback metadata, related
// videos, and the comment thread, each fetched independently so a failure in
// one does not block the others. Reactions and subscription are optimistic
// flips reconciled by a reload; comment mutations reload the thread.
type Watch struct {
	mu         sync.Mutex
	videoID    int64
	video      Value[models.Video]
	related    Collection[models.Video]
	comments   Collection[models.Comment]
	likeStatus models.LikeStatus
	subscribed bool

	videos     services.Videos
	commentSvc services.Comments
	subs       services.Subscriptions
	session    Session
	notify     Notifier
	confirm    Confirmer
	log        logging.Logger
}

func NewWatch(videos services.Videos, comments services.Comments, subs services.Subscriptions,
	sess Session, notify Notifier, confirm Confirmer, log logging.Logger) *Watch {
	return &Watch{
		likeStatus: models.LikeStatusNone,
		videos:     videos,
		commentSvc: comments,
		subs:       subs,
		session:    sess,
		notify:     notify,
		confirm:    confirm,
		log:        log,
	}
}

// Load fetches the video, the related list, and the comments in parallel.
// The three fetches are independent and may resolve in any order.
func (w *Watch) Load(ctx context.Context, videoID int64) {
	w.mu.Lock()
	w.videoID = videoID
	w.likeStatus = models.LikeStatusNone
	w.subscribed = false
	videoGen := w.video.Begin()
	relatedGen := w.related.Begin()
	commentsGen := w.comments.Begin()
	w.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		w.loadVideo(ctx, videoID, videoGen)
	}()
	go func() {
		defer wg.Done()
		w.loadRelated(ctx, videoID, relatedGen)
	}()
	go func() {
		defer wg.Done()
		w.loadComments(ctx, videoID, commentsGen)
	}()
	wg.Wait()
}

func (w *Watch) loadVideo(ctx context.Context, videoID int64, gen uint64) {
	video, err := w.videos.ByID(ctx, videoID)

	w.mu.Lock()
	applied := w.video.Complete(gen, video, err)
	w.mu.Unlock()

	if !applied {
		return
	}
	if err != nil {
		w.log.Error(ctx, "video load failed", "video_id", videoID, "error", err)
		w.notify.Error("Failed to load video")
		return
	}
	if video == nil {
		return
	}

	// fire-and-forget; must never block the page
	if viewErr := w.videos.IncrementView(ctx, videoID); viewErr != nil {
		w.log.Debug(ctx, "view increment failed", "video_id", videoID, "error", viewErr)
	}

	if w.session.IsAuthenticated() {
		w.loadReactionState(ctx, videoID, video.UserID)
	}
}

// loadReactionState pre-checks the like status and subscription for the
// authenticated viewer. Both are non-critical and fail silently.
func (w *Watch) loadReactionState(ctx context.Context, videoID, ownerID int64) {
	status, err := w.videos.LikeStatus(ctx, videoID)
	if err != nil {
		w.log.Debug(ctx, "like status load failed", "video_id", videoID, "error", err)
	} else {
		w.mu.Lock()
		w.likeStatus = status
		w.mu.Unlock()
	}

	subscribed, err := w.subs.Status(ctx, ownerID)
	if err != nil {
		w.log.Debug(ctx, "subscription status load failed", "channel_id", ownerID, "error", err)
		return
	}
	w.mu.Lock()
	w.subscribed = subscribed
	w.mu.Unlock()
}

func (w *Watch) loadRelated(ctx context.Context, videoID int64, gen uint64) {
	page, err := w.videos.Public(ctx, services.PageRequest{})

	var items []models.Video
	if err == nil {
		for _, v := range page.Content {
			if v.ID == videoID {
				continue
			}
			items = append(items, v)
			if len(items) == maxRelatedVideos {
				break
			}
		}
	}

	w.mu.Lock()
	applied := w.related.Complete(gen, items, err)
	w.mu.Unlock()

	if applied && err != nil {
		w.log.Debug(ctx, "related videos load failed", "error", err)
	}
}

func (w *Watch) loadComments(ctx context.Context, videoID int64, gen uint64) {
	page, err := w.commentSvc.ByVideo(ctx, videoID, services.PageRequest{})

	var items []models.Comment
	if page != nil {
		items = page.Content
	}

	w.mu.Lock()
	applied := w.comments.Complete(gen, items, err)
	w.mu.Unlock()

	if applied && err != nil {
		w.log.Debug(ctx, "comments load failed", "video_id", videoID, "error", err)
	}
}

func (w *Watch) reloadComments(ctx context.Context) {
	w.mu.Lock()
	videoID := w.videoID
	gen := w.comments.Begin()
	w.mu.Unlock()

	w.loadComments(ctx, videoID, gen)
}

func (w *Watch) requireAuth(action string) bool {
	if w.session.IsAuthenticated() {
		return true
	}
	w.notify.Error(loginPrompt + action)
	return false
}

// Like toggles the viewer's like. The local flip is cosmetic; the server
// computes the actual toggle and the follow-up reload carries the
// authoritative counts.
func (w *Watch) Like(ctx context.Context) {
	if !w.requireAuth("like videos") {
		return
	}

	w.mu.Lock()
	videoID := w.videoID
	prior := w.likeStatus
	w.mu.Unlock()

	if err := w.videos.Like(ctx, videoID); err != nil {
		w.notify.Error("Failed to like video")
		return
	}

	w.mu.Lock()
	if prior == models.LikeStatusLike {
		w.likeStatus = models.LikeStatusNone
	} else {
		w.likeStatus = models.LikeStatusLike
	}
	w.mu.Unlock()

	if prior == models.LikeStatusLike {
		w.notify.Success("Like removed")
	} else {
		w.notify.Success("Video liked!")
	}
	w.reloadVideo(ctx)
}

// Dislike mirrors Like for the negative reaction.
func (w *Watch) Dislike(ctx context.Context) {
	if !w.requireAuth("dislike videos") {
		return
	}

	w.mu.Lock()
	videoID := w.videoID
	prior := w.likeStatus
	w.mu.Unlock()

	if err := w.videos.Dislike(ctx, videoID); err != nil {
		w.notify.Error("Failed to dislike video")
		return
	}

	w.mu.Lock()
	if prior == models.LikeStatusDislike {
		w.likeStatus = models.LikeStatusNone
	} else {
		w.likeStatus = models.LikeStatusDislike
	}
	w.mu.Unlock()

	if prior == models.LikeStatusDislike {
		w.notify.Success("Dislike removed")
	} else {
		w.notify.Success("Video disliked")
	}
	w.reloadVideo(ctx)
}

// ToggleSubscription flips the subscription to the video's channel.
func (w *Watch) ToggleSubscription(ctx context.Context) {
	if !w.requireAuth("subscribe") {
		return
	}

	w.mu.Lock()
	video := w.video.Item()
	prior := w.subscribed
	w.mu.Unlock()

	if video == nil {
		return
	}

	if err := w.subs.Toggle(ctx, video.UserID); err != nil {
		w.notify.Error("Failed to update subscription")
		return
	}

	w.mu.Lock()
	w.subscribed = !prior
	w.mu.Unlock()

	if prior {
		w.notify.Success("Unsubscribed")
	} else {
		w.notify.Success("Subscribed!")
	}
	w.reloadVideo(ctx)
}

// AddComment posts a top-level comment and reloads the thread.
func (w *Watch) AddComment(ctx context.Context, content string) {
	if !w.requireAuth("comment") {
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}

	w.mu.Lock()
	videoID := w.videoID
	w.mu.Unlock()

	if _, err := w.commentSvc.Add(ctx, videoID, content, nil); err != nil {
		w.notify.Error("Failed to add comment")
		return
	}
	w.notify.Success("Comment added!")
	w.reloadComments(ctx)
}

// Reply posts a reply to an existing comment and reloads the thread.
func (w *Watch) Reply(ctx context.Context, parentCommentID int64, content string) {
	if !w.requireAuth("comment") {
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}

	w.mu.Lock()
	videoID := w.videoID
	w.mu.Unlock()

	if _, err := w.commentSvc.Add(ctx, videoID, content, &parentCommentID); err != nil {
		w.notify.Error("Failed to add comment")
		return
	}
	w.notify.Success("Comment added!")
	w.reloadComments(ctx)
}

// DeleteComment removes a comment after explicit confirmation.
func (w *Watch) DeleteComment(ctx context.Context, commentID int64) {
	if !w.requireAuth("comment") {
		return
	}
	if !w.confirm.Confirm("Delete this comment?") {
		return
	}

	if err := w.commentSvc.Delete(ctx, commentID); err != nil {
		w.notify.Error("Failed to delete comment")
		return
	}
	w.notify.Success("Comment deleted")
	w.reloadComments(ctx)
}

func (w *Watch) reloadVideo(ctx context.Context) {
	w.mu.Lock()
	videoID := w.videoID
	gen := w.video.Begin()
	w.mu.Unlock()

	video, err := w.videos.ByID(ctx, videoID)

	w.mu.Lock()
	w.video.Complete(gen, video, err)
	w.mu.Unlock()

	if err != nil {
		w.log.Debug(ctx, "video reload failed", "video_id", videoID, "error", err)
	}
}

// ---- accessors ----

func (w *Watch) Video() *models.Video {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.video.Item()
}

func (w *Watch) VideoPhase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.video.Phase()
}

func (w *Watch) Related() []models.Video {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.related.Items()
}

func (w *Watch) Comments() []models.Comment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.comments.Items()
}

func (w *Watch) CommentsPhase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.comments.Phase()
}

func (w *Watch) LikeStatus() models.LikeStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.likeStatus
}

func (w *Watch) Subscribed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.subscribed
}
