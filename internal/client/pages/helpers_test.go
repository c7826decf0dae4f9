package pages

import (
	"context"
	"sync"

	"github.com/vidtube/client/internal/client/models"
	"github.com/vidtube/client/internal/client/services"
	"github.com/vidtube/client/internal/client/session"
)

// fakeVideos counts calls and returns canned results. Unset function fields
// fall back to benign defaults so tests configure only what they assert on.
type fakeVideos struct {
	mu    sync.Mutex
	calls map[string]int

	publicFn     func(pr services.PageRequest) (*models.Page[models.Video], error)
	trendingFn   func() (*models.Page[models.Video], error)
	latestFn     func() (*models.Page[models.Video], error)
	byUserFn     func(userID int64, pr services.PageRequest) (*models.Page[models.Video], error)
	subscribedFn func(pr services.PageRequest) (*models.Page[models.Video], error)
	byIDFn       func(id int64) (*models.Video, error)
	uploadFn     func(meta services.VideoUpload, video services.FileUpload, thumb *services.FileUpload) (*models.Video, error)
	deleteFn     func(id int64) error
	likeFn       func(id int64) error
	dislikeFn    func(id int64) error
	likeStatusFn func(id int64) (models.LikeStatus, error)
	incViewFn    func(id int64) error
}

func newFakeVideos() *fakeVideos {
	return &fakeVideos{calls: map[string]int{}}
}

func (f *fakeVideos) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeVideos) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeVideos) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeVideos) Public(ctx context.Context, pr services.PageRequest) (*models.Page[models.Video], error) {
	f.record("Public")
	if f.publicFn != nil {
		return f.publicFn(pr)
	}
	return &models.Page[models.Video]{}, nil
}

func (f *fakeVideos) Trending(ctx context.Context) (*models.Page[models.Video], error) {
	f.record("Trending")
	if f.trendingFn != nil {
		return f.trendingFn()
	}
	return &models.Page[models.Video]{}, nil
}

func (f *fakeVideos) Latest(ctx context.Context) (*models.Page[models.Video], error) {
	f.record("Latest")
	if f.latestFn != nil {
		return f.latestFn()
	}
	return &models.Page[models.Video]{}, nil
}

func (f *fakeVideos) ByUser(ctx context.Context, userID int64, pr services.PageRequest) (*models.Page[models.Video], error) {
	f.record("ByUser")
	if f.byUserFn != nil {
		return f.byUserFn(userID, pr)
	}
	return &models.Page[models.Video]{}, nil
}

func (f *fakeVideos) Subscribed(ctx context.Context, pr services.PageRequest) (*models.Page[models.Video], error) {
	f.record("Subscribed")
	if f.subscribedFn != nil {
		return f.subscribedFn(pr)
	}
	return &models.Page[models.Video]{}, nil
}

func (f *fakeVideos) Search(ctx context.Context, query string, pr services.PageRequest) (*models.Page[models.Video], error) {
	f.record("Search")
	return &models.Page[models.Video]{}, nil
}

func (f *fakeVideos) ByID(ctx context.Context, id int64) (*models.Video, error) {
	f.record("ByID")
	if f.byIDFn != nil {
		return f.byIDFn(id)
	}
	return &models.Video{ID: id, UserID: 1}, nil
}

func (f *fakeVideos) Upload(ctx context.Context, meta services.VideoUpload, video services.FileUpload, thumb *services.FileUpload) (*models.Video, error) {
	f.record("Upload")
	if f.uploadFn != nil {
		return f.uploadFn(meta, video, thumb)
	}
	return &models.Video{ID: 1}, nil
}

func (f *fakeVideos) Delete(ctx context.Context, id int64) error {
	f.record("Delete")
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func (f *fakeVideos) Like(ctx context.Context, id int64) error {
	f.record("Like")
	if f.likeFn != nil {
		return f.likeFn(id)
	}
	return nil
}

func (f *fakeVideos) Dislike(ctx context.Context, id int64) error {
	f.record("Dislike")
	if f.dislikeFn != nil {
		return f.dislikeFn(id)
	}
	return nil
}

func (f *fakeVideos) LikeStatus(ctx context.Context, id int64) (models.LikeStatus, error) {
	f.record("LikeStatus")
	if f.likeStatusFn != nil {
		return f.likeStatusFn(id)
	}
	return models.LikeStatusNone, nil
}

func (f *fakeVideos) IncrementView(ctx context.Context, id int64) error {
	f.record("IncrementView")
	if f.incViewFn != nil {
		return f.incViewFn(id)
	}
	return nil
}

type fakeComments struct {
	mu    sync.Mutex
	calls map[string]int

	addFn     func(videoID int64, content string, parent *int64) (*models.Comment, error)
	byVideoFn func(videoID int64, pr services.PageRequest) (*models.Page[models.Comment], error)
	deleteFn  func(commentID int64) error
}

func newFakeComments() *fakeComments {
	return &fakeComments{calls: map[string]int{}}
}

func (f *fakeComments) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeComments) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeComments) Add(ctx context.Context, videoID int64, content string, parent *int64) (*models.Comment, error) {
	f.record("Add")
	if f.addFn != nil {
		return f.addFn(videoID, content, parent)
	}
	return &models.Comment{ID: 1, VideoID: videoID, Content: content}, nil
}

func (f *fakeComments) ByVideo(ctx context.Context, videoID int64, pr services.PageRequest) (*models.Page[models.Comment], error) {
	f.record("ByVideo")
	if f.byVideoFn != nil {
		return f.byVideoFn(videoID, pr)
	}
	return &models.Page[models.Comment]{}, nil
}

func (f *fakeComments) Replies(ctx context.Context, commentID int64) ([]models.Comment, error) {
	f.record("Replies")
	return nil, nil
}

func (f *fakeComments) Count(ctx context.Context, videoID int64) (int64, error) {
	f.record("Count")
	return 0, nil
}

func (f *fakeComments) Delete(ctx context.Context, commentID int64) error {
	f.record("Delete")
	if f.deleteFn != nil {
		return f.deleteFn(commentID)
	}
	return nil
}

func (f *fakeComments) Update(ctx context.Context, commentID int64, content string) (*models.Comment, error) {
	f.record("Update")
	return &models.Comment{ID: commentID, Content: content}, nil
}

func (f *fakeComments) Like(ctx context.Context, commentID int64) error {
	f.record("Like")
	return nil
}

type fakeSubscriptions struct {
	mu    sync.Mutex
	calls map[string]int

	toggleFn func(channelID int64) error
	statusFn func(channelID int64) (bool, error)
}

func newFakeSubscriptions() *fakeSubscriptions {
	return &fakeSubscriptions{calls: map[string]int{}}
}

func (f *fakeSubscriptions) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeSubscriptions) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSubscriptions) Toggle(ctx context.Context, channelID int64) error {
	f.record("Toggle")
	if f.toggleFn != nil {
		return f.toggleFn(channelID)
	}
	return nil
}

func (f *fakeSubscriptions) Status(ctx context.Context, channelID int64) (bool, error) {
	f.record("Status")
	if f.statusFn != nil {
		return f.statusFn(channelID)
	}
	return false, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	calls map[string]int

	meFn     func() (*models.User, error)
	getFn    func(id int64) (*models.User, error)
	updateFn func(update services.ProfileUpdate) (*models.User, error)
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{calls: map[string]int{}}
}

func (f *fakeUsers) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeUsers) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeUsers) Me(ctx context.Context) (*models.User, error) {
	f.record("Me")
	if f.meFn != nil {
		return f.meFn()
	}
	return &models.User{ID: 1, Username: "me"}, nil
}

func (f *fakeUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	f.record("Get")
	if f.getFn != nil {
		return f.getFn(id)
	}
	return &models.User{ID: id, Username: "channel"}, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, update services.ProfileUpdate) (*models.User, error) {
	f.record("UpdateProfile")
	if f.updateFn != nil {
		return f.updateFn(update)
	}
	return &models.User{ID: 1, Username: "me"}, nil
}

// fakeSession satisfies SessionUpdater (and therefore Session).
type fakeSession struct {
	mu            sync.Mutex
	authenticated bool
	user          *models.User
	patches       []session.UserPatch
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

func (f *fakeSession) User() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

func (f *fakeSession) UpdateUser(ctx context.Context, patch session.UserPatch) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	u := *f.user
	return &u, nil
}

func authedSession(user *models.User) *fakeSession {
	return &fakeSession{authenticated: true, user: user}
}

func anonSession() *fakeSession {
	return &fakeSession{}
}

// recordingNotifier captures notifications in order.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) errorMessages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

func (n *recordingNotifier) successMessages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

// stubConfirmer answers every prompt with a fixed verdict.
type stubConfirmer struct {
	answer   bool
	prompts  []string
	promptMu sync.Mutex
}

func (c *stubConfirmer) Confirm(prompt string) bool {
	c.promptMu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.promptMu.Unlock()
	return c.answer
}

func ptr[T any](v T) *T { return &v }
