// Package models defines the domain types exchanged with the VidTube
// backend. Decoders are deliberately tolerant: the backend is known to ship
// two shapes for several payloads (enveloped vs. bare), and the client must
// accept both.
package models

import (
	"encoding/json"
	"time"
)

// User is a platform account, doubling as a channel.
// A User without an ID is considered corrupt and must be discarded.
type User struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	FullName           string `json:"fullName,omitempty"`
	ChannelDescription string `json:"channelDescription,omitempty"`
	ProfilePictureURL  string `json:"profilePictureUrl,omitempty"`
	SubscriberCount    int64  `json:"subscriberCount,omitempty"`
}

// Valid reports whether the user carries the stable identity the rest of the
// client relies on.
func (u *User) Valid() bool {
	return u != nil && u.ID != 0
}

// VideoStatus is the visibility of a video.
type VideoStatus string

const (
	StatusPublic   VideoStatus = "public"
	StatusPrivate  VideoStatus = "private"
	StatusUnlisted VideoStatus = "unlisted"
)

// Video is uploaded media plus its server-authoritative counters.
// ViewCount/LikeCount/DislikeCount are incremented by dedicated endpoints
// and never computed client-side.
type Video struct {
	ID                 int64       `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	ThumbnailURL       string      `json:"thumbnailUrl,omitempty"`
	VideoURL           string      `json:"videoUrl"`
	Duration           int64       `json:"duration,omitempty"`
	ViewCount          int64       `json:"viewCount"`
	LikeCount          int64       `json:"likeCount"`
	DislikeCount       int64       `json:"dislikeCount"`
	Tags               []string    `json:"tags,omitempty"`
	UserID             int64       `json:"userId"`
	Username           string      `json:"username"`
	UserProfilePicture string      `json:"userProfilePicture,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	Status             VideoStatus `json:"status"`
}

// Comment belongs to a video. A non-nil ParentCommentID marks it as a reply;
// the relationship is a shallow one-level parent reference.
type Comment struct {
	ID                 int64     `json:"id"`
	VideoID            int64     `json:"videoId"`
	UserID             int64     `json:"userId"`
	Username           string    `json:"username"`
	UserProfilePicture string    `json:"userProfilePicture,omitempty"`
	Content            string    `json:"content"`
	CreatedAt          time.Time `json:"createdAt"`
	ParentCommentID    *int64    `json:"parentCommentId,omitempty"`
}

// LikeStatus is the current user's reaction to a video.
type LikeStatus string

const (
	LikeStatusLike    LikeStatus = "like"
	LikeStatusDislike LikeStatus = "dislike"
	LikeStatusNone    LikeStatus = "none"
)

// UnmarshalJSON accepts a bare string, JSON null, or a {"status": ...}
// wrapper. Anything empty or unrecognized collapses to LikeStatusNone.
func (s *LikeStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapped struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			// null or unknown shape
			*s = LikeStatusNone
			return nil
		}
		raw = wrapped.Status
	}

	switch LikeStatus(raw) {
	case LikeStatusLike, LikeStatusDislike:
		*s = LikeStatus(raw)
	default:
		*s = LikeStatusNone
	}
	return nil
}
