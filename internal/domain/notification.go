package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
)

// NotificationItem is one entry of the aggregated feed. It is a tagged union:
// friend_request items carry RequestID, like and comment items carry PostID,
// comment items additionally carry Content. Items are rebuilt from the
// underlying sources on every fetch and never stored.
type NotificationItem struct {
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	RequestID *uuid.UUID       `json:"request_id,omitempty"`
	PostID    *uuid.UUID       `json:"post_id,omitempty"`
	Content   string           `json:"content,omitempty"`
	FromUser  Actor            `json:"from_user"`
}

// SeenKey derives a stable synthetic identifier for client-side read
// tracking. Items carry no persistent id of their own, so the key is built
// from the fields that make an event unique across fetches.
func (n NotificationItem) SeenKey() string {
	switch n.Type {
	case NotificationFriendRequest:
		return fmt.Sprintf("%s:%s", n.Type, n.RequestID)
	default:
		return fmt.Sprintf("%s:%s:%s:%d", n.Type, n.PostID, n.FromUser.ID, n.CreatedAt.Unix())
	}
}

// NotificationCounts summarizes a truncated feed, not the raw sources.
type NotificationCounts struct {
	Total          int `json:"total"`
	FriendRequests int `json:"friend_requests"`
	Likes          int `json:"likes"`
	Comments       int `json:"comments"`
}

type NotificationFeed struct {
	Counts NotificationCounts `json:"counts"`
	Items  []NotificationItem `json:"items"`
}

// LikeEvent is a raw like row from the content store.
type LikeEvent struct {
	PostID    uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// CommentEvent is a raw comment row from the content store. Username is the
// denormalized name captured at comment time; it wins over directory
// resolution when present.
type CommentEvent struct {
	PostID    uuid.UUID
	UserID    uuid.UUID
	Username  string
	Content   string
	CreatedAt time.Time
}
