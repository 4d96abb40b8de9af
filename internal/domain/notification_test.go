package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSeenKeyStableAcrossFetches(t *testing.T) {
	reqID := uuid.New()
	item := NotificationItem{
		Type:      NotificationFriendRequest,
		CreatedAt: time.Now(),
		RequestID: &reqID,
	}
	// Re-aggregation rebuilds items from scratch; the key must not depend
	// on anything that varies between fetches.
	rebuilt := NotificationItem{
		Type:      NotificationFriendRequest,
		CreatedAt: time.Now().Add(time.Second),
		RequestID: &reqID,
	}
	if item.SeenKey() != rebuilt.SeenKey() {
		t.Errorf("friend request key changed across fetches: %q vs %q", item.SeenKey(), rebuilt.SeenKey())
	}
}

func TestSeenKeyDistinguishesEvents(t *testing.T) {
	postID := uuid.New()
	actor := Actor{ID: uuid.New(), Username: "x"}
	ts := time.Unix(1000, 0)

	like := NotificationItem{Type: NotificationLike, CreatedAt: ts, PostID: &postID, FromUser: actor}
	comment := NotificationItem{Type: NotificationComment, CreatedAt: ts, PostID: &postID, FromUser: actor}
	laterLike := NotificationItem{Type: NotificationLike, CreatedAt: ts.Add(time.Minute), PostID: &postID, FromUser: actor}

	keys := map[string]bool{}
	for _, item := range []NotificationItem{like, comment, laterLike} {
		if keys[item.SeenKey()] {
			t.Errorf("duplicate key %q", item.SeenKey())
		}
		keys[item.SeenKey()] = true
	}
}
