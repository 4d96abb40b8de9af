package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/nroux/clubhouse/internal/domain"
	"github.com/nroux/clubhouse/internal/repository"
)

const (
	// Per-source fetch windows. Each source is already recency-ordered, so
	// the merged candidate set never exceeds 100 content events plus the
	// (low-volume, unbounded) incoming requests.
	recentPostsWindow = 50
	likesWindow       = 50
	commentsWindow    = 50

	DefaultFeedLimit = 40
	minFeedLimit     = 5
	maxFeedLimit     = 100
)

type NotificationService struct {
	friendRepo  repository.FriendRequestRepository
	contentRepo repository.ContentRepository
	directory   Directory
}

func NewNotificationService(
	friendRepo repository.FriendRequestRepository,
	contentRepo repository.ContentRepository,
	directory Directory,
) *NotificationService {
	return &NotificationService{
		friendRepo:  friendRepo,
		contentRepo: contentRepo,
		directory:   directory,
	}
}

// Feed merges likes and comments on the user's recent posts with incoming
// pending friend requests into one recency-ordered list. All-or-nothing: a
// failing source fails the whole feed rather than misrepresenting what is
// unread.
func (s *NotificationService) Feed(ctx context.Context, userID uuid.UUID, limit int) (*domain.NotificationFeed, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit < minFeedLimit {
		limit = minFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	postIDs, err := s.contentRepo.ListRecentPostIDs(ctx, userID, recentPostsWindow)
	if err != nil {
		return nil, storeFailure(err)
	}

	var likes []domain.LikeEvent
	var comments []domain.CommentEvent
	if len(postIDs) > 0 {
		if likes, err = s.contentRepo.ListLikes(ctx, postIDs, likesWindow); err != nil {
			return nil, storeFailure(err)
		}
		if comments, err = s.contentRepo.ListComments(ctx, postIDs, commentsWindow); err != nil {
			return nil, storeFailure(err)
		}
	}

	incoming, err := s.friendRepo.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}

	actorIDs := make(map[uuid.UUID]struct{})
	for _, req := range incoming {
		actorIDs[req.RequesterID] = struct{}{}
	}
	for _, like := range likes {
		if like.UserID != userID {
			actorIDs[like.UserID] = struct{}{}
		}
	}
	for _, comment := range comments {
		if comment.UserID != userID {
			actorIDs[comment.UserID] = struct{}{}
		}
	}

	actors, err := s.directory.Resolve(ctx, keys(actorIDs))
	if err != nil {
		return nil, directoryFailure(err)
	}

	items := make([]domain.NotificationItem, 0, len(incoming)+len(likes)+len(comments))

	for _, req := range incoming {
		items = append(items, domain.NotificationItem{
			Type:      domain.NotificationFriendRequest,
			CreatedAt: req.CreatedAt,
			RequestID: ptr(req.ID),
			FromUser:  actorOrFallback(actors, req.RequesterID, ""),
		})
	}

	for _, like := range likes {
		if like.UserID == userID {
			continue
		}
		items = append(items, domain.NotificationItem{
			Type:      domain.NotificationLike,
			CreatedAt: like.CreatedAt,
			PostID:    ptr(like.PostID),
			FromUser:  actorOrFallback(actors, like.UserID, ""),
		})
	}

	for _, comment := range comments {
		if comment.UserID == userID {
			continue
		}
		items = append(items, domain.NotificationItem{
			Type:      domain.NotificationComment,
			CreatedAt: comment.CreatedAt,
			PostID:    ptr(comment.PostID),
			Content:   comment.Content,
			FromUser:  actorOrFallback(actors, comment.UserID, comment.Username),
		})
	}

	// Sources are small and already sorted; a stable sort of the
	// concatenation keeps source order on timestamp ties.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if len(items) > limit {
		items = items[:limit]
	}

	counts := domain.NotificationCounts{Total: len(items)}
	for _, item := range items {
		switch item.Type {
		case domain.NotificationFriendRequest:
			counts.FriendRequests++
		case domain.NotificationLike:
			counts.Likes++
		case domain.NotificationComment:
			counts.Comments++
		}
	}

	return &domain.NotificationFeed{Counts: counts, Items: items}, nil
}

// actorOrFallback prefers a denormalized username captured with the event,
// then the directory record, then a bare id with the default name.
func actorOrFallback(actors map[uuid.UUID]domain.Actor, id uuid.UUID, username string) domain.Actor {
	actor, ok := actors[id]
	if !ok {
		actor = domain.Actor{ID: id, Username: "member"}
	}
	if username != "" {
		actor.Username = username
	}
	return actor
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
