package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nroux/clubhouse/internal/domain"
)

// ErrTableMissing is returned by store adapters when the underlying relation
// does not exist yet (postgres undefined_table). Callers surface it as a
// distinguished store-unavailable condition instead of a generic failure.
var ErrTableMissing = errors.New("relation does not exist")

type FriendRequestRepository interface {
	Create(ctx context.Context, req *domain.FriendRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error)
	// GetActiveByPair returns the pending or accepted row for the unordered
	// pair, in either direction, or nil when none exists.
	GetActiveByPair(ctx context.Context, userA, userB uuid.UUID) (*domain.FriendRequest, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error)
	ListIncomingPending(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error)
	ListOutgoingPending(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error)
	// ListActiveByPairs returns every pending or accepted row linking userID
	// with any id in others, in one query.
	ListActiveByPairs(ctx context.Context, userID uuid.UUID, others []uuid.UUID) ([]domain.FriendRequest, error)
	// UpdateStatusIfPending transitions the row only while it is still
	// pending and reports whether this caller won the transition.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status domain.FriendRequestStatus) (bool, error)
}

type ContentRepository interface {
	ListRecentPostIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
	ListLikes(ctx context.Context, postIDs []uuid.UUID, limit int) ([]domain.LikeEvent, error)
	ListComments(ctx context.Context, postIDs []uuid.UUID, limit int) ([]domain.CommentEvent, error)
}
