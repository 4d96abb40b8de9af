package domain

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequestStatus is the lifecycle state of a FriendRequest row.
// A request is created pending and transitions exactly once.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// RelationshipStatus is the relationship between two users as seen from one
// side, derived from the active FriendRequest row for the pair (if any).
type RelationshipStatus string

const (
	RelationshipNone     RelationshipStatus = "none"
	RelationshipFriends  RelationshipStatus = "friends"
	RelationshipIncoming RelationshipStatus = "incoming"
	RelationshipOutgoing RelationshipStatus = "outgoing"
)

type FriendRequest struct {
	ID          uuid.UUID           `json:"id"`
	RequesterID uuid.UUID           `json:"requester_id"`
	AddresseeID uuid.UUID           `json:"addressee_id"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
}

// Active reports whether this row blocks a new request for its pair.
// Declined rows block nothing.
func (r *FriendRequest) Active() bool {
	return r.Status == FriendRequestPending || r.Status == FriendRequestAccepted
}

// IncomingRequest is a pending request shown to its addressee.
type IncomingRequest struct {
	ID        uuid.UUID `json:"id"`
	FromUser  Actor     `json:"from_user"`
	CreatedAt time.Time `json:"created_at"`
}

// OutgoingRequest is a pending request shown to its requester.
type OutgoingRequest struct {
	ID        uuid.UUID `json:"id"`
	ToUser    Actor     `json:"to_user"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendList is the full relationship view for one user: three disjoint
// collections, each counterpart already resolved against the directory.
type FriendList struct {
	Friends  []Actor           `json:"friends"`
	Incoming []IncomingRequest `json:"incoming"`
	Outgoing []OutgoingRequest `json:"outgoing"`
}

// Candidate is a search hit annotated with the relationship status between
// the searching user and the hit.
type Candidate struct {
	Actor
	Status RelationshipStatus `json:"status"`
}
