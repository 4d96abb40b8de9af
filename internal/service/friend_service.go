package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nroux/clubhouse/internal/domain"
	"github.com/nroux/clubhouse/internal/repository"
)

var (
	ErrCannotRequestSelf  = errors.New("cannot send a friend request to yourself")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyFriends     = errors.New("you are already friends")
	ErrRequestPending     = errors.New("a pending request already exists")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrNotAddressee       = errors.New("only the addressee can respond to this request")
	ErrAlreadyHandled     = errors.New("request already handled")
	ErrInvalidDecision    = errors.New("decision must be accept or decline")
	ErrQueryTooShort      = errors.New("search query too short")
	ErrStoreUnavailable   = errors.New("relationship store unavailable")
	ErrStoreSchemaMissing = fmt.Errorf("%w: friend_requests table missing", ErrStoreUnavailable)

	ErrDirectoryUnavailable = errors.New("user directory unavailable")
)

const (
	minQueryLen      = 2
	maxSearchResults = 20
)

type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// Directory resolves user identities against the external identity provider.
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.Actor, error)
	Resolve(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Actor, error)
	Search(ctx context.Context, query string, exclude uuid.UUID, max int) ([]domain.Actor, error)
}

type FriendService struct {
	friendRepo repository.FriendRequestRepository
	directory  Directory
}

func NewFriendService(friendRepo repository.FriendRequestRepository, directory Directory) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		directory:  directory,
	}
}

// SendRequest creates a pending request from requester to target. Any active
// record for the pair, in either direction, blocks a new one; declined
// history never does.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetID uuid.UUID) (*domain.FriendRequest, error) {
	if requesterID == targetID {
		return nil, ErrCannotRequestSelf
	}

	target, err := s.directory.GetUser(ctx, targetID)
	if err != nil {
		return nil, directoryFailure(err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.friendRepo.GetActiveByPair(ctx, requesterID, targetID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if existing != nil {
		if existing.Status == domain.FriendRequestAccepted {
			return nil, ErrAlreadyFriends
		}
		return nil, ErrRequestPending
	}

	req := &domain.FriendRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		AddresseeID: targetID,
		Status:      domain.FriendRequestPending,
		CreatedAt:   time.Now(),
	}

	if err := s.friendRepo.Create(ctx, req); err != nil {
		return nil, storeFailure(err)
	}

	return req, nil
}

// Respond settles a pending request. The transition is one-shot: the store's
// conditional update decides the winner when two responses race, and the
// loser observes ErrAlreadyHandled.
func (s *FriendService) Respond(ctx context.Context, responderID, requestID uuid.UUID, decision Decision) (domain.FriendRequestStatus, error) {
	var newStatus domain.FriendRequestStatus
	switch decision {
	case DecisionAccept:
		newStatus = domain.FriendRequestAccepted
	case DecisionDecline:
		newStatus = domain.FriendRequestDeclined
	default:
		return "", ErrInvalidDecision
	}

	req, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", storeFailure(err)
	}
	if req == nil {
		return "", ErrRequestNotFound
	}
	if req.AddresseeID != responderID {
		return "", ErrNotAddressee
	}
	if req.Status != domain.FriendRequestPending {
		return "", ErrAlreadyHandled
	}

	won, err := s.friendRepo.UpdateStatusIfPending(ctx, requestID, newStatus)
	if err != nil {
		return "", storeFailure(err)
	}
	if !won {
		return "", ErrAlreadyHandled
	}

	return newStatus, nil
}

// List returns the three disjoint relationship collections for a user, each
// counterpart resolved against the directory in one batched lookup. Rows
// whose counterpart no longer resolves are dropped.
func (s *FriendService) List(ctx context.Context, userID uuid.UUID) (*domain.FriendList, error) {
	accepted, err := s.friendRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	incoming, err := s.friendRepo.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	outgoing, err := s.friendRepo.ListOutgoingPending(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}

	ids := make(map[uuid.UUID]struct{})
	for _, link := range accepted {
		ids[counterpart(&link, userID)] = struct{}{}
	}
	for _, link := range incoming {
		ids[link.RequesterID] = struct{}{}
	}
	for _, link := range outgoing {
		ids[link.AddresseeID] = struct{}{}
	}

	actors, err := s.directory.Resolve(ctx, keys(ids))
	if err != nil {
		return nil, directoryFailure(err)
	}

	list := &domain.FriendList{
		Friends:  []domain.Actor{},
		Incoming: []domain.IncomingRequest{},
		Outgoing: []domain.OutgoingRequest{},
	}

	for _, link := range accepted {
		if actor, ok := actors[counterpart(&link, userID)]; ok {
			list.Friends = append(list.Friends, actor)
		}
	}
	for _, link := range incoming {
		if actor, ok := actors[link.RequesterID]; ok {
			list.Incoming = append(list.Incoming, domain.IncomingRequest{
				ID:        link.ID,
				FromUser:  actor,
				CreatedAt: link.CreatedAt,
			})
		}
	}
	for _, link := range outgoing {
		if actor, ok := actors[link.AddresseeID]; ok {
			list.Outgoing = append(list.Outgoing, domain.OutgoingRequest{
				ID:        link.ID,
				ToUser:    actor,
				CreatedAt: link.CreatedAt,
			})
		}
	}

	return list, nil
}

// Search finds up to 20 candidates matching the query and annotates each with
// the relationship status toward the searching user, using one batched pair
// query over the whole candidate set.
func (s *FriendService) Search(ctx context.Context, userID uuid.UUID, query string) ([]domain.Candidate, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < minQueryLen {
		return nil, ErrQueryTooShort
	}

	hits, err := s.directory.Search(ctx, query, userID, maxSearchResults)
	if err != nil {
		return nil, directoryFailure(err)
	}
	if len(hits) == 0 {
		return []domain.Candidate{}, nil
	}

	hitIDs := make([]uuid.UUID, len(hits))
	for i, hit := range hits {
		hitIDs[i] = hit.ID
	}

	links, err := s.friendRepo.ListActiveByPairs(ctx, userID, hitIDs)
	if err != nil {
		return nil, storeFailure(err)
	}

	statusByUser := make(map[uuid.UUID]domain.RelationshipStatus, len(links))
	for _, link := range links {
		other := counterpart(&link, userID)
		switch {
		case link.Status == domain.FriendRequestAccepted:
			statusByUser[other] = domain.RelationshipFriends
		case link.RequesterID == userID:
			statusByUser[other] = domain.RelationshipOutgoing
		default:
			statusByUser[other] = domain.RelationshipIncoming
		}
	}

	candidates := make([]domain.Candidate, len(hits))
	for i, hit := range hits {
		status, ok := statusByUser[hit.ID]
		if !ok {
			status = domain.RelationshipNone
		}
		candidates[i] = domain.Candidate{Actor: hit, Status: status}
	}

	return candidates, nil
}

func counterpart(req *domain.FriendRequest, userID uuid.UUID) uuid.UUID {
	if req.RequesterID == userID {
		return req.AddresseeID
	}
	return req.RequesterID
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// storeFailure categorizes a store-layer error, keeping the missing-table
// condition distinguishable from other outages.
func storeFailure(err error) error {
	if errors.Is(err, repository.ErrTableMissing) {
		return fmt.Errorf("%w: %v", ErrStoreSchemaMissing, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func directoryFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
}
