package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nroux/clubhouse/internal/domain"
	"github.com/nroux/clubhouse/internal/repository"
)

type FriendRequestRepo struct {
	pool *pgxpool.Pool
}

func NewFriendRequestRepo(pool *pgxpool.Pool) *FriendRequestRepo {
	return &FriendRequestRepo{pool: pool}
}

// undefinedTable is the postgres error code for a missing relation.
const undefinedTable = "42P01"

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return fmt.Errorf("%w: %s", repository.ErrTableMissing, pgErr.Message)
	}
	return err
}

func (r *FriendRequestRepo) Create(ctx context.Context, req *domain.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, requester_id, addressee_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, req.ID, req.RequesterID, req.AddresseeID, req.Status, req.CreatedAt)
	return mapErr(err)
}

func (r *FriendRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friend_requests
		WHERE id = $1`
	var req domain.FriendRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.AddresseeID, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &req, mapErr(err)
}

func (r *FriendRequestRepo) GetActiveByPair(ctx context.Context, userA, userB uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friend_requests
		WHERE ((requester_id = $1 AND addressee_id = $2) OR (requester_id = $2 AND addressee_id = $1))
			AND status IN ('pending', 'accepted')
		ORDER BY created_at DESC
		LIMIT 1`
	var req domain.FriendRequest
	err := r.pool.QueryRow(ctx, query, userA, userB).Scan(
		&req.ID, &req.RequesterID, &req.AddresseeID, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &req, mapErr(err)
}

func (r *FriendRequestRepo) ListAccepted(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friend_requests
		WHERE status = 'accepted' AND (requester_id = $1 OR addressee_id = $1)
		ORDER BY updated_at DESC NULLS LAST`
	return r.list(ctx, query, userID)
}

func (r *FriendRequestRepo) ListIncomingPending(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friend_requests
		WHERE status = 'pending' AND addressee_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *FriendRequestRepo) ListOutgoingPending(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friend_requests
		WHERE status = 'pending' AND requester_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *FriendRequestRepo) ListActiveByPairs(ctx context.Context, userID uuid.UUID, others []uuid.UUID) ([]domain.FriendRequest, error) {
	if len(others) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friend_requests
		WHERE ((requester_id = $1 AND addressee_id = ANY($2)) OR (addressee_id = $1 AND requester_id = ANY($2)))
			AND status IN ('pending', 'accepted')`
	return r.list(ctx, query, userID, others)
}

func (r *FriendRequestRepo) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status domain.FriendRequestStatus) (bool, error) {
	query := `
		UPDATE friend_requests
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FriendRequestRepo) list(ctx context.Context, query string, args ...any) ([]domain.FriendRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var reqs []domain.FriendRequest
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(
			&req.ID, &req.RequesterID, &req.AddresseeID, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, mapErr(rows.Err())
}
