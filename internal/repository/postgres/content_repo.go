package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nroux/clubhouse/internal/domain"
)

// ContentRepo reads the media tables owned by the media subsystem. Read-only:
// posts, likes and comments are written elsewhere.
type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func (r *ContentRepo) ListRecentPostIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM media_posts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, mapErr(rows.Err())
}

func (r *ContentRepo) ListLikes(ctx context.Context, postIDs []uuid.UUID, limit int) ([]domain.LikeEvent, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT post_id, user_id, created_at
		FROM media_likes
		WHERE post_id = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, postIDs, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var likes []domain.LikeEvent
	for rows.Next() {
		var like domain.LikeEvent
		if err := rows.Scan(&like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, mapErr(rows.Err())
}

func (r *ContentRepo) ListComments(ctx context.Context, postIDs []uuid.UUID, limit int) ([]domain.CommentEvent, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT post_id, user_id, COALESCE(username, ''), content, created_at
		FROM media_comments
		WHERE post_id = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, postIDs, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var comments []domain.CommentEvent
	for rows.Next() {
		var c domain.CommentEvent
		if err := rows.Scan(&c.PostID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, mapErr(rows.Err())
}
