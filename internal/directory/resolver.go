package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nroux/clubhouse/internal/domain"
)

// Resolve maps the given ids to actor records in one bulk listing. Ids that
// no longer resolve are simply absent from the result.
func (c *Client) Resolve(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Actor, error) {
	resolved := make(map[uuid.UUID]domain.Actor, len(ids))
	if len(ids) == 0 {
		return resolved, nil
	}

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	actors, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, actor := range actors {
		if _, ok := wanted[actor.ID]; ok {
			resolved[actor.ID] = actor
		}
	}
	return resolved, nil
}

// Search returns up to max actors whose username or email contains the
// already-normalized query, excluding the given user. Hits keep directory
// iteration order; no further ranking is applied.
func (c *Client) Search(ctx context.Context, query string, exclude uuid.UUID, max int) ([]domain.Actor, error) {
	actors, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var hits []domain.Actor
	for _, actor := range actors {
		if actor.ID == exclude {
			continue
		}
		if !strings.Contains(strings.ToLower(actor.Username), query) &&
			!strings.Contains(strings.ToLower(actor.Email), query) {
			continue
		}
		hits = append(hits, actor)
		if len(hits) == max {
			break
		}
	}
	return hits, nil
}
