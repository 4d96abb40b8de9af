package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nroux/clubhouse/internal/domain"
)

// perPage matches the largest page the identity provider's admin API serves;
// listing loops until a short page.
const perPage = 1000

const fallbackUsername = "member"

// Client talks to the identity provider's admin surface. The provider owns
// every account; this backend keeps no user table of its own and resolves
// display records on demand, once per request cycle.
type Client struct {
	BaseURL    string
	ServiceKey string
	HTTPClient *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

type account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

func (a account) actor() domain.Actor {
	username := a.UserMetadata.Username
	if username == "" {
		if at := strings.Index(a.Email, "@"); at > 0 {
			username = a.Email[:at]
		}
	}
	if username == "" {
		username = fallbackUsername
	}
	return domain.Actor{ID: a.ID, Email: a.Email, Username: username}
}

// GetUser fetches one account by id. Returns nil when the id does not
// resolve to an active account.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*domain.Actor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/admin/users/%s", c.BaseURL, id), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory get user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory get user: unexpected status %d", resp.StatusCode)
	}

	var acc account
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		return nil, fmt.Errorf("directory get user: %w", err)
	}

	actor := acc.actor()
	return &actor, nil
}

// ListUsers returns the whole user population. The admin API offers no per-id
// batch endpoint, so search and actor resolution both start from this listing.
func (c *Client) ListUsers(ctx context.Context) ([]domain.Actor, error) {
	var actors []domain.Actor

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/admin/users?page=%d&per_page=%d", c.BaseURL, page, perPage)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		c.authorize(req)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("directory list users: %w", err)
		}

		var body struct {
			Users []account `json:"users"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("directory list users: unexpected status %d", resp.StatusCode)
		}
		if err != nil {
			return nil, fmt.Errorf("directory list users: %w", err)
		}

		for _, acc := range body.Users {
			actors = append(actors, acc.actor())
		}

		if len(body.Users) < perPage {
			return actors, nil
		}
	}
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	req.Header.Set("apikey", c.ServiceKey)
}
