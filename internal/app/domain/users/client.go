package users

import (
	"context"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/apiclient"
)

const usersCacheKey = "users"

// ChangePasswordInput matches the change-password endpoint's body.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Client wraps the user and profile endpoints of the remote API. The user
// listing feeds the assignee dropdown on every admin dashboard render, so
// it is cached briefly.
type Client struct {
	api    *apiclient.Client
	cache  *cache.Cache
	logger *zap.Logger
}

func NewClient(api *apiclient.Client, logger *zap.Logger) *Client {
	return &Client{
		api:    api,
		cache:  cache.New(time.Minute, 5*time.Minute),
		logger: logger,
	}
}

// List returns all known accounts.
func (c *Client) List(ctx context.Context, token string) ([]models.User, error) {
	if cached, found := c.cache.Get(usersCacheKey); found {
		return cached.([]models.User), nil
	}

	var list []models.User
	if err := c.api.Do(ctx, http.MethodGet, "/users/", nil, token, nil, &list); err != nil {
		return nil, err
	}

	c.cache.SetDefault(usersCacheKey, list)
	return list, nil
}

// Assignable returns the accounts a task may be assigned to. Superusers are
// filtered out client-side; the server enforces the same rule on create.
func (c *Client) Assignable(ctx context.Context, token string) ([]models.User, error) {
	list, err := c.List(ctx, token)
	if err != nil {
		return nil, err
	}

	assignable := make([]models.User, 0, len(list))
	for _, u := range list {
		if u.Role != models.RoleSuperuser {
			assignable = append(assignable, u)
		}
	}
	return assignable, nil
}

// Profile reads the bearer's profile.
func (c *Client) Profile(ctx context.Context, token string) (models.Profile, error) {
	var profile models.Profile
	if err := c.api.Do(ctx, http.MethodGet, "/users/profile", nil, token, nil, &profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile writes name and email.
func (c *Client) UpdateProfile(ctx context.Context, token string, profile models.Profile) error {
	return c.api.Do(ctx, http.MethodPut, "/users/profile", nil, token, profile, nil)
}

// ChangePassword swaps the bearer's password.
func (c *Client) ChangePassword(ctx context.Context, token string, input ChangePasswordInput) error {
	return c.api.Do(ctx, http.MethodPut, "/users/change-password", nil, token, input, nil)
}
