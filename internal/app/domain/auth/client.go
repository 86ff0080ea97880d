package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/apiclient"
)

// LoginResult is the login endpoint's payload. Role travels alongside the
// token; the Session Store refuses to persist one without the other.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// Client wraps the auth endpoints of the remote API.
type Client struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewClient(api *apiclient.Client, logger *zap.Logger) *Client {
	return &Client{api: api, logger: logger}
}

// Register creates an account. The server remains the authority on
// uniqueness and any rule the form did not pre-check.
func (c *Client) Register(ctx context.Context, creds models.Credentials) error {
	return c.api.Do(ctx, http.MethodPost, "/users/register", nil, "", creds, nil)
}

// Login exchanges credentials for a bearer token and role. The caller is
// responsible for feeding the result into the Session Store.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (LoginResult, error) {
	var result LoginResult
	if err := c.api.Do(ctx, http.MethodPost, "/users/login", nil, "", creds, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}
