package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/apiclient"
)

// CreateTaskInput is the shape the create endpoint expects.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	AssignedTo  string `json:"assigned_to"`
}

// Client wraps the task endpoints of the remote API.
type Client struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewClient(api *apiclient.Client, logger *zap.Logger) *Client {
	return &Client{api: api, logger: logger}
}

// List fetches one page of tasks. The token is optional here; the service
// scopes results to the bearer when one is supplied. Filtering and sorting
// are entirely the server's job.
func (c *Client) List(ctx context.Context, token string, filters models.TaskFilters, page, pageSize int) (models.TaskPage, error) {
	query := url.Values{}
	if filters.Priority != "" {
		query.Set("priority", filters.Priority)
	}
	if filters.SortByDueDate != "" {
		query.Set("sortByDueDate", filters.SortByDueDate)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	// Older deployments answer with a bare task array instead of the
	// paginated envelope, so decode into raw JSON first.
	var raw json.RawMessage
	if err := c.api.Do(ctx, http.MethodGet, "/tasks/", query, token, nil, &raw); err != nil {
		return models.TaskPage{}, err
	}

	var result models.TaskPage
	if err := json.Unmarshal(raw, &result); err != nil {
		var list []models.Task
		if err := json.Unmarshal(raw, &list); err != nil {
			return models.TaskPage{}, err
		}
		result = models.TaskPage{Tasks: list, TotalPages: 1}
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	return result, nil
}

// Create adds a task on behalf of the bearer.
func (c *Client) Create(ctx context.Context, token string, input CreateTaskInput) (models.Task, error) {
	var created models.Task
	if err := c.api.Do(ctx, http.MethodPost, "/tasks/create", nil, token, input, &created); err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// Update patches a task. Only the supplied fields travel in the body;
// everything else on the task is untouched.
func (c *Client) Update(ctx context.Context, token, id string, fields map[string]any) (models.Task, error) {
	var updated models.Task
	if err := c.api.Do(ctx, http.MethodPatch, "/tasks/"+id, nil, token, fields, &updated); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/tasks/"+id, nil, token, nil, nil)
}

// Complete marks a task done via the dedicated endpoint.
func (c *Client) Complete(ctx context.Context, token, id string) error {
	return c.api.Do(ctx, http.MethodPut, "/tasks/complete/"+id, nil, token, struct{}{}, nil)
}
