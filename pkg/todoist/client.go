package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"issue-task-relay/pkg/priority"
)

// Client is the Todoist REST v2 API client.
type Client struct {
	baseURL    string
	projectID  string
	httpClient *http.Client
}

// New creates a Todoist client that files new tasks under projectID.
// The API key is attached as "Authorization: Bearer <key>" by an oauth2 transport.
func New(apiKey, projectID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("todoist API key is required")
	}
	if projectID == "" {
		return nil, fmt.Errorf("todoist project ID is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	return &Client{
		baseURL:    DefaultBaseURL,
		projectID:  projectID,
		httpClient: oauth2.NewClient(context.Background(), ts),
	}, nil
}

// WithBaseURL overrides the default Todoist API base URL.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// AddTask creates a task in the configured project.
// priority is on the Linear scale and is mapped before sending.
func (c *Client) AddTask(ctx context.Context, name string, dueDate *string, prio *int) (Task, error) {
	if dueDate != nil && *dueDate == "" {
		dueDate = nil
	}

	req := AddTaskRequest{
		Content:   name,
		ProjectID: c.projectID,
		DueDate:   dueDate,
		Priority:  priority.Map(prio),
	}

	var task Task
	if err := c.post(ctx, "/tasks", req, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// CompleteTask closes the task. Todoist answers 204 with no body.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	return c.post(ctx, fmt.Sprintf("/tasks/%s/close", url.PathEscape(taskID)), nil, nil)
}

// UpdateTask applies the non-nil fields of input to the task.
// A priority is only sent when input.Priority is set.
func (c *Client) UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput) (Task, error) {
	req := updateTaskRequest{
		Content: input.Content,
		DueDate: input.DueDate,
	}
	if input.Priority != nil {
		req.Priority = priority.Map(input.Priority)
	}

	var task Task
	if err := c.post(ctx, fmt.Sprintf("/tasks/%s", url.PathEscape(taskID)), req, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal todoist request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build todoist request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call todoist API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode todoist response: %w", err)
	}
	return nil
}
