package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the Linear GraphQL API client.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New creates a new Linear client. The key is sent verbatim in the
// Authorization header; Linear personal API keys take no "Bearer" prefix.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("linear API key is required")
	}

	return &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{},
	}, nil
}

// WithBaseURL overrides the GraphQL endpoint.
func (c *Client) WithBaseURL(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// FetchMyIssues runs the issues query and returns the decoded response.
func (c *Client) FetchMyIssues(ctx context.Context) (IssuesResponse, error) {
	var resp IssuesResponse
	if err := c.do(ctx, GraphQLRequest{Query: myIssuesQuery}, &resp); err != nil {
		return IssuesResponse{}, err
	}
	if len(resp.Errors) > 0 && len(resp.Data.Issues.Nodes) == 0 {
		return IssuesResponse{}, newGraphQLError(resp.Errors)
	}
	return resp, nil
}

// FetchAssignedIssues lists the issues assigned to assigneeID, with their assignee.
func (c *Client) FetchAssignedIssues(ctx context.Context, assigneeID string) (IssuesResponse, error) {
	if assigneeID == "" {
		return IssuesResponse{}, fmt.Errorf("assignee ID is required")
	}

	var resp IssuesResponse
	req := GraphQLRequest{
		Query:     assignedIssuesQuery,
		Variables: map[string]interface{}{"assigneeId": assigneeID},
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return IssuesResponse{}, err
	}
	if len(resp.Errors) > 0 && len(resp.Data.Issues.Nodes) == 0 {
		return IssuesResponse{}, newGraphQLError(resp.Errors)
	}
	return resp, nil
}

// SetIssueComplete moves the issue into finalStateID.
// It returns data.issueUpdate.success; a response without that path yields false.
func (c *Client) SetIssueComplete(ctx context.Context, issueID, finalStateID string) (bool, error) {
	req := GraphQLRequest{
		Query: issueUpdateMutation,
		Variables: map[string]interface{}{
			"id":      issueID,
			"stateId": finalStateID,
		},
	}

	var resp issueUpdateResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return false, err
	}
	if resp.Data == nil && len(resp.Errors) > 0 {
		return false, newGraphQLError(resp.Errors)
	}
	if resp.Data == nil || resp.Data.IssueUpdate == nil || resp.Data.IssueUpdate.Success == nil {
		return false, nil
	}
	return *resp.Data.IssueUpdate.Success, nil
}

// AddComment posts body as a comment on the issue.
// It returns data.commentCreate.success with the same contract as SetIssueComplete.
func (c *Client) AddComment(ctx context.Context, issueID, body string) (bool, error) {
	req := GraphQLRequest{
		Query: commentCreateMutation,
		Variables: map[string]interface{}{
			"issueId": issueID,
			"body":    body,
		},
	}

	var resp commentCreateResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return false, err
	}
	if resp.Data == nil && len(resp.Errors) > 0 {
		return false, newGraphQLError(resp.Errors)
	}
	if resp.Data == nil || resp.Data.CommentCreate == nil || resp.Data.CommentCreate.Success == nil {
		return false, nil
	}
	return *resp.Data.CommentCreate.Success, nil
}

func (c *Client) do(ctx context.Context, gqlReq GraphQLRequest, out interface{}) error {
	body, err := json.Marshal(gqlReq)
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build linear request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call linear API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode linear response: %w", err)
	}
	return nil
}
