package linear

import (
	"fmt"
	"strings"
)

// GraphQLRequest is the body of every call to the Linear API.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLErrorItem is one entry of a GraphQL "errors" array.
type GraphQLErrorItem struct {
	Message string `json:"message"`
}

// IssueNode is an issue as returned by the issues query.
// Assignee is only requested by FetchAssignedIssues.
type IssueNode struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Assignee *IssueAssignee `json:"assignee,omitempty"`
}

type IssueAssignee struct {
	ID string `json:"id"`
}

// IssuesResponse is the decoded response of FetchMyIssues.
type IssuesResponse struct {
	Data struct {
		Issues struct {
			Nodes []IssueNode `json:"nodes"`
		} `json:"issues"`
	} `json:"data"`
	Errors []GraphQLErrorItem `json:"errors,omitempty"`
}

type mutationResult struct {
	Success *bool `json:"success"`
}

type issueUpdateResponse struct {
	Data *struct {
		IssueUpdate *mutationResult `json:"issueUpdate"`
	} `json:"data"`
	Errors []GraphQLErrorItem `json:"errors,omitempty"`
}

type commentCreateResponse struct {
	Data *struct {
		CommentCreate *mutationResult `json:"commentCreate"`
	} `json:"data"`
	Errors []GraphQLErrorItem `json:"errors,omitempty"`
}

// APIError is returned when Linear answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linear API error %d: %s", e.StatusCode, e.Body)
}

// GraphQLError is returned when Linear reports errors and no data.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "linear GraphQL error: " + strings.Join(e.Messages, "; ")
}

func newGraphQLError(items []GraphQLErrorItem) *GraphQLError {
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		msgs = append(msgs, it.Message)
	}
	return &GraphQLError{Messages: msgs}
}
