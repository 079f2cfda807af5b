package linear

import "context"

// ILinear defines the Linear GraphQL operations used by the relay.
// Implementations are safe for concurrent use.
type ILinear interface {
	FetchMyIssues(ctx context.Context) (IssuesResponse, error)
	FetchAssignedIssues(ctx context.Context, assigneeID string) (IssuesResponse, error)
	SetIssueComplete(ctx context.Context, issueID, finalStateID string) (bool, error)
	AddComment(ctx context.Context, issueID, body string) (bool, error)
}
