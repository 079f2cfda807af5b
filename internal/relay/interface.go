package relay

import (
	"context"

	"issue-task-relay/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// RelayIssue mirrors a Linear issue event onto Todoist.
	RelayIssue(ctx context.Context, issue model.IssueInfo) (RelayOutput, error)

	// RelayTask mirrors a Todoist task event onto Linear.
	RelayTask(ctx context.Context, task model.TaskInfo) (RelayOutput, error)

	// Backfill creates a Todoist task for every Linear issue that has none yet.
	Backfill(ctx context.Context) (BackfillOutput, error)
}
