package usecase

import (
	"context"
	"errors"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository"
)

func ignored(issueID, taskID, reason string) relay.RelayOutput {
	return relay.RelayOutput{
		Outcome: relay.OutcomeIgnored,
		IssueID: issueID,
		TaskID:  taskID,
		Reason:  reason,
	}
}

// isTracked reports whether tasks should be created for issue.
func (uc *implUseCase) isTracked(issue model.IssueInfo) bool {
	if uc.opts.AssigneeID == "" {
		return true
	}
	return issue.AssigneeID != nil && *issue.AssigneeID == uc.opts.AssigneeID
}

// retireLink drops a pair whose completion has been mirrored, so the completion event
// echoed back by the other service finds no link and is ignored.
// The mirror already succeeded; a failed delete is only logged.
func (uc *implUseCase) retireLink(ctx context.Context, link model.Link) {
	err := uc.links.DeleteLink(ctx, repository.GetLinkOptions{IssueID: link.IssueID})
	if err != nil && !errors.Is(err, repository.ErrLinkNotFound) {
		uc.l.Warnf(ctx, "uc.retireLink %s -> %s: %v", link.IssueID, link.TaskID, err)
	}
}
