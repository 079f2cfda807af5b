package usecase

import (
	"context"
	"errors"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository"
)

// RelayTask completes the Linear issue of a completed task and drops links of deleted tasks.
func (uc *implUseCase) RelayTask(ctx context.Context, task model.TaskInfo) (relay.RelayOutput, error) {
	switch task.EventName {
	case model.TaskEventCompleted:
		return uc.completeIssue(ctx, task)
	case model.TaskEventDeleted:
		return uc.unlinkTask(ctx, task)
	default:
		return ignored("", task.TaskID, "unhandled task event "+string(task.EventName)), nil
	}
}

func (uc *implUseCase) completeIssue(ctx context.Context, task model.TaskInfo) (relay.RelayOutput, error) {
	if uc.opts.FinalStateID == "" {
		return relay.RelayOutput{}, relay.ErrFinalStateMissing
	}

	link, err := uc.links.GetLink(ctx, repository.GetLinkOptions{TaskID: task.TaskID})
	if errors.Is(err, repository.ErrLinkNotFound) {
		return ignored("", task.TaskID, "task has no linked issue"), nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.completeIssue GetLink: %v", err)
		return relay.RelayOutput{}, err
	}

	ok, err := uc.linear.SetIssueComplete(ctx, link.IssueID, uc.opts.FinalStateID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.completeIssue SetIssueComplete %s: %v", link.IssueID, err)
		return relay.RelayOutput{}, err
	}
	if !ok {
		uc.l.Warnf(ctx, "uc.completeIssue: linear did not confirm update of issue %s", link.IssueID)
		return relay.RelayOutput{}, relay.ErrIssueUpdateRejected
	}

	if uc.opts.CompletionComment != "" {
		commented, err := uc.linear.AddComment(ctx, link.IssueID, uc.opts.CompletionComment)
		switch {
		case err != nil:
			uc.l.Warnf(ctx, "uc.completeIssue AddComment %s: %v", link.IssueID, err)
		case !commented:
			uc.l.Warnf(ctx, "uc.completeIssue: linear did not confirm comment on issue %s", link.IssueID)
		}
	}

	uc.retireLink(ctx, link)
	uc.l.Infof(ctx, "relay: completed issue %s from task %s", link.IssueID, task.TaskID)
	return relay.RelayOutput{Outcome: relay.OutcomeCompleted, IssueID: link.IssueID, TaskID: task.TaskID}, nil
}

func (uc *implUseCase) unlinkTask(ctx context.Context, task model.TaskInfo) (relay.RelayOutput, error) {
	err := uc.links.DeleteLink(ctx, repository.GetLinkOptions{TaskID: task.TaskID})
	if errors.Is(err, repository.ErrLinkNotFound) {
		return ignored("", task.TaskID, "task has no linked issue"), nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.unlinkTask DeleteLink: %v", err)
		return relay.RelayOutput{}, err
	}
	return relay.RelayOutput{Outcome: relay.OutcomeUnlinked, TaskID: task.TaskID}, nil
}
