package usecase

import (
	"context"
	"errors"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository"
	"issue-task-relay/pkg/todoist"
)

// RelayIssue creates, updates, completes or unlinks the task paired with issue.
func (uc *implUseCase) RelayIssue(ctx context.Context, issue model.IssueInfo) (relay.RelayOutput, error) {
	switch issue.Action {
	case model.IssueActionCreate:
		return uc.createTask(ctx, issue)
	case model.IssueActionUpdate:
		return uc.updateTask(ctx, issue)
	case model.IssueActionRemove:
		return uc.unlinkIssue(ctx, issue)
	default:
		return ignored(issue.ID, "", "unsupported issue action "+issue.Action), nil
	}
}

func (uc *implUseCase) createTask(ctx context.Context, issue model.IssueInfo) (relay.RelayOutput, error) {
	if !uc.isTracked(issue) {
		return ignored(issue.ID, "", "issue not assigned to tracked user"), nil
	}

	// Lookup, task creation and link insert must not interleave for one issue.
	// Deliveries handled by another process are not covered.
	unlock := uc.issueLocks.Lock(issue.ID)
	defer unlock()

	existing, err := uc.links.GetLink(ctx, repository.GetLinkOptions{IssueID: issue.ID})
	switch {
	case err == nil:
		return ignored(issue.ID, existing.TaskID, "issue already linked"), nil
	case !errors.Is(err, repository.ErrLinkNotFound):
		uc.l.Errorf(ctx, "uc.createTask GetLink: %v", err)
		return relay.RelayOutput{}, err
	}

	task, err := uc.todoist.AddTask(ctx, issue.Title, issue.DueDate, issue.Priority)
	if err != nil {
		uc.l.Errorf(ctx, "uc.createTask AddTask: %v", err)
		return relay.RelayOutput{}, err
	}

	if _, err := uc.links.CreateLink(ctx, repository.CreateLinkOptions{IssueID: issue.ID, TaskID: task.ID}); err != nil {
		uc.l.Errorf(ctx, "uc.createTask CreateLink %s -> %s: %v", issue.ID, task.ID, err)
		return relay.RelayOutput{}, err
	}

	uc.l.Infof(ctx, "relay: created task %s for issue %s", task.ID, issue.ID)
	return relay.RelayOutput{Outcome: relay.OutcomeCreated, IssueID: issue.ID, TaskID: task.ID}, nil
}

func (uc *implUseCase) updateTask(ctx context.Context, issue model.IssueInfo) (relay.RelayOutput, error) {
	link, err := uc.links.GetLink(ctx, repository.GetLinkOptions{IssueID: issue.ID})
	if errors.Is(err, repository.ErrLinkNotFound) {
		return ignored(issue.ID, "", "issue has no linked task"), nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.updateTask GetLink: %v", err)
		return relay.RelayOutput{}, err
	}

	if issue.IsCompleted() {
		if err := uc.todoist.CompleteTask(ctx, link.TaskID); err != nil {
			uc.l.Errorf(ctx, "uc.updateTask CompleteTask %s: %v", link.TaskID, err)
			return relay.RelayOutput{}, err
		}
		uc.retireLink(ctx, link)
		uc.l.Infof(ctx, "relay: completed task %s for issue %s", link.TaskID, issue.ID)
		return relay.RelayOutput{Outcome: relay.OutcomeCompleted, IssueID: issue.ID, TaskID: link.TaskID}, nil
	}

	input := todoist.UpdateTaskInput{
		DueDate:  issue.DueDate,
		Priority: issue.Priority,
	}
	if issue.Title != "" {
		title := issue.Title
		input.Content = &title
	}

	if _, err := uc.todoist.UpdateTask(ctx, link.TaskID, input); err != nil {
		uc.l.Errorf(ctx, "uc.updateTask UpdateTask %s: %v", link.TaskID, err)
		return relay.RelayOutput{}, err
	}

	uc.l.Infof(ctx, "relay: updated task %s for issue %s", link.TaskID, issue.ID)
	return relay.RelayOutput{Outcome: relay.OutcomeUpdated, IssueID: issue.ID, TaskID: link.TaskID}, nil
}

func (uc *implUseCase) unlinkIssue(ctx context.Context, issue model.IssueInfo) (relay.RelayOutput, error) {
	err := uc.links.DeleteLink(ctx, repository.GetLinkOptions{IssueID: issue.ID})
	if errors.Is(err, repository.ErrLinkNotFound) {
		return ignored(issue.ID, "", "issue has no linked task"), nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.unlinkIssue DeleteLink: %v", err)
		return relay.RelayOutput{}, err
	}
	return relay.RelayOutput{Outcome: relay.OutcomeUnlinked, IssueID: issue.ID}, nil
}
