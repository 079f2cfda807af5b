package usecase

import (
	"context"

	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository"
	"issue-task-relay/pkg/linear"
)

const backfillPageSize = 100

// Backfill fetches the tracked issues and creates a task for each unlinked one.
// Failures on single issues are counted and skipped.
func (uc *implUseCase) Backfill(ctx context.Context) (relay.BackfillOutput, error) {
	resp, err := uc.fetchTrackedIssues(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Backfill fetch issues: %v", err)
		return relay.BackfillOutput{}, err
	}

	linked, err := uc.linkedIssueIDs(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Backfill ListLinks: %v", err)
		return relay.BackfillOutput{}, err
	}

	var out relay.BackfillOutput
	for _, issue := range resp.Data.Issues.Nodes {
		if !uc.isTrackedNode(issue) || linked[issue.ID] {
			out.Skipped++
			continue
		}

		task, err := uc.todoist.AddTask(ctx, issue.Title, nil, nil)
		if err != nil {
			uc.l.Errorf(ctx, "uc.Backfill AddTask %s: %v", issue.ID, err)
			out.Failed++
			continue
		}

		if _, err := uc.links.CreateLink(ctx, repository.CreateLinkOptions{IssueID: issue.ID, TaskID: task.ID}); err != nil {
			uc.l.Errorf(ctx, "uc.Backfill CreateLink %s -> %s: %v", issue.ID, task.ID, err)
			out.Failed++
			continue
		}
		linked[issue.ID] = true
		out.Created++
	}

	uc.l.Infof(ctx, "relay: backfill created=%d skipped=%d failed=%d", out.Created, out.Skipped, out.Failed)
	return out, nil
}

// fetchTrackedIssues asks Linear for the assignee's issues when tasks are limited to one user.
func (uc *implUseCase) fetchTrackedIssues(ctx context.Context) (linear.IssuesResponse, error) {
	if uc.opts.AssigneeID == "" {
		return uc.linear.FetchMyIssues(ctx)
	}
	return uc.linear.FetchAssignedIssues(ctx, uc.opts.AssigneeID)
}

// isTrackedNode applies the assignee filter to a listed issue, like isTracked does for webhooks.
func (uc *implUseCase) isTrackedNode(issue linear.IssueNode) bool {
	if uc.opts.AssigneeID == "" {
		return true
	}
	return issue.Assignee != nil && issue.Assignee.ID == uc.opts.AssigneeID
}

// linkedIssueIDs pages through the link store.
func (uc *implUseCase) linkedIssueIDs(ctx context.Context) (map[string]bool, error) {
	linked := make(map[string]bool)
	for offset := 0; ; offset += backfillPageSize {
		links, err := uc.links.ListLinks(ctx, repository.ListLinksOptions{Limit: backfillPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			linked[link.IssueID] = true
		}
		if len(links) < backfillPageSize {
			return linked, nil
		}
	}
}
