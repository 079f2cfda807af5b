package usecase

import (
	"context"
	"sort"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay/repository"
	"issue-task-relay/pkg/linear"
	pkgLog "issue-task-relay/pkg/log"
	"issue-task-relay/pkg/todoist"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLinear struct {
	issues      linear.IssuesResponse
	fetchErr    error
	assignees   []string // FetchAssignedIssues arguments
	completeOK  bool
	completeErr error
	commentOK   bool
	commentErr  error

	completed []string // "issueID:stateID"
	comments  []string // "issueID:body"
}

func (m *mockLinear) FetchMyIssues(ctx context.Context) (linear.IssuesResponse, error) {
	return m.issues, m.fetchErr
}
func (m *mockLinear) FetchAssignedIssues(ctx context.Context, assigneeID string) (linear.IssuesResponse, error) {
	m.assignees = append(m.assignees, assigneeID)
	return m.issues, m.fetchErr
}
func (m *mockLinear) SetIssueComplete(ctx context.Context, issueID, finalStateID string) (bool, error) {
	m.completed = append(m.completed, issueID+":"+finalStateID)
	return m.completeOK, m.completeErr
}
func (m *mockLinear) AddComment(ctx context.Context, issueID, body string) (bool, error) {
	m.comments = append(m.comments, issueID+":"+body)
	return m.commentOK, m.commentErr
}

type addTaskCall struct {
	name     string
	dueDate  *string
	priority *int
}

type updateTaskCall struct {
	taskID string
	input  todoist.UpdateTaskInput
}

type mockTodoist struct {
	nextID    string
	addErr    error
	addErrFor map[string]error
	closeErr  error
	updateErr error

	added   []addTaskCall
	closed  []string
	updated []updateTaskCall
}

func (m *mockTodoist) AddTask(ctx context.Context, name string, dueDate *string, priority *int) (todoist.Task, error) {
	m.added = append(m.added, addTaskCall{name: name, dueDate: dueDate, priority: priority})
	if err := m.addErrFor[name]; err != nil {
		return todoist.Task{}, err
	}
	if m.addErr != nil {
		return todoist.Task{}, m.addErr
	}
	id := m.nextID
	if id == "" {
		id = "T-" + name
	}
	return todoist.Task{ID: id, Content: name}, nil
}
func (m *mockTodoist) CompleteTask(ctx context.Context, taskID string) error {
	m.closed = append(m.closed, taskID)
	return m.closeErr
}
func (m *mockTodoist) UpdateTask(ctx context.Context, taskID string, input todoist.UpdateTaskInput) (todoist.Task, error) {
	m.updated = append(m.updated, updateTaskCall{taskID: taskID, input: input})
	return todoist.Task{ID: taskID}, m.updateErr
}

// mockLinks is an in-memory repository.LinkRepository.
type mockLinks struct {
	byIssue map[string]string
	getErr  error
	listErr error
}

func newMockLinks(pairs ...string) *mockLinks {
	m := &mockLinks{byIssue: map[string]string{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.byIssue[pairs[i]] = pairs[i+1]
	}
	return m
}

func (m *mockLinks) CreateLink(ctx context.Context, opt repository.CreateLinkOptions) (model.Link, error) {
	if _, ok := m.byIssue[opt.IssueID]; ok {
		return model.Link{}, repository.ErrLinkExists
	}
	m.byIssue[opt.IssueID] = opt.TaskID
	return model.Link{IssueID: opt.IssueID, TaskID: opt.TaskID}, nil
}
func (m *mockLinks) GetLink(ctx context.Context, opt repository.GetLinkOptions) (model.Link, error) {
	if m.getErr != nil {
		return model.Link{}, m.getErr
	}
	for issueID, taskID := range m.byIssue {
		if issueID == opt.IssueID || (opt.TaskID != "" && taskID == opt.TaskID) {
			return model.Link{IssueID: issueID, TaskID: taskID}, nil
		}
	}
	return model.Link{}, repository.ErrLinkNotFound
}
func (m *mockLinks) ListLinks(ctx context.Context, opt repository.ListLinksOptions) ([]model.Link, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]string, 0, len(m.byIssue))
	for issueID := range m.byIssue {
		ids = append(ids, issueID)
	}
	sort.Strings(ids)

	links := make([]model.Link, 0)
	for i := opt.Offset; i < len(ids) && len(links) < opt.Limit; i++ {
		links = append(links, model.Link{IssueID: ids[i], TaskID: m.byIssue[ids[i]]})
	}
	return links, nil
}
func (m *mockLinks) DeleteLink(ctx context.Context, opt repository.GetLinkOptions) error {
	link, err := m.GetLink(ctx, opt)
	if err != nil {
		return err
	}
	delete(m.byIssue, link.IssueID)
	return nil
}

var nopLogger = pkgLog.NewNop()

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
