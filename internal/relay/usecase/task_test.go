package usecase

import (
	"context"
	"errors"
	"testing"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay"
	"issue-task-relay/pkg/linear"
)

func TestRelayTaskCompleted(t *testing.T) {
	ctx := context.Background()
	opts := relay.Options{FinalStateID: "state-done", CompletionComment: "Completed in Todoist"}
	completed := model.TaskInfo{EventName: model.TaskEventCompleted, TaskID: "T1", Completed: true}

	t.Run("Completes Issue And Comments", func(t *testing.T) {
		lin := &mockLinear{completeOK: true, commentOK: true}
		links := newMockLinks("I1", "T1")
		uc := New(nopLogger, lin, &mockTodoist{}, links, opts)

		out, err := uc.RelayTask(ctx, completed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != relay.OutcomeCompleted || out.IssueID != "I1" {
			t.Errorf("unexpected output: %+v", out)
		}
		if len(lin.completed) != 1 || lin.completed[0] != "I1:state-done" {
			t.Errorf("unexpected SetIssueComplete calls: %v", lin.completed)
		}
		if len(lin.comments) != 1 || lin.comments[0] != "I1:Completed in Todoist" {
			t.Errorf("unexpected AddComment calls: %v", lin.comments)
		}
		if _, ok := links.byIssue["I1"]; ok {
			t.Error("expected link retired after completion")
		}
	})

	t.Run("Completion Echo From Linear Is Ignored", func(t *testing.T) {
		lin := &mockLinear{completeOK: true, commentOK: true}
		td := &mockTodoist{}
		uc := New(nopLogger, lin, td, newMockLinks("I1", "T1"), opts)

		if _, err := uc.RelayTask(ctx, completed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err := uc.RelayIssue(ctx, model.IssueInfo{
			Action: model.IssueActionUpdate,
			ID:     "I1",
			State:  model.IssueState{Name: "Done", Type: model.StateTypeCompleted},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != relay.OutcomeIgnored || len(td.closed) != 0 {
			t.Errorf("expected echo ignored, got %+v closed=%v", out, td.closed)
		}
	})

	t.Run("No Comment When Disabled", func(t *testing.T) {
		lin := &mockLinear{completeOK: true}
		uc := New(nopLogger, lin, &mockTodoist{}, newMockLinks("I1", "T1"), relay.Options{FinalStateID: "s"})

		if _, err := uc.RelayTask(ctx, completed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(lin.comments) != 0 {
			t.Errorf("expected no comments, got %v", lin.comments)
		}
	})

	t.Run("Rejected Update", func(t *testing.T) {
		lin := &mockLinear{completeOK: false}
		uc := New(nopLogger, lin, &mockTodoist{}, newMockLinks("I1", "T1"), opts)

		_, err := uc.RelayTask(ctx, completed)
		if !errors.Is(err, relay.ErrIssueUpdateRejected) {
			t.Errorf("expected ErrIssueUpdateRejected, got %v", err)
		}
		if len(lin.comments) != 0 {
			t.Error("expected no comment after a rejected update")
		}
	})

	t.Run("Comment Failure Is Not Fatal", func(t *testing.T) {
		lin := &mockLinear{completeOK: true, commentErr: errors.New("boom")}
		uc := New(nopLogger, lin, &mockTodoist{}, newMockLinks("I1", "T1"), opts)

		out, err := uc.RelayTask(ctx, completed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != relay.OutcomeCompleted {
			t.Errorf("unexpected output: %+v", out)
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		wantErr := &linear.APIError{StatusCode: 500, Body: "oops"}
		uc := New(nopLogger, &mockLinear{completeErr: wantErr}, &mockTodoist{}, newMockLinks("I1", "T1"), opts)

		_, err := uc.RelayTask(ctx, completed)
		var apiErr *linear.APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("expected linear.APIError, got %v", err)
		}
	})

	t.Run("Unlinked Task", func(t *testing.T) {
		lin := &mockLinear{}
		uc := New(nopLogger, lin, &mockTodoist{}, newMockLinks(), opts)

		out, err := uc.RelayTask(ctx, completed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != relay.OutcomeIgnored || len(lin.completed) != 0 {
			t.Errorf("expected ignored, got %+v", out)
		}
	})

	t.Run("Final State Missing", func(t *testing.T) {
		uc := New(nopLogger, &mockLinear{}, &mockTodoist{}, newMockLinks("I1", "T1"), relay.Options{})

		_, err := uc.RelayTask(ctx, completed)
		if !errors.Is(err, relay.ErrFinalStateMissing) {
			t.Errorf("expected ErrFinalStateMissing, got %v", err)
		}
	})
}

func TestRelayTaskDeleted(t *testing.T) {
	links := newMockLinks("I1", "T1")
	uc := New(nopLogger, &mockLinear{}, &mockTodoist{}, links, relay.Options{})

	out, err := uc.RelayTask(context.Background(), model.TaskInfo{EventName: model.TaskEventDeleted, TaskID: "T1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Outcome != relay.OutcomeUnlinked || len(links.byIssue) != 0 {
		t.Errorf("expected unlinked, got %+v", out)
	}
}

func TestRelayTaskIgnoredEvents(t *testing.T) {
	events := []model.TaskEventName{
		model.TaskEventAdded,
		model.TaskEventUpdated,
		model.TaskEventUncompleted,
	}

	for _, ev := range events {
		t.Run(string(ev), func(t *testing.T) {
			lin := &mockLinear{}
			uc := New(nopLogger, lin, &mockTodoist{}, newMockLinks("I1", "T1"), relay.Options{FinalStateID: "s"})

			out, err := uc.RelayTask(context.Background(), model.TaskInfo{EventName: ev, TaskID: "T1"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Outcome != relay.OutcomeIgnored || len(lin.completed) != 0 {
				t.Errorf("expected ignored, got %+v", out)
			}
		})
	}
}
