package todoist_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"issue-task-relay/pkg/priority"
	"issue-task-relay/pkg/todoist"
)

type captured struct {
	method string
	path   string
	auth   string
	body   map[string]interface{}
}

func newTestServer(t *testing.T, status int, reply string, got *captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		got.body = nil
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &got.body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
}

func newClient(t *testing.T, url string) *todoist.Client {
	t.Helper()
	c, err := todoist.New("td-key", "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c.WithBaseURL(url)
}

func TestNew(t *testing.T) {
	if _, err := todoist.New("", "proj"); err == nil {
		t.Error("expected error for empty API key")
	}
	if _, err := todoist.New("key", ""); err == nil {
		t.Error("expected error for empty project ID")
	}
}

func TestAddTask(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusOK, `{"id":"T1","content":"Fix bug","project_id":"proj-1","priority":1}`, &got)
		defer ts.Close()

		task, err := newClient(t, ts.URL).AddTask(context.Background(), "Fix bug", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID != "T1" {
			t.Errorf("unexpected task: %+v", task)
		}
		if got.method != http.MethodPost || got.path != "/tasks" {
			t.Errorf("unexpected request %s %s", got.method, got.path)
		}
		if got.auth != "Bearer td-key" {
			t.Errorf("unexpected Authorization header %q", got.auth)
		}
		if got.body["content"] != "Fix bug" || got.body["project_id"] != "proj-1" {
			t.Errorf("unexpected body: %v", got.body)
		}
		due, ok := got.body["due_date"]
		if !ok || due != nil {
			t.Errorf("expected due_date: null, got %v (present=%v)", due, ok)
		}
		prio, ok := got.body["priority"]
		if !ok || prio != nil {
			t.Errorf("expected priority: null, got %v (present=%v)", prio, ok)
		}
	})

	t.Run("Mapped Priority And Due Date", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusOK, `{"id":"T2"}`, &got)
		defer ts.Close()

		due := "2024-05-01"
		_, err := newClient(t, ts.URL).AddTask(context.Background(), "Ship", &due, priority.Of(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.body["due_date"] != "2024-05-01" {
			t.Errorf("unexpected due_date: %v", got.body["due_date"])
		}
		if got.body["priority"] != float64(1) {
			t.Errorf("expected priority 1, got %v", got.body["priority"])
		}
	})

	t.Run("Empty Due Date Is Null", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusOK, `{"id":"T3"}`, &got)
		defer ts.Close()

		empty := ""
		if _, err := newClient(t, ts.URL).AddTask(context.Background(), "x", &empty, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.body["due_date"] != nil {
			t.Errorf("expected due_date null, got %v", got.body["due_date"])
		}
	})

	t.Run("API Error", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusBadRequest, `invalid project`, &got)
		defer ts.Close()

		_, err := newClient(t, ts.URL).AddTask(context.Background(), "x", nil, nil)
		var apiErr *todoist.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest || apiErr.Body != "invalid project" {
			t.Fatalf("expected 400 APIError, got %v", err)
		}
	})
}

func TestCompleteTask(t *testing.T) {
	t.Run("No Content", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusNoContent, ``, &got)
		defer ts.Close()

		if err := newClient(t, ts.URL).CompleteTask(context.Background(), "T1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.method != http.MethodPost || got.path != "/tasks/T1/close" {
			t.Errorf("unexpected request %s %s", got.method, got.path)
		}
		if got.body != nil {
			t.Errorf("expected empty body, got %v", got.body)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusNotFound, `Task not found`, &got)
		defer ts.Close()

		err := newClient(t, ts.URL).CompleteTask(context.Background(), "missing")
		var apiErr *todoist.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 APIError, got %v", err)
		}
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("Without Priority", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusOK, `{"id":"T1","content":"x"}`, &got)
		defer ts.Close()

		content := "x"
		task, err := newClient(t, ts.URL).UpdateTask(context.Background(), "T1", todoist.UpdateTaskInput{Content: &content})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Content != "x" {
			t.Errorf("unexpected task: %+v", task)
		}
		if got.path != "/tasks/T1" {
			t.Errorf("unexpected path %s", got.path)
		}
		if _, ok := got.body["priority"]; ok {
			t.Errorf("expected no priority key, got body %v", got.body)
		}
		if _, ok := got.body["due_date"]; ok {
			t.Errorf("expected no due_date key, got body %v", got.body)
		}
		if got.body["content"] != "x" {
			t.Errorf("unexpected content: %v", got.body["content"])
		}
	})

	t.Run("With Priority", func(t *testing.T) {
		var got captured
		ts := newTestServer(t, http.StatusOK, `{"id":"T1","priority":4}`, &got)
		defer ts.Close()

		_, err := newClient(t, ts.URL).UpdateTask(context.Background(), "T1", todoist.UpdateTaskInput{Priority: priority.Of(2)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.body["priority"] != float64(4) {
			t.Errorf("expected mapped priority 4, got %v", got.body["priority"])
		}
		if _, ok := got.body["content"]; ok {
			t.Errorf("expected no content key, got body %v", got.body)
		}
	})
}
