package webhook_test

import (
	"errors"
	"reflect"
	"testing"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/webhook"
)

func TestParseTaskEvent(t *testing.T) {
	parser := webhook.NewTodoistParser()

	t.Run("Full Payload", func(t *testing.T) {
		payload := []byte(`{
			"event_name": "item:updated",
			"user_id": "2671355",
			"event_data": {
				"id": "6X7rM8997g3RQmvh",
				"content": "Buy milk",
				"project_id": "2203306141",
				"checked": 0,
				"labels": ["errand"],
				"priority": 4,
				"due": {
					"date": "2024-05-01",
					"is_recurring": true,
					"string": "every wed",
					"timezone": "Europe/Moscow"
				},
				"responsible_uid": 2671362
			}
		}`)

		task, err := parser.ParseTaskEvent(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.EventName != model.TaskEventUpdated || task.TaskID != "6X7rM8997g3RQmvh" {
			t.Errorf("unexpected task: %+v", task)
		}
		if *task.Content != "Buy milk" || *task.ProjectID != "2203306141" {
			t.Errorf("unexpected content/project: %v %v", task.Content, task.ProjectID)
		}
		if task.Completed {
			t.Error("expected open task")
		}
		if !reflect.DeepEqual(task.Labels, []string{"errand"}) || *task.Priority != 4 {
			t.Errorf("unexpected labels/priority: %v %v", task.Labels, task.Priority)
		}
		if task.DueDate == nil || *task.DueDate.Date != "2024-05-01" || !task.DueDate.Recurring ||
			task.DueDate.String != "every wed" || *task.DueDate.Timezone != "Europe/Moscow" || task.DueDate.Datetime != nil {
			t.Errorf("unexpected due: %+v", task.DueDate)
		}
		if task.Assignee == nil || *task.Assignee != "2671362" {
			t.Errorf("unexpected assignee: %v", task.Assignee)
		}
	})

	t.Run("Numeric ID", func(t *testing.T) {
		task, err := parser.ParseTaskEvent([]byte(`{"event_name":"item:added","event_data":{"id":2995104339}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.TaskID != "2995104339" {
			t.Errorf("expected decimal string id, got %q", task.TaskID)
		}
	})

	t.Run("Legacy Recurring Key And Null Fields", func(t *testing.T) {
		task, err := parser.ParseTaskEvent([]byte(`{"event_name":"item:added","event_data":{"id":"T1","project_id":null,"responsible_uid":null,"due":{"date":null,"recurring":true,"string":""}}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ProjectID != nil || task.Assignee != nil {
			t.Errorf("expected nil project and assignee, got %+v", task)
		}
		if task.DueDate == nil || task.DueDate.Date != nil || !task.DueDate.Recurring {
			t.Errorf("unexpected due: %+v", task.DueDate)
		}
	})

	t.Run("Null Due", func(t *testing.T) {
		task, err := parser.ParseTaskEvent([]byte(`{"event_name":"item:added","event_data":{"id":"T1","due":null}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.DueDate != nil {
			t.Errorf("expected nil due, got %+v", task.DueDate)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		payload := []byte(`{"event_name":"item:completed","event_data":{"id":"T1","content":"x","checked":1,"labels":["a","b"],"priority":2,"due":{"date":"2024-01-02","string":"jan 2","is_recurring":false}}}`)

		first, err := parser.ParseTaskEvent(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := parser.ParseTaskEvent(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected equal records, got %+v and %+v", first, second)
		}
	})
}

func TestParseTaskEventCompleted(t *testing.T) {
	parser := webhook.NewTodoistParser()

	tests := []struct {
		name    string
		checked string
		want    bool
	}{
		{"checked 1", `,"checked":1`, true},
		{"checked 0", `,"checked":0`, false},
		{"checked absent", ``, false},
		{"checked null", `,"checked":null`, false},
		{"checked 2", `,"checked":2`, false},
		{"checked true", `,"checked":true`, false},
		{"checked false", `,"checked":false`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"event_name":"item:completed","event_data":{"id":"T1"` + tt.checked + `}}`
			task, err := parser.ParseTaskEvent([]byte(payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.Completed != tt.want {
				t.Errorf("Completed = %v, want %v", task.Completed, tt.want)
			}
		})
	}
}

func TestParseTaskEventErrors(t *testing.T) {
	parser := webhook.NewTodoistParser()

	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"Invalid JSON", `not json`, ""},
		{"Unknown Event", `{"event_name":"note:added","event_data":{"id":"T1"}}`, "event_name"},
		{"Missing Event Name", `{"event_data":{"id":"T1"}}`, "event_name"},
		{"Missing Event Data", `{"event_name":"item:added"}`, "event_data"},
		{"Missing ID", `{"event_name":"item:added","event_data":{"content":"x"}}`, "event_data.id"},
		{"Bad ID Type", `{"event_name":"item:added","event_data":{"id":true}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseTaskEvent([]byte(tt.payload))
			var pErr *model.PayloadError
			if !errors.As(err, &pErr) {
				t.Fatalf("expected PayloadError, got %v", err)
			}
			if pErr.Source != model.SourceTodoist || pErr.Field != tt.field {
				t.Errorf("unexpected error details: %+v", pErr)
			}
			if !errors.Is(err, model.ErrMalformedPayload) {
				t.Error("expected errors.Is ErrMalformedPayload")
			}
		})
	}
}
