package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"

	"issue-task-relay/internal/model"
)

// TodoistWebhookParser parses Todoist webhook payloads
type TodoistWebhookParser struct{}

func NewTodoistParser() *TodoistWebhookParser {
	return &TodoistWebhookParser{}
}

// ParseTaskEvent parses a Todoist item webhook into a TaskInfo.
// event_name must be one of the item events; event_data and event_data.id are required.
func (p *TodoistWebhookParser) ParseTaskEvent(payload []byte) (*model.TaskInfo, error) {
	var event struct {
		EventName string `json:"event_name"`
		EventData *struct {
			ID             *FlexibleID     `json:"id"`
			Content        *string         `json:"content"`
			ProjectID      *FlexibleID     `json:"project_id"`
			Checked        json.RawMessage `json:"checked"`
			Labels         []string        `json:"labels"`
			Priority       *int            `json:"priority"`
			Due            *todoistDue     `json:"due"`
			ResponsibleUID *FlexibleID     `json:"responsible_uid"`
		} `json:"event_data"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &model.PayloadError{Source: model.SourceTodoist, Err: err}
	}

	name := model.TaskEventName(event.EventName)
	if !name.Valid() {
		return nil, &model.PayloadError{
			Source: model.SourceTodoist,
			Field:  "event_name",
			Err:    fmt.Errorf("unsupported event %q", event.EventName),
		}
	}
	if event.EventData == nil {
		return nil, missingField(model.SourceTodoist, "event_data")
	}
	if event.EventData.ID == nil || *event.EventData.ID == "" {
		return nil, missingField(model.SourceTodoist, "event_data.id")
	}

	data := event.EventData
	return &model.TaskInfo{
		EventName: name,
		TaskID:    string(*data.ID),
		Content:   data.Content,
		ProjectID: data.ProjectID.StringPtr(),
		Completed: isChecked(data.Checked),
		Labels:    data.Labels,
		Priority:  data.Priority,
		DueDate:   data.Due.toModel(),
		Assignee:  data.ResponsibleUID.StringPtr(),
	}, nil
}

// isChecked reports whether checked marks the task complete.
// Only the integer 1 counts; any other value, including true and absent, is open.
func isChecked(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("1"))
}

type todoistDue struct {
	Date        *string `json:"date"`
	Datetime    *string `json:"datetime"`
	IsRecurring *bool   `json:"is_recurring"`
	Recurring   *bool   `json:"recurring"`
	String      string  `json:"string"`
	Timezone    *string `json:"timezone"`
}

func (d *todoistDue) toModel() *model.Due {
	if d == nil {
		return nil
	}

	recurring := false
	switch {
	case d.IsRecurring != nil:
		recurring = *d.IsRecurring
	case d.Recurring != nil:
		recurring = *d.Recurring
	}

	return &model.Due{
		Date:      d.Date,
		Datetime:  d.Datetime,
		Recurring: recurring,
		String:    d.String,
		Timezone:  d.Timezone,
	}
}
