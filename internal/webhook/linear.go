package webhook

import (
	"encoding/json"

	"issue-task-relay/internal/model"
)

// LinearWebhookParser parses Linear webhook payloads
type LinearWebhookParser struct{}

func NewLinearParser() *LinearWebhookParser {
	return &LinearWebhookParser{}
}

// ParseIssueEvent parses a Linear Issue webhook into an IssueInfo.
// data, data.id and data.state are required.
func (p *LinearWebhookParser) ParseIssueEvent(payload []byte) (*model.IssueInfo, error) {
	var event struct {
		Action string `json:"action"` // create, update, remove
		Data   *struct {
			ID            *string `json:"id"`
			Title         string  `json:"title"`
			PriorityLabel *string `json:"priorityLabel"`
			Priority      *int    `json:"priority"`
			AssigneeID    *string `json:"assigneeId"`
			DueDate       *string `json:"dueDate"` // YYYY-MM-DD
			State         *struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"state"`
		} `json:"data"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &model.PayloadError{Source: model.SourceLinear, Err: err}
	}

	if event.Data == nil {
		return nil, missingField(model.SourceLinear, "data")
	}
	if event.Data.ID == nil || *event.Data.ID == "" {
		return nil, missingField(model.SourceLinear, "data.id")
	}
	if event.Data.State == nil {
		return nil, missingField(model.SourceLinear, "data.state")
	}

	return &model.IssueInfo{
		Action:        event.Action,
		ID:            *event.Data.ID,
		Title:         event.Data.Title,
		PriorityLabel: event.Data.PriorityLabel,
		Priority:      event.Data.Priority,
		AssigneeID:    event.Data.AssigneeID,
		DueDate:       event.Data.DueDate,
		State: model.IssueState{
			Name: event.Data.State.Name,
			Type: event.Data.State.Type,
		},
	}, nil
}

func missingField(source model.WebhookSource, field string) error {
	return &model.PayloadError{Source: source, Field: field, Err: model.ErrFieldMissing}
}
