package todoist

import "fmt"

// AddTaskRequest is the body for POST /tasks.
// DueDate and Priority are sent as null when unset.
type AddTaskRequest struct {
	Content   string  `json:"content"`
	ProjectID string  `json:"project_id"`
	DueDate   *string `json:"due_date"`
	Priority  *int    `json:"priority"`
}

// UpdateTaskInput carries the fields to change; nil means "leave as is".
type UpdateTaskInput struct {
	Content  *string
	DueDate  *string
	Priority *int // Linear scale, mapped before sending
}

// updateTaskRequest is the body for POST /tasks/{id}. Nil fields are omitted.
type updateTaskRequest struct {
	Content  *string `json:"content,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
	Priority *int    `json:"priority,omitempty"`
}

// TaskDue is the due object of a task.
type TaskDue struct {
	Date        string  `json:"date"`
	String      string  `json:"string"`
	Datetime    *string `json:"datetime,omitempty"`
	IsRecurring bool    `json:"is_recurring"`
	Timezone    *string `json:"timezone,omitempty"`
}

// Task is the Todoist API task object.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	IsCompleted bool     `json:"is_completed"`
	Labels      []string `json:"labels"`
	Priority    int      `json:"priority"`
	Due         *TaskDue `json:"due"`
	AssigneeID  *string  `json:"assignee_id"`
	URL         string   `json:"url"`
}

// APIError is returned when Todoist answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todoist API error %d: %s", e.StatusCode, e.Body)
}
