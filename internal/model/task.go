package model

// TaskEventName is the Todoist webhook event kind.
type TaskEventName string

const (
	TaskEventAdded       TaskEventName = "item:added"
	TaskEventCompleted   TaskEventName = "item:completed"
	TaskEventUncompleted TaskEventName = "item:uncompleted"
	TaskEventUpdated     TaskEventName = "item:updated"
	TaskEventDeleted     TaskEventName = "item:deleted"
)

// Valid reports whether n is one of the five item events.
func (n TaskEventName) Valid() bool {
	switch n {
	case TaskEventAdded, TaskEventCompleted, TaskEventUncompleted, TaskEventUpdated, TaskEventDeleted:
		return true
	}
	return false
}

// Due is the Todoist due date representation.
type Due struct {
	Date      *string // YYYY-MM-DD
	Datetime  *string // RFC3339, only for tasks with a time
	Recurring bool
	String    string // Human readable, e.g. "every monday"
	Timezone  *string
}

// TaskInfo is the canonical record parsed from a Todoist webhook.
type TaskInfo struct {
	EventName TaskEventName
	TaskID    string
	Content   *string
	ProjectID *string
	Completed bool // derived from checked == 1
	Labels    []string
	Priority  *int // 1 (normal) to 4 (urgent)
	DueDate   *Due
	Assignee  *string
}
