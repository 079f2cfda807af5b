package model

// IssueState is the workflow state of a Linear issue.
type IssueState struct {
	Name string // e.g. "Done"
	Type string // backlog, unstarted, started, completed, canceled
}

// IssueInfo is the canonical record parsed from a Linear webhook.
type IssueInfo struct {
	Action        string  // create, update, remove
	ID            string  // Linear issue ID
	Title         string  // Issue title
	PriorityLabel *string // e.g. "Urgent"
	Priority      *int    // 0 (none) to 4 (low)
	AssigneeID    *string // Linear user ID
	DueDate       *string // YYYY-MM-DD, nil when unset
	State         IssueState
}

// Issue actions sent by Linear.
const (
	IssueActionCreate = "create"
	IssueActionUpdate = "update"
	IssueActionRemove = "remove"
)

// StateTypeCompleted is the Linear state type of finished issues.
const StateTypeCompleted = "completed"

// IsCompleted reports whether the issue sits in a completed workflow state.
func (i IssueInfo) IsCompleted() bool {
	return i.State.Type == StateTypeCompleted
}
