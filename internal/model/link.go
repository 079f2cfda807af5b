package model

import "time"

// Link pairs a Linear issue with the Todoist task created for it.
type Link struct {
	IssueID   string
	TaskID    string
	CreatedAt time.Time
}
