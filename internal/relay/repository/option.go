package repository

// CreateLinkOptions holds the parameters for pairing an issue with a task.
type CreateLinkOptions struct {
	IssueID string
	TaskID  string
}

// GetLinkOptions selects a link by exactly one of its two sides.
type GetLinkOptions struct {
	IssueID string
	TaskID  string
}

// ListLinksOptions holds the parameters for listing links.
type ListLinksOptions struct {
	Limit  int // default 100
	Offset int
}
