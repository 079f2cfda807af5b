package repository

import "errors"

var (
	ErrLinkNotFound   = errors.New("link not found")
	ErrLinkExists     = errors.New("issue or task is already linked")
	ErrInvalidOptions = errors.New("exactly one of issue ID or task ID is required")
)
