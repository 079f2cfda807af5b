package repository

import (
	"context"

	"issue-task-relay/internal/model"
)

// LinkRepository stores the pairing between Linear issues and Todoist tasks.
type LinkRepository interface {
	CreateLink(ctx context.Context, opt CreateLinkOptions) (model.Link, error)
	GetLink(ctx context.Context, opt GetLinkOptions) (model.Link, error)
	ListLinks(ctx context.Context, opt ListLinksOptions) ([]model.Link, error)
	DeleteLink(ctx context.Context, opt GetLinkOptions) error
}
