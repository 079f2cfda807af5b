package usecase

import (
	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository"
	"issue-task-relay/pkg/linear"
	"issue-task-relay/pkg/log"
	"issue-task-relay/pkg/todoist"
)

// implUseCase is the private implementation of relay.UseCase.
type implUseCase struct {
	linear  linear.ILinear
	todoist todoist.ITodoist
	links   repository.LinkRepository
	opts    relay.Options
	l       log.Logger

	// issueLocks keeps concurrent deliveries for one issue from creating two tasks.
	issueLocks *keyedMutex
}

// New creates a new relay UseCase implementation.
func New(l log.Logger, linearClient linear.ILinear, todoistClient todoist.ITodoist, links repository.LinkRepository, opts relay.Options) relay.UseCase {
	return &implUseCase{
		linear:  linearClient,
		todoist: todoistClient,
		links:   links,
		opts:    opts,
		l:       l,

		issueLocks: newKeyedMutex(),
	}
}
