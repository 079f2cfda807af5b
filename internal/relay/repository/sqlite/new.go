package sqlite

import (
	"database/sql"
	"time"

	"issue-task-relay/internal/relay/repository"
	pkgLog "issue-task-relay/pkg/log"
)

type implRepository struct {
	db  *sql.DB
	l   pkgLog.Logger
	now func() time.Time
}

// New creates a SQLite backed LinkRepository.
func New(db *sql.DB, l pkgLog.Logger) repository.LinkRepository {
	return &implRepository{
		db:  db,
		l:   l,
		now: time.Now,
	}
}
