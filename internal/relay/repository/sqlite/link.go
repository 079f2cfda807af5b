package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay/repository"
)

func (r *implRepository) CreateLink(ctx context.Context, opt repository.CreateLinkOptions) (model.Link, error) {
	if opt.IssueID == "" || opt.TaskID == "" {
		return model.Link{}, fmt.Errorf("both issue ID and task ID are required")
	}

	link := model.Link{
		IssueID:   opt.IssueID,
		TaskID:    opt.TaskID,
		CreatedAt: r.now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_links (issue_id, task_id, created_at) VALUES (?, ?, ?)`,
		link.IssueID, link.TaskID, link.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.Link{}, repository.ErrLinkExists
		}
		r.l.Errorf(ctx, "sqlite repository: failed to create link %s -> %s: %v", opt.IssueID, opt.TaskID, err)
		return model.Link{}, fmt.Errorf("failed to create link: %w", err)
	}

	return link, nil
}

func (r *implRepository) GetLink(ctx context.Context, opt repository.GetLinkOptions) (model.Link, error) {
	column, value, err := linkKey(opt)
	if err != nil {
		return model.Link{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT issue_id, task_id, created_at FROM task_links WHERE `+column+` = ?`, value)

	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Link{}, repository.ErrLinkNotFound
	}
	if err != nil {
		return model.Link{}, fmt.Errorf("failed to get link: %w", err)
	}
	return link, nil
}

func (r *implRepository) ListLinks(ctx context.Context, opt repository.ListLinksOptions) ([]model.Link, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT issue_id, task_id, created_at FROM task_links ORDER BY created_at, issue_id LIMIT ? OFFSET ?`,
		limit, opt.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := make([]model.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *implRepository) DeleteLink(ctx context.Context, opt repository.GetLinkOptions) error {
	column, value, err := linkKey(opt)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM task_links WHERE `+column+` = ?`, value)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if n == 0 {
		return repository.ErrLinkNotFound
	}
	return nil
}

// linkKey picks the column to filter on. The column name never comes from input.
func linkKey(opt repository.GetLinkOptions) (string, string, error) {
	switch {
	case opt.IssueID != "" && opt.TaskID == "":
		return "issue_id", opt.IssueID, nil
	case opt.TaskID != "" && opt.IssueID == "":
		return "task_id", opt.TaskID, nil
	default:
		return "", "", repository.ErrInvalidOptions
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLink(s scanner) (model.Link, error) {
	var (
		link      model.Link
		createdAt string
	)
	if err := s.Scan(&link.IssueID, &link.TaskID, &createdAt); err != nil {
		return model.Link{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Link{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	link.CreatedAt = t
	return link, nil
}
