package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

// CreateTask adds a new task. A fresh id is assigned if the task has
// none.
func (s *SQLite) CreateTask(ctx context.Context, t *crm.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO tasks (
			id, owner_id, title, description, due_date, due_time,
			priority, task_type, status, client_name, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		t.Title,
		t.Description,
		dateutil.DayKey(t.DueDate),
		nullString(t.Time),
		t.Priority,
		t.Type,
		t.Status,
		t.ClientName,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// ListTasks returns the owner's tasks due on exactly the given date,
// restricted to the given statuses, ordered by due time.
func (s *SQLite) ListTasks(ctx context.Context, ownerID string, date time.Time, statuses []crm.TaskStatus) ([]*crm.Task, error) {
	query := `
		SELECT id, owner_id, title, description, due_date, due_time,
		       priority, task_type, status, client_name, created_at
		FROM tasks
		WHERE owner_id = ? AND due_date = ?
	`
	args := []any{ownerID, dateutil.DayKey(date)}

	if len(statuses) > 0 {
		query += ` AND status IN (?` + strings.Repeat(", ?", len(statuses)-1) + `)`
		for _, st := range statuses {
			args = append(args, st)
		}
	}

	query += ` ORDER BY due_time IS NULL, due_time, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*crm.Task
	for rows.Next() {
		var (
			t          crm.Task
			title      sql.NullString
			desc       sql.NullString
			dueDate    string
			dueTime    sql.NullString
			taskType   sql.NullString
			clientName sql.NullString
			createdAt  string
		)
		err := rows.Scan(
			&t.ID, &t.OwnerID, &title, &desc, &dueDate, &dueTime,
			&t.Priority, &taskType, &t.Status, &clientName, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		t.DueDate, err = parseDate(dueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing due date: %w", err)
		}
		t.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}

		t.Title = title.String
		t.Description = desc.String
		t.Time = dueTime.String
		t.Type = taskType.String
		t.ClientName = clientName.String

		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus transitions a task to the given status.
func (s *SQLite) UpdateTaskStatus(ctx context.Context, id string, status crm.TaskStatus) error {
	if !status.Valid() {
		return crm.ErrInvalidStatus
	}

	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return crm.ErrTaskNotFound
	}
	return nil
}
