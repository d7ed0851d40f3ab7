package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/taskverse/pkg/task"
)

const taskColumns = `id, title, description, status, priority, due_date, created_by, assigned_to, created_at, updated_at`

// TaskRepository implements task.Repository.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
		t.UpdatedAt = t.CreatedAt
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO tasks (`+taskColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), nullTime(t.DueDate),
		t.CreatedBy, t.AssignedTo, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

// List puts the access scope into the WHERE clause so that the count and
// the page agree on what the caller may see.
func (r *TaskRepository) List(ctx context.Context, f task.Filter, p task.Page) (task.ListResult, error) {
	if p.Limit <= 0 {
		p.Limit = task.DefaultLimit
	}
	where, args := listWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return task.ListResult{}, fmt.Errorf("count tasks: %w", err)
	}

	n := len(args)
	args = append(args, p.Limit, p.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %s FROM tasks%s
ORDER BY created_at DESC, id
LIMIT $%d OFFSET $%d
`, taskColumns, where, n+1, n+2), args...)
	if err != nil {
		return task.ListResult{}, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	res := task.ListResult{Tasks: []task.Task{}, Total: total}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return task.ListResult{}, err
		}
		res.Tasks = append(res.Tasks, t)
	}
	return res, rows.Err()
}

func listWhere(f task.Filter) (string, []any) {
	var conds []string
	var args []any
	if !f.Scope.Unrestricted {
		// A zero participant matches nothing: no row references uuid.Nil.
		args = append(args, f.Scope.Participant)
		conds = append(conds, fmt.Sprintf("(created_by = $%d OR assigned_to = $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, string(f.Priority))
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update writes only the patched columns. A task deleted since it was read
// yields task.ErrNotFound.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, p task.Patch) (task.Task, error) {
	sets, args := updateSet(p)
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
UPDATE tasks SET %s WHERE id = $%d
RETURNING %s
`, strings.Join(sets, ", "), len(args), taskColumns), args...)
	return scanTask(row)
}

func updateSet(p task.Patch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.Priority != nil {
		add("priority", string(*p.Priority))
	}
	if p.DueDate != nil {
		add("due_date", nullTime(*p.DueDate))
	}
	if p.AssignedTo != nil {
		add("assigned_to", *p.AssignedTo)
	}
	return sets, args
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var status, priority string
	var due *time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &due,
		&t.CreatedBy, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	if due != nil {
		t.DueDate = due.UTC()
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
