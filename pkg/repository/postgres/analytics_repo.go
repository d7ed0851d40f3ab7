package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/taskverse/pkg/analytics"
)

// AnalyticsRepository считает агрегаты по задачам и пользователям.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) Summary(ctx context.Context, now, recentSince time.Time) (analytics.Report, error) {
	var rep analytics.Report
	var err error
	if rep.TasksByStatus, err = r.countBy(ctx, "status"); err != nil {
		return analytics.Report{}, err
	}
	if rep.TasksByPriority, err = r.countBy(ctx, "priority"); err != nil {
		return analytics.Report{}, err
	}
	err = r.pool.QueryRow(ctx, `
SELECT
	count(*),
	count(*) FILTER (WHERE due_date < $1 AND status <> 'completed'),
	count(*) FILTER (WHERE created_at >= $2)
FROM tasks
`, now, recentSince).Scan(&rep.TotalTasks, &rep.OverdueTasks, &rep.RecentTasks)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("task totals: %w", err)
	}
	err = r.pool.QueryRow(ctx, `
SELECT count(*), count(*) FILTER (WHERE active) FROM users
`).Scan(&rep.TotalUsers, &rep.ActiveUsers)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("user totals: %w", err)
	}
	return rep, nil
}

// countBy группирует задачи по колонке. column должен быть доверенным идентификатором.
func (r *AnalyticsRepository) countBy(ctx context.Context, column string) ([]analytics.Count, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %[1]s, count(*) FROM tasks GROUP BY %[1]s ORDER BY %[1]s
`, column))
	if err != nil {
		return nil, fmt.Errorf("count tasks by %s: %w", column, err)
	}
	defer rows.Close()
	out := []analytics.Count{}
	for rows.Next() {
		var c analytics.Count
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
