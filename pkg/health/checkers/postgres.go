// Package checkers holds readiness checks for storage backends.
package checkers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const checkTimeout = time.Second

// requiredTables must exist once migrations are applied.
var requiredTables = []string{"users", "tasks"}

// PostgresChecker reports ready when the database answers and the schema
// the repositories query is in place.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	rows, err := c.pool.Query(ctx, `
SELECT table_name::text FROM information_schema.tables
WHERE table_schema = current_schema() AND table_name::text = ANY($1::text[])
`, requiredTables)
	if err != nil {
		return fmt.Errorf("query schema: %w", err)
	}
	defer rows.Close()
	found := make(map[string]bool, len(requiredTables))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan schema: %w", err)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query schema: %w", err)
	}
	return missingTables(requiredTables, found)
}

func missingTables(names []string, found map[string]bool) error {
	var missing []string
	for _, name := range names {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("tables not migrated: %s", strings.Join(missing, ", "))
	}
	return nil
}
